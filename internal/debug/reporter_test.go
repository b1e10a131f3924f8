package debug

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGate struct {
	enabled bool
	calls   int
}

func (g *staticGate) Enabled(ctx context.Context, allowOverride bool) bool {
	g.calls++
	return g.enabled
}

func divider() string { return strings.Repeat("-", lineLength) }

func TestBanner(t *testing.T) {
	testCases := []struct {
		description string
		title       string
		dashes      int
	}{
		{description: "default title", title: "Log", dashes: 32},
		{description: "odd remainder floors", title: "Errors", dashes: 31},
		{description: "title of 67 runes", title: strings.Repeat("x", 67), dashes: 0},
		{description: "title of 68 runes", title: strings.Repeat("x", 68), dashes: 0},
		{description: "title longer than the line", title: strings.Repeat("y", 90), dashes: 0},
		{description: "multibyte title counts runes", title: "Canción", dashes: 30},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pad := strings.Repeat("-", tc.dashes)
			assert.EqualValues(t, pad+" "+strings.ToUpper(tc.title)+" "+pad, Banner(tc.title))
		})
	}
}

func TestReporter_Disabled(t *testing.T) {
	gate := &staticGate{}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	reporter := NewReporter(gate, out, errOut)

	reporter.Log("Title", "value")
	reporter.Dir("Title", map[string]int{"a": 1})
	reporter.Error("Title", "boom")
	reporter.Clear("Title", "value")
	reporter.ClearDir("Title", "value")
	assert.Nil(t, reporter.Wrap("block"))

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, 6, gate.calls)
}

func TestReporter_Log(t *testing.T) {
	testCases := []struct {
		description string
		args        []any
		expected    string
	}{
		{
			description: "string title is consumed",
			args:        []any{"request", "GET", 200},
			expected:    "\n" + Banner("request") + "\n\nGET 200\n\n" + divider() + "\n\n",
		},
		{
			description: "non-string first value keeps default title",
			args:        []any{42, "answer"},
			expected:    "\n" + Banner("Log") + "\n\n42 answer\n\n" + divider() + "\n\n",
		},
		{
			description: "empty title falls back to default",
			args:        []any{"", "x"},
			expected:    "\n" + Banner("Log") + "\n\nx\n\n" + divider() + "\n\n",
		},
		{
			description: "no arguments",
			args:        nil,
			expected:    "\n" + Banner("Log") + "\n\n\n\n" + divider() + "\n\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			out := &bytes.Buffer{}
			reporter := NewReporter(&staticGate{enabled: true}, out, &bytes.Buffer{})
			reporter.Log(tc.args...)
			assert.EqualValues(t, tc.expected, out.String())
		})
	}
}

func TestReporter_Error(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	reporter := NewReporter(&staticGate{enabled: true}, out, errOut)

	reporter.Error("failure detail")
	assert.EqualValues(t, "\n"+Banner("failure detail")+"\n\n\n"+divider()+"\n\n", out.String())
	assert.EqualValues(t, "\n", errOut.String())

	out.Reset()
	errOut.Reset()
	reporter.Error(3.5)
	assert.True(t, strings.HasPrefix(out.String(), "\n"+Banner("Error")))
	assert.EqualValues(t, "3.5\n", errOut.String())
}

func TestReporter_Dir(t *testing.T) {
	out := &bytes.Buffer{}
	reporter := NewReporter(&staticGate{enabled: true}, out, &bytes.Buffer{})

	type payload struct {
		Name  string
		Items []string
	}
	reporter.Dir("payload", &payload{Name: "x", Items: []string{"a", "b"}})

	text := out.String()
	require.True(t, strings.HasPrefix(text, "\n"+Banner("payload")+"\n\n"))
	assert.Contains(t, text, `Name: (string) (len=1) "x"`)
	assert.Contains(t, text, `(string) (len=1) "b"`)
	assert.True(t, strings.HasSuffix(text, "\n"+divider()+"\n\n"))
}

func TestReporter_Clear_NonTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	reporter := NewReporter(&staticGate{enabled: true}, out, &bytes.Buffer{})

	reporter.Clear("screen", "value")
	assert.NotContains(t, out.String(), clearSequence)
	assert.Contains(t, out.String(), "value\n")
}

func TestReporter_ClearDir(t *testing.T) {
	out := &bytes.Buffer{}
	reporter := NewReporter(&staticGate{enabled: true}, out, &bytes.Buffer{})

	reporter.ClearDir("state", map[string]int{"retries": 2})

	text := out.String()
	assert.NotContains(t, text, clearSequence)
	require.True(t, strings.HasPrefix(text, "\n"+Banner("state")+"\n\n"))
	assert.Contains(t, text, `(string) (len=7) "retries": (int) 2`)
	assert.True(t, strings.HasSuffix(text, "\n"+divider()+"\n\n"))
}

func TestReporter_Wrap(t *testing.T) {
	out := &bytes.Buffer{}
	reporter := NewReporter(&staticGate{enabled: true}, out, &bytes.Buffer{})

	write := reporter.Wrap("translate")
	require.NotNil(t, write)
	assert.EqualValues(t, "\n"+Banner("translate")+"\n\n", out.String())

	out.Reset()
	write("prompt loaded")
	assert.EqualValues(t, "prompt loaded\n", out.String())

	out.Reset()
	write("Executing model call")
	assert.EqualValues(t, "Executing model call\n\n"+divider()+"\n\n", out.String())
	assert.Equal(t, 1, strings.Count(out.String(), divider()))
}
