package numbers

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/xlate/internal/debug"
	"golang.org/x/text/language"
)

type openGate struct{}

func (openGate) Enabled(ctx context.Context, allowOverride bool) bool { return true }

func captureReports(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	previous := debug.Default()
	debug.SetDefault(debug.NewReporter(openGate{}, out, errOut))
	t.Cleanup(func() { debug.SetDefault(previous) })
	return out, errOut
}

func TestSumAndRound(t *testing.T) {
	assert.EqualValues(t, 6.5, Sum(1, 2, 3.5))
	assert.EqualValues(t, 0, Sum())
	assert.EqualValues(t, 3.14, Round(3.14159, 2))
	assert.EqualValues(t, 3, Round(2.6, 0))
	assert.EqualValues(t, -1.2, Round(-1.234, 1))
}

func TestRandom(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := Random(5, 7)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 7)
	}
	assert.Equal(t, 4, Random(4, 4))
}

func TestPercentage(t *testing.T) {
	out, errOut := captureReports(t)

	pct, ok := Percentage(1, 3)
	assert.True(t, ok)
	assert.EqualValues(t, 33.33, pct)
	assert.Empty(t, out.String())

	_, ok = Percentage(5, 5)
	assert.False(t, ok)
	assert.Contains(t, out.String(), debug.Banner("Calculate percentage"))
	assert.Contains(t, errOut.String(), "the second number must be greater than the first")
}

func TestCurrency(t *testing.T) {
	captureReports(t)
	testCases := []struct {
		description string
		value       float64
		code        string
		tag         language.Tag
		expected    string
		ok          bool
	}{
		{description: "dollars in english", value: 1234.5, code: "usd", tag: language.AmericanEnglish, expected: "1,234.50", ok: true},
		{description: "euros in spanish", value: 1234567.5, code: "EUR", tag: language.Spanish, expected: "1.234.567,50", ok: true},
		{description: "yen has no decimals", value: 1234.4, code: "JPY", tag: language.English, expected: "1,234", ok: true},
		{description: "unknown code", value: 1, code: "XXXX", tag: language.English, ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, ok := Currency(tc.value, tc.code, tc.tag)
			assert.EqualValues(t, tc.ok, ok)
			assert.EqualValues(t, tc.expected, actual)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(3))
	assert.True(t, IsValid("42.5"))
	assert.True(t, IsValid(" "))
	assert.False(t, IsValid("abc"))
	assert.False(t, IsValid(math.Inf(1)))
	assert.False(t, IsValid(math.NaN()))
	assert.False(t, IsValid([]int{1}))
}
