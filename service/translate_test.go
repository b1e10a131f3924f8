package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/genai/prompt"
	"github.com/viant/xlate/internal/debug"
)

type fakeChatter struct {
	reply    string
	err      error
	received []ollama.Message
}

func (f *fakeChatter) Chat(ctx context.Context, messages []ollama.Message, options *ollama.Options) (*ollama.ChatResponse, error) {
	f.received = messages
	if f.err != nil {
		return nil, f.err
	}
	return &ollama.ChatResponse{Message: ollama.Message{Role: ollama.RoleAssistant, Content: f.reply}}, nil
}

type switchGate bool

func (g switchGate) Enabled(ctx context.Context, allowOverride bool) bool { return bool(g) }

func TestService_Translate(t *testing.T) {
	const templateURL = "mem://localhost/translate_prompt.md"
	fs := afs.New()
	require.NoError(t, fs.Upload(context.Background(), templateURL, 0644,
		strings.NewReader("Translate [[REPLACE_STRING]] given [[CONTEXT]] as JSON")))

	testCases := []struct {
		description  string
		request      *TranslateRequest
		reply        string
		chatErr      error
		debugOn      bool
		expected     map[string]any
		expectErr    error
		expectPrompt string
		expectOutput []string
	}{
		{
			description:  "plain JSON reply",
			request:      &TranslateRequest{String: "hello", Context: "greeting"},
			reply:        `{"es":"hola"}`,
			expected:     map[string]any{"es": "hola"},
			expectPrompt: "Translate hello given greeting as JSON",
		},
		{
			description:  "JSON embedded in prose",
			request:      &TranslateRequest{String: "bye"},
			reply:        "Sure! Here it is: {\"es\":\"adiós\"} Hope it helps.",
			expected:     map[string]any{"es": "adiós"},
			expectPrompt: "Translate bye given  as JSON",
		},
		{
			description: "stray brace before JSON",
			request:     &TranslateRequest{String: "hello"},
			reply:       "Use {placeholders like this. Result: {\"es\":\"hola\"}",
			expected:    map[string]any{"es": "hola"},
		},
		{
			description: "missing string",
			request:     &TranslateRequest{Context: "x"},
			expectErr:   ErrMissingString,
		},
		{
			description: "reply without JSON",
			request:     &TranslateRequest{String: "hello"},
			reply:       "I cannot do that",
			expectErr:   ErrInvalidReply,
		},
		{
			description: "debug block traced",
			request:     &TranslateRequest{String: "hello"},
			reply:       `{"es":"hola"}`,
			debugOn:     true,
			expected:    map[string]any{"es": "hola"},
			expectOutput: []string{
				debug.Banner("Translate"),
				"Executing prompt expansion",
				"Executing model chat",
				debug.Banner("Model reply"),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			chatter := &fakeChatter{reply: tc.reply, err: tc.chatErr}
			out := &bytes.Buffer{}
			srv := New(chatter, prompt.New(fs, templateURL), Options{
				Reporter: debug.NewReporter(switchGate(tc.debugOn), out, out),
			})
			actual, err := srv.Translate(context.Background(), tc.request)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected, actual)
			if tc.expectPrompt != "" {
				require.Len(t, chatter.received, 1)
				assert.EqualValues(t, tc.expectPrompt, chatter.received[0].Content)
				assert.EqualValues(t, ollama.RoleUser, chatter.received[0].Role)
			}
			if !tc.debugOn {
				assert.Empty(t, out.String())
			}
			for _, fragment := range tc.expectOutput {
				assert.Contains(t, out.String(), fragment)
			}
		})
	}
}

func TestService_Translate_ChatError(t *testing.T) {
	out := &bytes.Buffer{}
	srv := New(&fakeChatter{err: errors.New("connection refused")}, &prompt.Prompt{Text: "[[REPLACE_STRING]]"}, Options{
		Reporter: debug.NewReporter(switchGate(true), out, out),
	})
	_, err := srv.Translate(context.Background(), &TranslateRequest{String: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, out.String(), debug.Banner("Translate"))
	assert.Contains(t, out.String(), "connection refused")
}

func TestService_Translate_EmptyPrompt(t *testing.T) {
	srv := New(&fakeChatter{}, &prompt.Prompt{}, Options{Reporter: debug.NewReporter(switchGate(false), nil, nil)})
	_, err := srv.Translate(context.Background(), &TranslateRequest{String: "hello"})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestService_Translate_SystemInstruction(t *testing.T) {
	chatter := &fakeChatter{reply: `{"es":"hola"}`}
	srv := New(chatter, &prompt.Prompt{Text: "{{.REPLACE_STRING}}", Engine: "go"}, Options{
		Reporter: debug.NewReporter(switchGate(false), nil, nil),
		System:   "Reply with JSON only",
	})
	_, err := srv.Translate(context.Background(), &TranslateRequest{String: "hello"})
	require.NoError(t, err)
	assert.EqualValues(t, []ollama.Message{
		ollama.NewSystemMessage("Reply with JSON only"),
		ollama.NewUserMessage("hello"),
	}, chatter.received)
}
