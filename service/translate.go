package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/genai/prompt"
	"github.com/viant/xlate/internal/format"
	"github.com/viant/xlate/internal/log"
)

const (
	// StringKey is the template placeholder for the text to translate.
	StringKey = "REPLACE_STRING"
	// ContextKey is the template placeholder for the caller supplied context.
	ContextKey = "CONTEXT"
)

var (
	// ErrMissingString is returned when the request carries no text.
	ErrMissingString = errors.New("string is required")
	// ErrEmptyPrompt is returned when the template expands to nothing.
	ErrEmptyPrompt = errors.New("prompt template is empty")
	// ErrInvalidReply is returned when the model reply holds no JSON object.
	ErrInvalidReply = errors.New("model reply is not a JSON object")
)

// TranslateRequest is the translation input.
type TranslateRequest struct {
	String  string `json:"string"`
	Context string `json:"context"`
}

// Validate reports the request problems, nil when valid.
func (r *TranslateRequest) Validate() []string {
	var errs []string
	if r == nil || strings.TrimSpace(r.String) == "" {
		errs = append(errs, ErrMissingString.Error())
	}
	return errs
}

// Translate expands the prompt with req, sends it to the model and returns the
// JSON object found in the reply.
func (s *Service) Translate(ctx context.Context, req *TranslateRequest) (map[string]any, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, ErrMissingString
	}
	log.Publish(log.TranslateInput, req)
	step := s.reporter().Wrap("Translate")
	if step != nil {
		step("Executing prompt expansion")
	}

	text, err := s.expand(ctx, prompt.Binding{StringKey: req.String, ContextKey: req.Context})
	if err != nil {
		return nil, fmt.Errorf("failed to expand prompt: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}

	var messages []ollama.Message
	if system := strings.TrimSpace(s.opts.System); system != "" {
		messages = append(messages, ollama.NewSystemMessage(system))
	}
	messages = append(messages, ollama.NewUserMessage(text))
	log.Publish(log.LLMInput, messages)
	if step != nil {
		step("Executing model chat")
	}
	resp, err := s.client.Chat(ctx, messages, s.opts.Model)
	if err != nil {
		s.opts.Logger.Errorf("chat failed: %v", err)
		s.reporter().Error("Translate", err)
		return nil, fmt.Errorf("failed to chat: %w", err)
	}
	log.Publish(log.LLMOutput, resp.Message)
	s.reporter().Log("Model reply", resp.Message)

	result, err := decodeReply(resp.Message.Content)
	if err != nil {
		s.opts.Logger.Warningf("unexpected reply: %v", resp.Message.Content)
		return nil, err
	}
	if step != nil {
		step("Executing reply decoding")
	}
	log.Publish(log.TranslateOutput, result)
	return result, nil
}

// decodeReply parses content as a JSON object, falling back to the first
// object embedded in surrounding prose.
func decodeReply(content string) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err == nil && result != nil {
		return result, nil
	}
	if objects := format.ExtractJSON(content); len(objects) > 0 {
		return objects[0], nil
	}
	return nil, ErrInvalidReply
}
