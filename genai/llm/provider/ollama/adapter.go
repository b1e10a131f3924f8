package ollama

import (
	"context"
	"fmt"
	"strings"
)

// ToRequest folds chat messages into a single generate prompt. The first system
// message becomes the system field.
func ToRequest(messages []Message, model string) *Request {
	req := &Request{Model: model}
	var prompt strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			if req.System == "" {
				req.System = msg.Content
			}
		case RoleUser:
			prompt.WriteString("Human: " + msg.Content + "\n")
		case RoleAssistant:
			prompt.WriteString("Assistant: " + msg.Content + "\n")
		}
	}
	prompt.WriteString("Assistant: ")
	req.Prompt = prompt.String()
	return req
}

// NewUserMessage creates a user turn.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates a system turn.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Completer serves chat conversations through the generate API for models
// without a chat template.
type Completer struct {
	Client *Client
}

// Chat folds messages with ToRequest and returns the generated text as the
// assistant reply.
func (c *Completer) Chat(ctx context.Context, messages []Message, options *Options) (*ChatResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	req := ToRequest(messages, c.Client.Model)
	req.Options = options
	resp, err := c.Client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ChatResponse{
		Model:           resp.Model,
		CreatedAt:       resp.CreatedAt,
		Message:         Message{Role: RoleAssistant, Content: resp.Response},
		Done:            resp.Done,
		TotalDuration:   resp.TotalDuration,
		LoadDuration:    resp.LoadDuration,
		PromptEvalCount: resp.PromptEvalCount,
		EvalCount:       resp.EvalCount,
	}, nil
}
