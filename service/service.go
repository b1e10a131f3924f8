package service

import (
	"context"
	"sync"

	"github.com/op/go-logging"
	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/genai/prompt"
	"github.com/viant/xlate/internal/debug"
)

// Chatter sends a chat conversation to a model.
type Chatter interface {
	Chat(ctx context.Context, messages []ollama.Message, options *ollama.Options) (*ollama.ChatResponse, error)
}

// Options configures behaviour of Service.
type Options struct {
	Reporter *debug.Reporter // optional, package default when nil
	Logger   *logging.Logger // optional
	Model    *ollama.Options // optional model parameters
	System   string          // optional system instruction sent before the prompt
}

// Service exposes the translation use case independently of any transport.
type Service struct {
	client Chatter
	prompt *prompt.Prompt
	opts   Options

	mu sync.Mutex
}

// New returns a Service expanding tmpl and sending it through client.
func New(client Chatter, tmpl *prompt.Prompt, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.MustGetLogger("translate")
	}
	return &Service{client: client, prompt: tmpl, opts: opts}
}

func (s *Service) reporter() *debug.Reporter {
	if s.opts.Reporter != nil {
		return s.opts.Reporter
	}
	return debug.Default()
}

// expand renders the prompt; Prompt caches its parsed template so calls are serialized.
func (s *Service) expand(ctx context.Context, binding prompt.Binding) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt.Generate(ctx, binding)
}
