package ollama

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "http://ollama:11434"
	defaultModel   = "deepseek-llm:7b"
	defaultTimeout = 120 * time.Second
)

// UsageListener receives token usage for each successful call.
type UsageListener func(model string, usage *Usage)

// Client represents an Ollama API client
type Client struct {
	BaseURL       string
	Model         string
	HTTPClient    *http.Client
	Timeout       time.Duration
	UsageListener UsageListener
}

func (c *Client) onUsage(model string, promptTokens, completionTokens int) {
	if c.UsageListener == nil || promptTokens+completionTokens == 0 {
		return
	}
	c.UsageListener(model, &Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	})
}

// NewClient creates a new Ollama client
func NewClient(ctx context.Context, model string, options ...ClientOption) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	client := &Client{
		BaseURL: defaultBaseURL,
		Model:   model,
		Timeout: defaultTimeout,
	}
	for _, option := range options {
		option(client)
	}
	if client.HTTPClient == nil {
		client.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				IdleConnTimeout:       10 * time.Second,
				ResponseHeaderTimeout: client.Timeout,
			},
			Timeout: 0,
		}
	}
	return client, nil
}

// PullModel pulls a model from Ollama
func (c *Client) PullModel(ctx context.Context, modelName string) (*PullResponse, error) {
	req := &PullRequest{
		Name: modelName,
	}
	return c.sendPullRequest(ctx, req)
}
