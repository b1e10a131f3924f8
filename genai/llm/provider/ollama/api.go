package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Chat sends a non-streamed chat request and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, messages []Message, options *Options) (*ChatResponse, error) {
	if c.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	req := &ChatRequest{
		Model:    c.Model,
		Messages: messages,
		Stream:   false,
		Options:  options,
	}
	resp, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	c.onUsage(c.Model, chatResp.PromptEvalCount, chatResp.EvalCount)
	return &chatResp, nil
}

// Generate sends a prompt to the generate API and aggregates the streamed chunks.
func (c *Client) Generate(ctx context.Context, request *Request) (*Response, error) {
	if c.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	req := *request
	if req.Model == "" {
		req.Model = c.Model
	}
	req.Stream = true

	resp, err := c.post(ctx, "/api/generate", &req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	apiResp := &Response{}
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			var chunk Response
			if err := json.Unmarshal(line, &chunk); err != nil {
				continue
			}
			apiResp.Response += chunk.Response
			apiResp.Context = append(apiResp.Context, chunk.Context...)
			apiResp.PromptEvalCount += chunk.PromptEvalCount
			apiResp.EvalCount += chunk.EvalCount
			apiResp.Done = chunk.Done
			apiResp.EvalDuration = chunk.EvalDuration
			apiResp.LoadDuration = chunk.LoadDuration
			apiResp.TotalDuration = chunk.TotalDuration
			apiResp.PromptEvalDuration = chunk.PromptEvalDuration
			apiResp.CreatedAt = chunk.CreatedAt
			apiResp.Model = chunk.Model
			if chunk.Done {
				break
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
	}
	c.onUsage(req.Model, apiResp.PromptEvalCount, apiResp.EvalCount)
	return apiResp, nil
}

// sendPullRequest sends a pull request to the Ollama API and returns the response
func (c *Client) sendPullRequest(ctx context.Context, request *PullRequest) (*PullResponse, error) {
	resp, err := c.post(ctx, "/api/pull", request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	var pullResp PullResponse
	if err := json.Unmarshal(body, &pullResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pull response: %w", err)
	}
	return &pullResp, nil
}

// post sends payload as JSON and returns the response when the status is 200.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
