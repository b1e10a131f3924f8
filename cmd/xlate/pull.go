package xlate

import (
	"context"
	"fmt"

	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/internal/log"
)

// PullCmd downloads a model into the Ollama server.
// Usage: xlate pull [-m model]
type PullCmd struct {
	Model string `short:"m" long:"model" description:"model to pull, defaults to the configured model"`
}

func (p *PullCmd) Execute(_ []string) error {
	ctx := context.Background()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	client, err := newClient(ctx, rt, nil)
	if err != nil {
		return err
	}
	model := p.Model
	if model == "" {
		model = client.Model
	}
	status, err := pull(ctx, client, model)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Pulled %s: %s\n", model, status)
	return nil
}

func pull(ctx context.Context, client *ollama.Client, model string) (string, error) {
	logger := log.Logger("pull")
	logger.Infof("pulling model %v from %v", model, client.BaseURL)
	resp, err := client.PullModel(ctx, model)
	if err != nil {
		return "", fmt.Errorf("failed to pull model %v: %w", model, err)
	}
	return resp.Status, nil
}
