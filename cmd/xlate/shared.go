package xlate

import (
	"context"
	"sync"

	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/internal/config"
	"github.com/viant/xlate/internal/debug"
	"github.com/viant/xlate/internal/log"
)

var (
	cfgMu   sync.RWMutex
	cfgPath string
)

// called from CLI after flag parsing
func setConfigPath(p string) {
	cfgMu.Lock()
	cfgPath = p
	cfgMu.Unlock()
}

// runtime carries the components shared by sub-commands.
type runtime struct {
	cfg      *config.Config
	env      *debug.Environment
	gate     *debug.Gate
	reporter *debug.Reporter
}

// bootstrap loads the configuration, installs the logging backend and the
// package-level debug reporter.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfgMu.RLock()
	path := cfgPath
	cfgMu.RUnlock()

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := log.Setup(&cfg.Log, nil); err != nil {
		return nil, err
	}
	env := cfg.Environment()
	gate := debug.New(env, debug.NewFileStore(nil, cfg.DebugFile), debug.WithLogger(log.Logger("debug")))
	reporter := debug.NewReporter(gate, nil, nil)
	debug.SetDefault(reporter)
	return &runtime{cfg: cfg, env: env, gate: gate, reporter: reporter}, nil
}

// newClient creates the Ollama client for the configured host and model.
func newClient(ctx context.Context, rt *runtime, listener ollama.UsageListener) (*ollama.Client, error) {
	return ollama.NewClient(ctx, rt.cfg.Ollama.Model,
		ollama.WithBaseURL(rt.cfg.Ollama.BaseURL),
		ollama.WithTimeout(rt.cfg.Ollama.Timeout),
		ollama.WithUsageListener(listener))
}
