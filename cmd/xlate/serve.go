package xlate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/viant/afs"
	httpadapter "github.com/viant/xlate/adapter/http"
	"github.com/viant/xlate/genai/llm/provider/ollama"
	"github.com/viant/xlate/genai/prompt"
	"github.com/viant/xlate/genai/usage"
	"github.com/viant/xlate/internal/i18n"
	"github.com/viant/xlate/internal/log"
	"github.com/viant/xlate/service"
)

// ServeCmd starts the HTTP server.
// Usage: xlate serve --addr :3000
type ServeCmd struct {
	Addr   string `short:"a" long:"addr" description:"listen address, defaults to the configured port"`
	Gops   bool   `long:"gops" description:"start the gops diagnostics agent"`
	Events string `long:"events" description:"append translation events as JSON lines to this file"`
	Pull   bool   `long:"pull" description:"pull the configured model before serving"`
}

func (s *ServeCmd) Execute(_ []string) error {
	ctx := context.Background()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	logger := log.Logger("serve")

	if s.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("failed to start gops agent: %w", err)
		}
		defer agent.Close()
	}
	if s.Events != "" {
		f, err := os.OpenFile(s.Events, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open events file %v: %w", s.Events, err)
		}
		defer f.Close()
		log.FileSink(f)
	}

	tokens := &usage.Aggregator{}
	defer func() {
		if summary := tokens.Summary(); summary != "" {
			logger.Infof("token usage:\n%s", summary)
		}
	}()
	client, err := newClient(ctx, rt, tokens.OnUsage)
	if err != nil {
		return err
	}
	if s.Pull || rt.cfg.Ollama.Pull {
		if _, err := pull(ctx, client, client.Model); err != nil {
			return err
		}
	}
	handler, err := newHandler(ctx, rt, client, os.Stdout)
	if err != nil {
		return err
	}

	addr := s.Addr
	if addr == "" {
		addr = rt.cfg.Addr()
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		WriteTimeout: rt.cfg.Server.WriteTimeout,
		ReadTimeout:  rt.cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("Received %s, initiating graceful shutdown", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	case err := <-errCh:
		return err
	}
}

// newHandler wires the translation service and HTTP adapter from the configuration.
func newHandler(ctx context.Context, rt *runtime, client *ollama.Client, requestLog io.Writer) (http.Handler, error) {
	var chatter service.Chatter = client
	if rt.cfg.Ollama.UsesGenerate() {
		chatter = &ollama.Completer{Client: client}
	}
	tmpl := prompt.New(afs.New(), rt.cfg.Translate.Template)
	tmpl.Engine = rt.cfg.Translate.Engine
	svc := service.New(chatter, tmpl, service.Options{
		Reporter: rt.reporter,
		System:   rt.cfg.Translate.System,
	})

	options := []httpadapter.ServerOption{
		httpadapter.WithBodyLimit(rt.cfg.Server.BodyLimit),
		httpadapter.WithRequestLog(requestLog, rt.env.Location),
	}
	if rt.cfg.Locales != "" {
		bundle, err := i18n.LoadURL(ctx, afs.New(), rt.cfg.Locales)
		if err != nil {
			return nil, err
		}
		options = append(options, httpadapter.WithBundle(bundle))
	}
	return httpadapter.NewServer(svc, options...), nil
}
