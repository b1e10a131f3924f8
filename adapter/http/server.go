package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/op/go-logging"
	"github.com/viant/xlate/internal/i18n"
	"github.com/viant/xlate/service"
)

// DefaultBodyLimit caps request bodies at 150MB.
const DefaultBodyLimit int64 = 150 << 20

// Translator performs the translation use case.
type Translator interface {
	Translate(ctx context.Context, req *service.TranslateRequest) (map[string]any, error)
}

// Server exposes the translation endpoints:
//
//	GET  /          -> health text
//	POST /translate -> JSON object produced by the model
type Server struct {
	translator Translator
	responder  responder
	bodyLimit  int64
	requestLog *RequestLogger
	logger     *logging.Logger
}

// ServerOption customises HTTP server behaviour.
type ServerOption func(*Server)

// WithBodyLimit sets the maximum accepted request body size.
func WithBodyLimit(limit int64) ServerOption {
	return func(s *Server) {
		if limit > 0 {
			s.bodyLimit = limit
		}
	}
}

// WithBundle sets the message catalogs used for responses.
func WithBundle(bundle *i18n.Bundle) ServerOption {
	return func(s *Server) {
		if bundle != nil {
			s.responder.bundle = bundle
		}
	}
}

// WithRequestLog enables per-request logging.
func WithRequestLog(out io.Writer, loc *time.Location) ServerOption {
	return func(s *Server) { s.requestLog = NewRequestLogger(out, loc) }
}

// NewServer returns an http.Handler with routes bound.
func NewServer(translator Translator, opts ...ServerOption) http.Handler {
	s := &Server{
		translator: translator,
		responder:  responder{bundle: i18n.Default()},
		bodyLimit:  DefaultBodyLimit,
		logger:     logging.MustGetLogger("http"),
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /translate", s.handleTranslate)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.responder.failure(w, r, NewStatusError("route.notFound", http.StatusNotFound, nil))
	})

	handler := WithCORS(mux)
	if s.requestLog != nil {
		handler = s.requestLog.Handler(handler)
	}
	return handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "Everything ok!")
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.bodyLimit)
	req := &service.TranslateRequest{}
	if err := json.NewDecoder(body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.responder.failure(w, r, NewStatusError("request.tooLarge", http.StatusRequestEntityTooLarge, err))
			return
		}
		s.responder.validation(w, r, "request.invalidBody")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		s.responder.validation(w, r, "translate.missingString")
		return
	}
	result, err := s.translator.Translate(r.Context(), req)
	if err != nil {
		s.logger.Errorf("translate failed: %v", err)
		s.responder.failure(w, r, NewStatusError("translate.failed", http.StatusInternalServerError, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
