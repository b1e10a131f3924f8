package http

import (
	"net/http"
	"strings"
)

// CORS describes the cross-origin policy applied by WithCORS.
type CORS struct {
	Origin  string
	Methods []string
	// Headers lists the allowed request headers; empty reflects the preflight's
	// Access-Control-Request-Headers.
	Headers []string
}

// DefaultCORS allows any origin without credentials.
var DefaultCORS = CORS{
	Origin:  "*",
	Methods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
}

// WithCORS applies DefaultCORS to next.
func WithCORS(next http.Handler) http.Handler {
	return DefaultCORS.Handler(next)
}

// Handler sets the allowed origin on every response and answers OPTIONS
// preflights with 204 without calling next.
func (c CORS) Handler(next http.Handler) http.Handler {
	if next == nil {
		return nil
	}
	methods := strings.Join(c.Methods, ",")
	headers := strings.Join(c.Headers, ",")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", c.Origin)
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h.Set("Access-Control-Allow-Methods", methods)
		allowed := headers
		if allowed == "" {
			allowed = r.Header.Get("Access-Control-Request-Headers")
			h.Add("Vary", "Access-Control-Request-Headers")
		}
		if allowed != "" {
			h.Set("Access-Control-Allow-Headers", allowed)
		}
		h.Set("Content-Length", "0")
		w.WriteHeader(http.StatusNoContent)
	})
}
