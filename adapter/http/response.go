package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viant/xlate/internal/i18n"
)

// StatusError is an error carrying the HTTP status and message key to respond with.
type StatusError struct {
	Status int
	Key    string
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e *StatusError) Unwrap() error { return e.Err }

// NewStatusError creates a StatusError; status defaults to 500 and key to "Error".
func NewStatusError(key string, status int, err error) *StatusError {
	if key == "" {
		key = "Error"
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &StatusError{Status: status, Key: key, Err: err}
}

// responder writes JSON envelopes with messages translated for the request.
type responder struct {
	bundle *i18n.Bundle
}

// envelope merges the translated message with optional data fields.
func (p *responder) envelope(r *http.Request, key string, data map[string]any) map[string]any {
	if key == "" {
		key = "default"
	}
	body := map[string]any{"message": p.bundle.Text(p.bundle.FromRequest(r), key)}
	for k, v := range data {
		body[k] = v
	}
	return body
}

// failure responds with err's status and key when it is a StatusError, 500 otherwise.
func (p *responder) failure(w http.ResponseWriter, r *http.Request, err error) {
	statusErr := &StatusError{}
	if !errors.As(err, &statusErr) {
		statusErr = NewStatusError("error.internal", http.StatusInternalServerError, err)
	}
	writeJSON(w, statusErr.Status, p.envelope(r, statusErr.Key, nil))
}

func (p *responder) validation(w http.ResponseWriter, r *http.Request, keys ...string) {
	tag := p.bundle.FromRequest(r)
	errs := make([]string, 0, len(keys))
	for _, key := range keys {
		errs = append(errs, p.bundle.Text(tag, key))
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
