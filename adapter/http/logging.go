package http

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
)

const (
	requestTimeLayout = "02/01/2006, 15:04:05.000"
	slowRequest       = 400 * time.Millisecond
)

// RequestLogger writes one colored line per request:
// METHOD URL STATUS - ELAPSED ms - DD/MM/YYYY, HH:mm:ss.SSS
type RequestLogger struct {
	out      io.Writer
	location *time.Location
	now      func() time.Time
	mu       sync.Mutex
}

// NewRequestLogger creates a logger writing to out (stdout when nil) with
// timestamps in loc (local time when nil).
func NewRequestLogger(out io.Writer, loc *time.Location) *RequestLogger {
	if out == nil {
		out = os.Stdout
	}
	if loc == nil {
		loc = time.Local
	}
	return &RequestLogger{out: out, location: loc, now: time.Now}
}

// Handler wraps next with request logging.
func (l *RequestLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := httpsnoop.CaptureMetrics(next, w, r)
		line := l.Format(r.Method, r.URL.RequestURI(), metrics.Code, metrics.Duration)
		l.mu.Lock()
		defer l.mu.Unlock()
		fmt.Fprintln(l.out, line)
	})
}

// Format renders a single request log line.
func (l *RequestLogger) Format(method, uri string, status int, elapsed time.Duration) string {
	return fmt.Sprintf("%s %s %s - %s ms - %s",
		method, uri, colorizeStatus(status), colorizeElapsed(elapsed),
		l.now().In(l.location).Format(requestTimeLayout))
}

func colorize(value any, color int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", color, value)
}

func colorizeStatus(status int) string {
	switch {
	case status >= 500:
		return colorize(status, 31)
	case status >= 400:
		return colorize(status, 33)
	case status >= 300:
		return colorize(status, 34)
	case status >= 200:
		return colorize(status, 32)
	}
	return fmt.Sprint(status)
}

func colorizeElapsed(elapsed time.Duration) string {
	color := 42
	if elapsed > slowRequest {
		color = 41
	}
	return colorize(elapsed.Milliseconds(), color)
}
