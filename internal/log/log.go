// Package log configures the process-wide diagnostic logging backend.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

// DefaultFormat is used when the configuration carries no formatter.
const DefaultFormat = `%{time:2006-01-02 15:04:05.000} %{level:.4s} [%{module}] %{message}`

// Config controls the diagnostic backend.
type Config struct {
	Formatter string `yaml:"formatter,omitempty" env:"XLATE_LOG_FORMATTER"`
	Level     string `yaml:"level,omitempty" env:"XLATE_LOG_LEVEL"`
}

// Setup installs a leveled backend writing to w (stderr when nil).
func Setup(cfg *Config, w io.Writer) (logging.LeveledBackend, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if w == nil {
		w = os.Stderr
	}
	pattern := cfg.Formatter
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultFormat
	}
	format, err := logging.NewStringFormatter(pattern)
	if err != nil {
		return nil, err
	}
	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))

	level := logging.INFO
	if name := strings.TrimSpace(cfg.Level); name != "" {
		if level, err = logging.LogLevel(name); err != nil {
			return nil, err
		}
	}
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return leveled, nil
}

// Logger returns the named module logger.
func Logger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}
