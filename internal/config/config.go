// Package config loads the service configuration from YAML and the environment.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/xlate/internal/debug"
	"github.com/viant/xlate/internal/log"
	"gopkg.in/yaml.v3"
)

//go:embed default/config.yaml
var defaultYAML []byte

type (
	Config struct {
		Port      int        `yaml:"port" env:"XLATE_PORT"`
		IsLocal   bool       `yaml:"isLocal" env:"XLATE_IS_LOCAL"`
		Mode      string     `yaml:"mode" env:"XLATE_MODE"`
		Timezone  string     `yaml:"timezone" env:"XLATE_TIMEZONE"`
		DebugFile string     `yaml:"debugFile" env:"XLATE_DEBUG_FILE"`
		Log       log.Config `yaml:"log"`
		Ollama    Ollama     `yaml:"ollama"`
		Translate Translate  `yaml:"translate"`
		Server    Server     `yaml:"server"`
		Locales   string     `yaml:"locales,omitempty" env:"XLATE_LOCALES"`
	}

	Ollama struct {
		BaseURL string        `yaml:"baseURL" env:"XLATE_OLLAMA_URL"`
		Model   string        `yaml:"model" env:"XLATE_OLLAMA_MODEL"`
		Timeout time.Duration `yaml:"timeout" env:"XLATE_OLLAMA_TIMEOUT"`
		API     string        `yaml:"api" env:"XLATE_OLLAMA_API"`
		Pull    bool          `yaml:"pull" env:"XLATE_OLLAMA_PULL"`
	}

	Translate struct {
		Template string `yaml:"template" env:"XLATE_TEMPLATE"`
		Engine   string `yaml:"engine" env:"XLATE_TEMPLATE_ENGINE"`
		System   string `yaml:"system,omitempty" env:"XLATE_SYSTEM_PROMPT"`
	}

	Server struct {
		ReadTimeout  time.Duration `yaml:"readTimeout" env:"XLATE_READ_TIMEOUT"`
		WriteTimeout time.Duration `yaml:"writeTimeout" env:"XLATE_WRITE_TIMEOUT"`
		BodyLimit    int64         `yaml:"bodyLimit" env:"XLATE_BODY_LIMIT"`
	}
)

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UsesGenerate reports whether translations go through the generate API instead of chat.
func (o *Ollama) UsesGenerate() bool {
	return strings.EqualFold(strings.TrimSpace(o.API), "generate")
}

// Environment returns the operational context consumed by the debug gate.
func (c *Config) Environment() *debug.Environment {
	return &debug.Environment{
		IsLocal:  c.IsLocal,
		Mode:     c.Mode,
		Location: debug.LoadLocation(c.Timezone),
	}
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode default config: %w", err)
	}
	return cfg, nil
}

// Load reads the embedded defaults, overlays the YAML at location when set, then
// applies environment overrides.
func Load(ctx context.Context, location string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if location != "" {
		fs := afs.New()
		URL := normalize(location)
		ok, err := fs.Exists(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to check config %v: %w", location, err)
		}
		if !ok {
			return nil, fmt.Errorf("config not found: %v", location)
		}
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", location, err)
		}
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config %v: %w", location, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func normalize(location string) string {
	if url.Scheme(location, "") != "" {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return file.Scheme + "://" + location
}
