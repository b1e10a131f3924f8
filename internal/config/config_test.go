package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.EqualValues(t, 3000, cfg.Port)
	assert.EqualValues(t, "production", cfg.Mode)
	assert.EqualValues(t, ".debug", cfg.DebugFile)
	assert.EqualValues(t, "deepseek-llm:7b", cfg.Ollama.Model)
	assert.EqualValues(t, 120*time.Second, cfg.Ollama.Timeout)
	assert.EqualValues(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.EqualValues(t, 120*time.Second, cfg.Server.ReadTimeout)
	assert.EqualValues(t, "placeholder", cfg.Translate.Engine)
	assert.False(t, cfg.Ollama.UsesGenerate())
	assert.False(t, cfg.Ollama.Pull)
	assert.Empty(t, cfg.Locales)
	assert.EqualValues(t, int64(150<<20), cfg.Server.BodyLimit)
	assert.EqualValues(t, ":3000", cfg.Addr())
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/xlate_config.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader("port: 8081\nmode: staging\nollama:\n  model: llama3\n")))

	testCases := []struct {
		description string
		location    string
		env         map[string]string
		expectPort  int
		expectMode  string
		expectModel string
		expectLocal bool
		expectError string
	}{
		{
			description: "embedded defaults",
			expectPort:  3000,
			expectMode:  "production",
			expectModel: "deepseek-llm:7b",
		},
		{
			description: "yaml overlay keeps unset defaults",
			location:    URL,
			expectPort:  8081,
			expectMode:  "staging",
			expectModel: "llama3",
		},
		{
			description: "environment wins over yaml",
			location:    URL,
			env: map[string]string{"XLATE_MODE": "debug", "XLATE_IS_LOCAL": "true", "XLATE_OLLAMA_MODEL": "qwen",
				"XLATE_OLLAMA_API": "generate", "XLATE_TEMPLATE_ENGINE": "go", "XLATE_READ_TIMEOUT": "5s"},
			expectPort:  8081,
			expectMode:  "debug",
			expectModel: "qwen",
			expectLocal: true,
		},
		{
			description: "missing file",
			location:    "mem://localhost/missing_config.yaml",
			expectError: "config not found",
		},
		{
			description: "storage failure is not reported as missing",
			location:    "xlatebogus://localhost/config.yaml",
			expectError: "failed to check config",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(ctx, tc.location)
			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expectPort, cfg.Port)
			assert.EqualValues(t, tc.expectMode, cfg.Mode)
			assert.EqualValues(t, tc.expectModel, cfg.Ollama.Model)
			assert.EqualValues(t, tc.expectLocal, cfg.IsLocal)
			if tc.env != nil {
				assert.True(t, cfg.Ollama.UsesGenerate())
				assert.EqualValues(t, "go", cfg.Translate.Engine)
				assert.EqualValues(t, 5*time.Second, cfg.Server.ReadTimeout)
			}
		})
	}
}

func TestConfig_Environment(t *testing.T) {
	cfg := &Config{IsLocal: true, Mode: "trace", Timezone: "UTC"}
	env := cfg.Environment()
	assert.True(t, env.IsLocal)
	assert.True(t, env.Elevated())
	assert.EqualValues(t, "UTC", env.Location.String())
}
