package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "anthropic", cfg.AIProvider)
	assert.Equal(t, 90*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 3, cfg.GenerateMaxAttempts)
	assert.Equal(t, 2, cfg.VariantMaxAttempts)
	assert.Equal(t, 2, cfg.InsertMaxAttempts)
	assert.False(t, cfg.ReferenceFetchEnabled)
	assert.Empty(t, cfg.DeployCLIArgs)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"AI_PROVIDER: openai\nOPENAI_API_KEY: sk-file\nRENDER_CACHE_SIZE: 10\n"), 0o600))

	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "gsk-env")
	t.Setenv("RETRY_DELAY", "2s")
	t.Setenv("DEPLOY_CLI_ARGS", "--prod,--yes")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "groq", cfg.AIProvider)
	assert.Equal(t, "gsk-env", cfg.GroqAPIKey)
	assert.Equal(t, "sk-file", cfg.OpenAIAPIKey)
	assert.Equal(t, 10, cfg.RenderCacheSize)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, []string{"--prod", "--yes"}, cfg.DeployCLIArgs)
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("AI_PROVIDER: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestWriteTimeout(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// Three 90s attempts, two 500ms delays, then the margin.
	assert.Equal(t, 3*90*time.Second+time.Second+30*time.Second, cfg.WriteTimeout())

	budget := time.Duration(cfg.GenerateMaxAttempts)*cfg.ProviderTimeout +
		time.Duration(cfg.GenerateMaxAttempts-1)*cfg.RetryDelay
	assert.Greater(t, cfg.WriteTimeout(), budget)

	cfg.VariantMaxAttempts = 5
	assert.Equal(t, 5*90*time.Second+2*time.Second+30*time.Second, cfg.WriteTimeout())

	cfg.ReferenceFetchEnabled = true
	assert.Equal(t, 5*90*time.Second+2*time.Second+30*time.Second+10*time.Second, cfg.WriteTimeout())

	cfg.ProviderTimeout = 0
	assert.Zero(t, cfg.WriteTimeout())
}
