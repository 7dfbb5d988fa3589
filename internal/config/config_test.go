package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/translateflow/internal/config"
)

// unsetConfigEnv removes every variable config.Config reads and restores the
// previous values when the test ends.
func unsetConfigEnv(t *testing.T) {
	t.Helper()

	params, err := env.GetFieldParams(&config.Config{})
	require.NoError(t, err)

	for _, param := range params {
		t.Setenv(param.Key, "")
		require.NoError(t, os.Unsetenv(param.Key))
	}
}

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		unsetConfigEnv(t)

		cfg, err := config.Load()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		require.Equal(t, "demonstration_data/text_for_translate.md", cfg.Translate.InputPath)
		require.Equal(t, "demonstration_data/translated.md", cfg.Translate.OutputPath)
		require.NotEmpty(t, cfg.Translate.SystemPrompt)
		require.Empty(t, cfg.LLM.Provider)
		require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		require.Equal(t, 1024, cfg.LLM.MaxTokens)
		require.InDelta(t, 0.3, cfg.LLM.Temperature, 0.0001)
		require.Equal(t, 3, cfg.LLM.RetryAttempts)
		require.Equal(t, 5*time.Second, cfg.LLM.RetryDelay)
		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, 0, cfg.OpenAI.Timeout)
		require.Equal(t, 0, cfg.OpenAI.MaxRetries)
		require.Empty(t, cfg.OpenAI.APIKey)
		require.False(t, cfg.Cache.Enabled())
		require.Equal(t, 24*time.Hour, cfg.Cache.TTL)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		t.Setenv("TRANSLATE_INPUT_PATH", "/tmp/in.md")
		t.Setenv("TRANSLATE_OUTPUT_PATH", "/tmp/out.md")
		t.Setenv("TRANSLATE_SYSTEM_PROMPT", "Translate to German.")
		t.Setenv("LLM_PROVIDER", "echo")
		t.Setenv("LLM_MODEL", "echo4")
		t.Setenv("LLM_MAX_TOKENS", "2048")
		t.Setenv("LLM_TEMPERATURE", "0")
		t.Setenv("LLM_RETRY_ATTEMPTS", "5")
		t.Setenv("LLM_RETRY_DELAY", "250ms")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("OPENAI_TIMEOUT", "120")
		t.Setenv("CACHE_REDIS_ADDR", "localhost:6379")
		t.Setenv("CACHE_TTL", "1h")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := config.Load()

		require.NoError(t, err)
		require.Equal(t, "/tmp/in.md", cfg.Translate.InputPath)
		require.Equal(t, "/tmp/out.md", cfg.Translate.OutputPath)
		require.Equal(t, "Translate to German.", cfg.Translate.SystemPrompt)
		require.Equal(t, "echo", cfg.LLM.Provider)
		require.Equal(t, "echo4", cfg.LLM.Model)
		require.Equal(t, 2048, cfg.LLM.MaxTokens)
		require.Zero(t, cfg.LLM.Temperature)
		require.Equal(t, 5, cfg.LLM.RetryAttempts)
		require.Equal(t, 250*time.Millisecond, cfg.LLM.RetryDelay)
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, 120, cfg.OpenAI.Timeout)
		require.True(t, cfg.Cache.Enabled())
		require.Equal(t, time.Hour, cfg.Cache.TTL)
		require.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		t.Setenv("LLM_MAX_TOKENS", "0")
		t.Setenv("LLM_TEMPERATURE", "3.5")
		t.Setenv("LLM_RETRY_ATTEMPTS", "0")

		cfg, err := config.Load()

		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "LLM_MAX_TOKENS")
		require.Contains(t, err.Error(), "LLM_TEMPERATURE")
		require.Contains(t, err.Error(), "LLM_RETRY_ATTEMPTS")
	})

	t.Run("should reject malformed values", func(t *testing.T) {
		t.Setenv("LLM_RETRY_DELAY", "soon")

		cfg, err := config.Load()

		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "failed to parse config")
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	unsetConfigEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Translate, deps.Translate)
	require.Same(t, &cfg.LLM, deps.LLM)
	require.Same(t, &cfg.OpenAI, deps.OpenAI)
	require.Same(t, &cfg.Cache, deps.Cache)
	require.Same(t, &cfg.Log, deps.Log)
}

func TestUnsetConfigEnv(t *testing.T) {
	t.Setenv("TRANSLATEFLOW_UNRELATED", "kept")
	t.Setenv("LLM_MODEL", "gpt-4.1")

	unsetConfigEnv(t)

	_, set := os.LookupEnv("LLM_MODEL")
	require.False(t, set)
	require.Equal(t, "kept", os.Getenv("TRANSLATEFLOW_UNRELATED"))
}
