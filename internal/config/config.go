package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/translateflow/internal/cache/redis"
	"github.com/davidbz/translateflow/internal/observability"
	"github.com/davidbz/translateflow/internal/provider/openai"
)

const maxTemperature = 2.0

// Config represents the translator configuration.
type Config struct {
	Translate TranslateConfig
	LLM       LLMConfig
	OpenAI    openai.Config
	Cache     redis.Config
	Log       observability.Config
}

// TranslateConfig contains the files and prompt of a translation run.
type TranslateConfig struct {
	InputPath    string `env:"TRANSLATE_INPUT_PATH"    envDefault:"demonstration_data/text_for_translate.md"`
	OutputPath   string `env:"TRANSLATE_OUTPUT_PATH"   envDefault:"demonstration_data/translated.md"`
	SystemPrompt string `env:"TRANSLATE_SYSTEM_PROMPT" envDefault:"You are a professional translator. Translate the user's text into English, keep Markdown formatting intact and reply with the translation only."`
}

// LLMConfig contains completion parameters and the retry policy.
type LLMConfig struct {
	// Provider selects a registered provider by name; empty routes by Model.
	Provider      string        `env:"LLM_PROVIDER"`
	Model         string        `env:"LLM_MODEL"          envDefault:"gpt-4o-mini"`
	MaxTokens     int           `env:"LLM_MAX_TOKENS"     envDefault:"1024"`
	Temperature   float64       `env:"LLM_TEMPERATURE"    envDefault:"0.3"`
	RetryAttempts int           `env:"LLM_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"LLM_RETRY_DELAY"    envDefault:"5s"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	Translate *TranslateConfig
	LLM       *LLMConfig
	OpenAI    *openai.Config
	Cache     *redis.Config
	Log       *observability.Config
}

// Load loads environment files, parses and validates configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Translate.InputPath == "" {
		errs = append(errs, errors.New("TRANSLATE_INPUT_PATH cannot be empty"))
	}
	if c.Translate.OutputPath == "" {
		errs = append(errs, errors.New("TRANSLATE_OUTPUT_PATH cannot be empty"))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("LLM_MODEL cannot be empty"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > maxTemperature {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be within [0, %.0f], got %g", maxTemperature, c.LLM.Temperature))
	}
	if c.LLM.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("LLM_RETRY_ATTEMPTS must be at least 1, got %d", c.LLM.RetryAttempts))
	}
	if c.LLM.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("LLM_RETRY_DELAY cannot be negative, got %s", c.LLM.RetryDelay))
	}

	return errors.Join(errs...)
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Translate,
		&cfg.LLM,
		&cfg.OpenAI,
		&cfg.Cache,
		&cfg.Log,
	}
}
