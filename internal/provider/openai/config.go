package openai

// Config contains OpenAI provider configuration.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds, 0 disables it)
//   - MaxRetries: Maps to option.WithMaxRetries()
//
// MaxRetries defaults to 0 so that one Complete call is one HTTP request;
// retries are owned by domain.RetryingClient.
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com/v1"`
	Timeout    int    `env:"OPENAI_TIMEOUT"     envDefault:"0"`
	MaxRetries int    `env:"OPENAI_MAX_RETRIES" envDefault:"0"`
}
