package openai

// Config contains configuration for an OpenAI-compatible provider.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL(); empty selects the provider default
//   - Timeout: Response header timeout of the SDK's HTTP transport (in seconds)
//   - MaxRetries: Maps to option.WithMaxRetries()
type Config struct {
	APIKey     string `env:"API_KEY"`
	BaseURL    string `env:"BASE_URL"`
	Timeout    int    `env:"TIMEOUT"     envDefault:"120"`
	MaxRetries int    `env:"MAX_RETRIES" envDefault:"2"`
}
