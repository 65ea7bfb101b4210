package google

// Config contains Gemini provider configuration.
type Config struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout int    `env:"TIMEOUT"  envDefault:"120"`
}
