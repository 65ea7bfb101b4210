package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/anthropic"
	"github.com/davidbz/llmcompare/internal/provider/breaker"
	"github.com/davidbz/llmcompare/internal/provider/echo"
	"github.com/davidbz/llmcompare/internal/provider/google"
	"github.com/davidbz/llmcompare/internal/provider/openai"
	"github.com/davidbz/llmcompare/internal/storage/postgres"
)

// Config represents the service configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Stream    StreamConfig
	Catalog   CatalogConfig
	Redis     RedisConfig
	Tracing   TracingConfig
	Logger    observability.LoggerConfig
	Database  postgres.Config  `envPrefix:"DATABASE_"`
	Breaker   breaker.Config   `envPrefix:"BREAKER_"`
	OpenAI    openai.Config    `envPrefix:"OPENAI_"`
	XAI       openai.Config    `envPrefix:"XAI_"`
	Anthropic anthropic.Config `envPrefix:"ANTHROPIC_"`
	Google    google.Config    `envPrefix:"GOOGLE_"`
	Echo      echo.Config      `envPrefix:"ECHO_"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8080"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"30"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization,X-User-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RateLimitConfig contains per-client request rate settings.
type RateLimitConfig struct {
	Enabled           bool    `env:"RATE_LIMIT_ENABLED"             envDefault:"true"`
	RequestsPerSecond float64 `env:"RATE_LIMIT_REQUESTS_PER_SECOND" envDefault:"5"`
	Burst             int     `env:"RATE_LIMIT_BURST"               envDefault:"10"`
}

// StreamConfig contains streaming engine settings.
type StreamConfig struct {
	IdleTimeout      time.Duration `env:"STREAM_IDLE_TIMEOUT"      envDefault:"120s"`
	DefaultMaxTokens int           `env:"STREAM_DEFAULT_MAX_TOKENS" envDefault:"4096"`
	DefaultTargets   []string      `env:"STREAM_DEFAULT_TARGETS"    envSeparator:"," envDefault:"openai:gpt-4o,anthropic:claude-3-7-sonnet-20250219,xai:grok-3-beta,google:gemini-2.0-flash"`
}

// Settings converts the stream config into domain settings.
func (c *StreamConfig) Settings() domain.StreamSettings {
	return domain.StreamSettings{
		IdleTimeout:      c.IdleTimeout,
		DefaultMaxTokens: c.DefaultMaxTokens,
	}
}

// CatalogConfig contains pricing catalog refresh settings.
type CatalogConfig struct {
	RefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"24h"`
	FeedURL         string        `env:"CATALOG_FEED_URL"`
	FeedTimeout     time.Duration `env:"CATALOG_FEED_TIMEOUT"     envDefault:"10s"`
	CacheKey        string        `env:"CATALOG_CACHE_KEY"        envDefault:"llmcompare:catalog"`
	CacheTTL        time.Duration `env:"CATALOG_CACHE_TTL"        envDefault:"24h"`
}

// RedisConfig contains Redis connection settings. An empty address disables Redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
}

// TracingConfig selects the span exporter.
type TracingConfig struct {
	Exporter string `env:"TRACING_EXPORTER" envDefault:"noop"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*RateLimitConfig
	*StreamConfig
	*CatalogConfig
	*RedisConfig
	*TracingConfig
	Logger    *observability.LoggerConfig
	Database  *postgres.Config
	Breaker   *breaker.Config
	Anthropic *anthropic.Config
	Google    *google.Config
	Echo      *echo.Config
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:             dig.Out{},
		ServerConfig:    &cfg.Server,
		CORSConfig:      &cfg.CORS,
		RateLimitConfig: &cfg.RateLimit,
		StreamConfig:    &cfg.Stream,
		CatalogConfig:   &cfg.Catalog,
		RedisConfig:     &cfg.Redis,
		TracingConfig:   &cfg.Tracing,
		Logger:          &cfg.Logger,
		Database:        &cfg.Database,
		Breaker:         &cfg.Breaker,
		Anthropic:       &cfg.Anthropic,
		Google:          &cfg.Google,
		Echo:            &cfg.Echo,
	}
}
