package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	rediscache "github.com/davidbz/llmcompare/internal/cache/redis"
	"github.com/davidbz/llmcompare/internal/catalog"
	"github.com/davidbz/llmcompare/internal/config"
	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/anthropic"
	"github.com/davidbz/llmcompare/internal/provider/breaker"
	"github.com/davidbz/llmcompare/internal/provider/echo"
	"github.com/davidbz/llmcompare/internal/provider/google"
	"github.com/davidbz/llmcompare/internal/provider/openai"
	"github.com/davidbz/llmcompare/internal/storage/memory"
	"github.com/davidbz/llmcompare/internal/storage/postgres"
)

// registerProviders registers every configured provider. Providers without
// credentials are skipped.
func registerProviders(ctx context.Context, reg domain.ProviderRegistry, cfg *config.Config) error {
	logger := observability.FromContext(ctx)

	var adapters []domain.ProviderAdapter

	for kind, providerCfg := range map[domain.ProviderKind]openai.Config{
		domain.ProviderOpenAI: cfg.OpenAI,
		domain.ProviderXAI:    cfg.XAI,
	} {
		if providerCfg.APIKey == "" {
			logger.Info("provider not configured", zap.String("provider", kind.String()))
			continue
		}
		adapter, err := openai.NewProvider(kind, providerCfg)
		if err != nil {
			return fmt.Errorf("failed to create %s provider: %w", kind, err)
		}
		adapters = append(adapters, adapter)
	}

	if cfg.Anthropic.APIKey != "" {
		adapter, err := anthropic.NewProvider(cfg.Anthropic)
		if err != nil {
			return fmt.Errorf("failed to create anthropic provider: %w", err)
		}
		adapters = append(adapters, adapter)
	}

	if cfg.Google.APIKey != "" {
		adapter, err := google.NewProvider(cfg.Google)
		if err != nil {
			return fmt.Errorf("failed to create google provider: %w", err)
		}
		adapters = append(adapters, adapter)
	}

	if cfg.Echo.Enabled {
		adapters = append(adapters, echo.NewProvider(cfg.Echo))
	}

	for _, adapter := range adapters {
		if cfg.Breaker.Enabled {
			adapter = breaker.Wrap(adapter, cfg.Breaker)
		}
		if err := reg.Register(ctx, adapter); err != nil {
			return fmt.Errorf("failed to register %s provider: %w", adapter.Kind(), err)
		}
		logger.Info("provider registered", zap.String("provider", adapter.Kind().String()))
	}

	return nil
}

// builtinPricing merges every adapter's default pricing table.
func builtinPricing() map[domain.ProviderKind]map[string]domain.ModelPricing {
	return map[domain.ProviderKind]map[string]domain.ModelPricing{
		domain.ProviderOpenAI:    openai.DefaultPricing(),
		domain.ProviderXAI:       openai.XAIPricing(),
		domain.ProviderAnthropic: anthropic.DefaultPricing(),
		domain.ProviderGoogle:    google.DefaultPricing(),
		domain.ProviderEcho:      echo.DefaultPricing(),
	}
}

type catalogSourceResult struct {
	dig.Out

	Source catalog.Source
	Closer func() error `group:"closers"`
}

// newCatalogSource layers the remote feed over the built-in tables. When Redis
// is configured the feed is read through the shared cache.
func newCatalogSource(
	ctx context.Context,
	cfg *config.CatalogConfig,
	redisCfg *config.RedisConfig,
) (catalogSourceResult, error) {
	logger := observability.FromContext(ctx)
	base := catalog.NewStaticSource(builtinPricing())
	result := catalogSourceResult{
		Source: base,
		Closer: func() error { return nil },
	}

	if cfg.FeedURL == "" {
		return result, nil
	}

	var feed catalog.Source = catalog.NewFeedSource(cfg.FeedURL, cfg.FeedTimeout)

	if redisCfg.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		cached, err := rediscache.NewCatalogCache(client, cfg.CacheKey, cfg.CacheTTL, feed)
		if err != nil {
			_ = client.Close()
			return catalogSourceResult{}, fmt.Errorf("failed to create catalog cache: %w", err)
		}
		feed = cached
		result.Closer = client.Close
		logger.Info("catalog cache enabled", zap.String("redis_addr", redisCfg.Addr))
	}

	result.Source = catalog.NewLayered(base, func(err error) {
		logger.Warn("catalog feed unavailable", zap.Error(err))
	}, feed)

	return result, nil
}

type storesResult struct {
	dig.Out

	Sessions    domain.SessionStore
	Comparisons domain.ComparisonStore
	Closer      func() error `group:"closers"`
}

// newStores uses Postgres when a DSN is configured and the in-process store
// otherwise.
func newStores(ctx context.Context, cfg *postgres.Config) (storesResult, error) {
	logger := observability.FromContext(ctx)

	if cfg.DSN == "" {
		logger.Warn("no database configured, using in-memory store")
		store := memory.NewStore()
		return storesResult{
			Sessions:    store,
			Comparisons: store,
			Closer:      func() error { return nil },
		}, nil
	}

	db, err := postgres.NewDB(*cfg)
	if err != nil {
		return storesResult{}, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return storesResult{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	store := postgres.NewStore(db)
	return storesResult{
		Sessions:    store,
		Comparisons: store,
		Closer:      sqlDB.Close,
	}, nil
}
