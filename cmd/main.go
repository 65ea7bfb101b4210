package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/llmcompare/internal/catalog"
	"github.com/davidbz/llmcompare/internal/config"
	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/http"
	"github.com/davidbz/llmcompare/internal/http/middleware"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/registry"
	"github.com/davidbz/llmcompare/internal/routing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := buildContainer(ctx)

	// The logger is global; build it before anything that logs.
	if err := container.Invoke(func(*zap.Logger) {}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := container.Invoke(run); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

type runParams struct {
	dig.In

	Ctx       context.Context
	Logger    *zap.Logger
	Tracing   *config.TracingConfig
	ServerCfg *config.ServerConfig
	Server    *http.Server
	Refresher *catalog.Refresher
	Closers   []func() error `group:"closers"`
}

// run starts background work and the HTTP server, then blocks until a
// shutdown signal arrives or the server fails.
func run(p runParams) error {
	ctx := p.Ctx
	logger := p.Logger
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.SetupTracing(p.Tracing.Exporter)
	if err != nil {
		return err
	}

	if err := p.Refresher.Refresh(ctx); err != nil {
		logger.Warn("initial catalog refresh failed, serving built-in pricing", zap.Error(err))
	}
	p.Refresher.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- p.Server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-serverErr:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(p.ServerCfg.ShutdownTimeout)*time.Second)
	defer cancel()

	var errs []error
	errs = append(errs, err)
	errs = append(errs, p.Server.Shutdown(shutdownCtx))
	p.Refresher.Stop()
	for _, closeFn := range p.Closers {
		errs = append(errs, closeFn())
	}
	errs = append(errs, shutdownTracing(shutdownCtx))

	return errors.Join(errs...)
}

func buildContainer(ctx context.Context) *dig.Container {
	container := dig.New()

	provide := func(name string, constructor any, opts ...dig.ProvideOption) {
		if err := container.Provide(constructor, opts...); err != nil {
			log.Fatalf("Failed to provide %s: %v", name, err)
		}
	}

	provide("context", func() context.Context { return ctx })

	// Configuration
	provide("config", config.Load)
	provide("config dependencies", config.ParseDependenciesConfig)
	provide("stream settings", func(cfg *config.StreamConfig) domain.StreamSettings {
		return cfg.Settings()
	})

	// Observability
	provide("logger", observability.InitLogger)
	provide("metrics", func() (*observability.Metrics, error) {
		return observability.NewMetrics(prometheus.NewRegistry())
	})

	// Providers
	provide("registry", func(ctx context.Context, cfg *config.Config) (domain.ProviderRegistry, error) {
		reg := registry.NewRegistry()
		if err := registerProviders(ctx, reg, cfg); err != nil {
			return nil, err
		}
		return reg, nil
	})
	provide("router", func(reg domain.ProviderRegistry, cfg *config.StreamConfig) (domain.Router, error) {
		defaults, err := routing.ParseTargets(cfg.DefaultTargets)
		if err != nil {
			return nil, err
		}
		return routing.NewRouter(reg, defaults), nil
	})

	// Catalog
	provide("catalog", func() *catalog.Catalog { return catalog.New(nil) })
	provide("pricing catalog", func(c *catalog.Catalog) domain.PricingCatalog { return c })
	provide("catalog source", newCatalogSource)
	provide("catalog refresher", func(
		c *catalog.Catalog,
		source catalog.Source,
		cfg *config.CatalogConfig,
		metrics *observability.Metrics,
	) *catalog.Refresher {
		return catalog.NewRefresher(c, source, cfg.RefreshInterval, metrics)
	})

	// Storage
	provide("stores", newStores)

	// Domain Services
	provide("comparison service", domain.NewComparisonService)
	provide("chat service", domain.NewChatService)
	provide("history service", domain.NewHistoryService)

	// HTTP Layer
	provide("middlewares", func(
		ctx context.Context,
		cors *config.CORSConfig,
		rate *config.RateLimitConfig,
	) middleware.Middleware {
		return middleware.BuildMiddlewareChain(ctx, cors, rate)
	})
	provide("HTTP handler", http.NewHandler)
	provide("HTTP server", http.NewServer)

	return container
}
