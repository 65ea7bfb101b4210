package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/llmcompare/internal/config"
	"github.com/davidbz/llmcompare/internal/http/middleware"
	"github.com/davidbz/llmcompare/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      *config.ServerConfig
	handler     *Handler
	metrics     *observability.Metrics
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	metrics *observability.Metrics,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      cfg,
		handler:     handler,
		metrics:     metrics,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Routes returns the routed handler wrapped by the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/compare/stream", s.handler.HandleCompareStream)

	mux.HandleFunc("POST /v1/sessions", s.handler.HandleCreateSession)
	mux.HandleFunc("GET /v1/sessions", s.handler.HandleListSessions)
	mux.HandleFunc("GET /v1/sessions/{id}", s.handler.HandleGetSession)
	mux.HandleFunc("PATCH /v1/sessions/{id}", s.handler.HandleUpdateSession)
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.handler.HandleDeleteSession)
	mux.HandleFunc("POST /v1/sessions/{id}/chat", s.handler.HandleChatTurn)

	mux.HandleFunc("POST /v1/comparisons", s.handler.HandleSaveComparison)
	mux.HandleFunc("GET /v1/comparisons", s.handler.HandleListComparisons)
	mux.HandleFunc("DELETE /v1/comparisons/{id}", s.handler.HandleDeleteComparison)

	mux.HandleFunc("GET /v1/models", s.handler.HandleListModels)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Duration(s.config.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
