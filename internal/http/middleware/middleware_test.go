package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/config"
	"github.com/davidbz/llmcompare/internal/http/middleware"
	"github.com/davidbz/llmcompare/internal/observability"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("first"), tag("second"))(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second"}, order)
}

func TestTrace_InjectsIdentifiers(t *testing.T) {
	var requestID, traceID, userID string
	handler := middleware.Trace()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		requestID = observability.GetRequestID(r.Context())
		traceID = observability.GetTraceID(r.Context())
		userID = observability.GetUserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-User-Id", "u-42")
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, requestID)
	require.Equal(t, requestID, rec.Header().Get("X-Request-Id"))
	require.Len(t, rec.Header().Get("X-Trace-Id"), 32)
	require.Equal(t, traceID, rec.Header().Get("X-Trace-Id"))
	require.Equal(t, "u-42", userID)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("should reject requests beyond the burst", func(t *testing.T) {
		handler := middleware.RateLimit(ctx, &config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 0.001,
			Burst:             2,
		})(okHandler())

		codes := make([]int, 0, 3)
		for range 3 {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/compare/stream", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("should key clients separately by address", func(t *testing.T) {
		handler := middleware.RateLimit(ctx, &config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 0.001,
			Burst:             1,
		})(okHandler())

		for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
			req.RemoteAddr = addr
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("should not grant fresh budget for a rotated user header", func(t *testing.T) {
		handler := middleware.RateLimit(ctx, &config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 0.001,
			Burst:             1,
		})(okHandler())

		codes := make([]int, 0, 3)
		for _, user := range []string{"alice", "bob", "carol"} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
			req.RemoteAddr = "10.0.0.3:5555"
			req.Header.Set("X-User-Id", user)
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		require.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	})

	t.Run("should pass through when disabled", func(t *testing.T) {
		handler := middleware.RateLimit(ctx, &config.RateLimitConfig{Enabled: false})(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(&config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-User-Id"},
	})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/compare/stream", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
