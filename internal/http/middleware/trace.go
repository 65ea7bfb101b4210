package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/davidbz/llmcompare/internal/observability"
)

// Trace opens a server span around every request and injects trace, request
// and caller identifiers into its context. When the span is not recording,
// locally generated IDs take its place.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := observability.GenerateRequestID()
			ctx := observability.WithRequestID(r.Context(), requestID)

			if userID := r.Header.Get("X-User-Id"); userID != "" {
				ctx = observability.WithUserID(ctx, userID)
			}

			ctx, span := observability.StartSpan(ctx, "http.request",
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
				attribute.String("request.id", requestID),
			)
			defer span.End()

			if observability.GetTraceID(ctx) == "" {
				ctx = observability.WithTraceID(ctx, observability.GenerateTraceID())
				ctx = observability.WithSpanID(ctx, observability.GenerateSpanID())
			}

			w.Header().Set("X-Trace-Id", observability.GetTraceID(ctx))
			w.Header().Set("X-Request-Id", requestID)

			observability.FromContext(ctx).Info("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
