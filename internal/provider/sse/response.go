package sse

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
)

const maxErrorBody = 4 << 10

// NewHTTPClient returns a client for long-lived streams. The timeout bounds the
// wait for response headers only, never the body.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if headerTimeout > 0 {
		transport.ResponseHeaderTimeout = headerTimeout
	}
	return &http.Client{Transport: transport}
}

// CheckResponse turns a non-200 provider response into an error wrapping the
// matching domain sentinel. The body is closed on error.
func CheckResponse(provider domain.ProviderKind, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(body))

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		sentinel = domain.ErrAuthInvalid
	case resp.StatusCode == http.StatusTooManyRequests:
		sentinel = domain.ErrRateLimit
	case resp.StatusCode >= http.StatusInternalServerError:
		sentinel = domain.ErrProviderUnavailable
	default:
		return fmt.Errorf("%s: HTTP %d: %s", provider, resp.StatusCode, detail)
	}

	return fmt.Errorf("%s: %w (HTTP %d): %s", provider, sentinel, resp.StatusCode, detail)
}
