package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrModelNotRecognized  = errors.New("model not recognized")
	ErrEmptyStream         = errors.New("empty stream")
	ErrStreamTruncated     = errors.New("stream ended without usage record")
	ErrIdleTimeout         = errors.New("idle timeout waiting for provider")
	ErrDuplicateTarget     = errors.New("duplicate target")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionDrift        = errors.New("provider or model does not match session")
	ErrSessionLimit        = errors.New("session limit reached")
	ErrMessageLimit        = errors.New("message limit reached")
	ErrComparisonNotFound  = errors.New("comparison not found")
	ErrRateLimit           = errors.New("provider rate limit exceeded")
	ErrAuthInvalid         = errors.New("provider rejected credentials")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// RequestError rejects a request before any stream is opened.
type RequestError struct {
	Err error
}

// NewRequestError wraps err as a RequestError.
func NewRequestError(err error) *RequestError {
	return &RequestError{Err: err}
}

// RequestErrorf formats a RequestError.
func RequestErrorf(format string, args ...any) *RequestError {
	return &RequestError{Err: fmt.Errorf(format, args...)}
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// TargetError fails a single target without affecting its siblings.
type TargetError struct {
	Provider ProviderKind
	Model    string
	Err      error
}

// NewTargetError wraps err for the given target.
func NewTargetError(spec TargetSpec, err error) *TargetError {
	return &TargetError{Provider: spec.Provider, Model: spec.Model, Err: err}
}

func (e *TargetError) Error() string { return e.Err.Error() }

func (e *TargetError) Unwrap() error { return e.Err }

// InfrastructureError aborts the whole request.
type InfrastructureError struct {
	Op  string
	Err error
}

// NewInfrastructureError wraps err with the failing operation.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

// IsRequestError reports whether err is, or wraps, a RequestError.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
