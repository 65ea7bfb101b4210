package domain

import (
	"fmt"
	"strings"
)

// ProviderKind identifies a supported provider backend.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderXAI       ProviderKind = "xai"
	ProviderGoogle    ProviderKind = "google"
	ProviderEcho      ProviderKind = "echo"
)

// ProviderKinds returns every known provider kind.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderXAI,
		ProviderGoogle,
		ProviderEcho,
	}
}

// String implements fmt.Stringer.
func (k ProviderKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known provider kinds.
func (k ProviderKind) Valid() bool {
	for _, known := range ProviderKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseProviderKind converts a provider name into a ProviderKind.
func ParseProviderKind(name string) (ProviderKind, error) {
	kind := ProviderKind(strings.ToLower(strings.TrimSpace(name)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return kind, nil
}

// TargetSpec names one (provider, model) pair to stream.
type TargetSpec struct {
	Provider ProviderKind
	Model    string
}

// ID returns the identifier used to key the target inside a multiplexer.
func (t TargetSpec) ID() string {
	return string(t.Provider) + ":" + t.Model
}
