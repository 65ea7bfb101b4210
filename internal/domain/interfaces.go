package domain

import (
	"context"
	"time"
)

// ProviderAdapter streams a completion from one provider backend.
// Implementations must be safe for concurrent use.
type ProviderAdapter interface {
	// Kind returns the provider this adapter talks to.
	Kind() ProviderKind

	// Stream opens a token stream. The channel yields deltas followed by exactly one
	// usage item or one error item, then closes. Cancelling ctx must close the
	// underlying connection and the channel.
	Stream(ctx context.Context, req *StreamRequest) (<-chan StreamItem, error)
}

// ProviderRegistry manages available provider adapters.
type ProviderRegistry interface {
	// Register adds an adapter to the registry.
	Register(ctx context.Context, adapter ProviderAdapter) error

	// Get retrieves an adapter by provider kind.
	Get(ctx context.Context, kind ProviderKind) (ProviderAdapter, error)

	// List returns all registered provider kinds.
	List(ctx context.Context) ([]ProviderKind, error)
}

// PricingCatalog resolves per-token pricing for a provider model.
type PricingCatalog interface {
	// Lookup returns ErrModelNotRecognized when the model is absent from the catalog.
	Lookup(ctx context.Context, kind ProviderKind, model string) (ModelPricing, error)
}

// Router determines which targets a comparison runs against.
type Router interface {
	// Route validates requested provider keys, or selects the default set when none are given.
	Route(ctx context.Context, req *RouteRequest) ([]TargetSpec, error)
}

// RouteRequest contains the caller's provider to model mapping.
type RouteRequest struct {
	ProviderModels map[string]string
}

// SessionStore persists chat sessions and their messages.
type SessionStore interface {
	CreateSession(ctx context.Context, session *ChatSession) error
	GetSession(ctx context.Context, userID, sessionID string) (*ChatSession, error)
	// ListSessions returns one page of the user's sessions, most recently
	// updated first, and the number of sessions matching the filter.
	ListSessions(ctx context.Context, userID string, filter SessionFilter) ([]*ChatSession, int, error)
	// UpdateSession overwrites the title and update time of the user's session.
	UpdateSession(ctx context.Context, session *ChatSession) error
	DeleteSession(ctx context.Context, userID, sessionID string) error
	CountSessions(ctx context.Context, userID string) (int, error)

	// ListMessages returns the session's messages ordered by creation time.
	ListMessages(ctx context.Context, sessionID string) ([]*ChatMessage, error)
	AppendMessage(ctx context.Context, msg *ChatMessage) error
}

// ComparisonStore persists finished comparisons.
type ComparisonStore interface {
	CreateComparison(ctx context.Context, record *ComparisonRecord) error
	ListComparisons(ctx context.Context, userID string) ([]*ComparisonRecord, error)
	DeleteComparison(ctx context.Context, userID, comparisonID string) error
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time
