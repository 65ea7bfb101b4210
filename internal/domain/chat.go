package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/llmcompare/internal/observability"
)

// assistantStoreTimeout bounds persisting a finished reply once it no longer
// follows the request's cancellation.
const assistantStoreTimeout = 5 * time.Second

// ChatTurnRequest is one user turn within a session.
type ChatTurnRequest struct {
	UserID    string `json:"-"`
	SessionID string `json:"-"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

// CreateSessionRequest describes a new chat session.
type CreateSessionRequest struct {
	UserID       string      `json:"-"`
	Title        string      `json:"title"`
	Provider     string      `json:"provider"`
	Model        string      `json:"model"`
	Mode         SessionMode `json:"mode"`
	FixedContext string      `json:"fixed_context"`
}

// UpdateSessionRequest changes session metadata. Nil fields are left as they are.
type UpdateSessionRequest struct {
	UserID    string  `json:"-"`
	SessionID string  `json:"-"`
	Title     *string `json:"title"`
}

// ListSessionsRequest pages through the caller's sessions, optionally
// restricted to one provider. A zero Limit selects MaxSessionPageSize.
type ListSessionsRequest struct {
	UserID   string
	Provider string
	Skip     int
	Limit    int
}

// ChatService runs single-target chat turns against persisted sessions.
type ChatService struct {
	registry ProviderRegistry
	catalog  PricingCatalog
	store    SessionStore
	metrics  *observability.Metrics
	settings StreamSettings
	now      Clock
}

// NewChatService creates a new chat service (DI constructor).
func NewChatService(
	registry ProviderRegistry,
	catalog PricingCatalog,
	store SessionStore,
	metrics *observability.Metrics,
	settings StreamSettings,
) *ChatService {
	return &ChatService{
		registry: registry,
		catalog:  catalog,
		store:    store,
		metrics:  metrics,
		settings: settings,
		now:      time.Now,
	}
}

// CreateSession validates and persists a new session for the caller.
func (s *ChatService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*ChatSession, error) {
	if req == nil {
		return nil, RequestErrorf("request cannot be nil")
	}

	kind, err := ParseProviderKind(req.Provider)
	if err != nil {
		return nil, NewRequestError(err)
	}
	if _, err = s.registry.Get(ctx, kind); err != nil {
		return nil, RequestErrorf("%w: %s is not configured", ErrUnknownProvider, kind)
	}

	if strings.TrimSpace(req.Model) == "" {
		return nil, RequestErrorf("model cannot be empty")
	}

	mode := req.Mode
	if mode == "" {
		mode = SessionModeConversation
	}
	if !mode.Valid() {
		return nil, RequestErrorf("unknown session mode %q", req.Mode)
	}
	if mode == SessionModeFixedContext && strings.TrimSpace(req.FixedContext) == "" {
		return nil, RequestErrorf("fixed_context is required for %s sessions", mode)
	}

	count, err := s.store.CountSessions(ctx, req.UserID)
	if err != nil {
		return nil, NewInfrastructureError("count sessions", err)
	}
	if count >= MaxSessionsPerUser {
		return nil, RequestErrorf("%w: at most %d sessions per user", ErrSessionLimit, MaxSessionsPerUser)
	}

	now := s.now().UTC()
	session := &ChatSession{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		Title:        req.Title,
		Provider:     kind,
		Model:        req.Model,
		Mode:         mode,
		FixedContext: req.FixedContext,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.store.CreateSession(ctx, session); err != nil {
		return nil, NewInfrastructureError("create session", err)
	}

	observability.FromContext(ctx).Info("chat session created",
		observability.String("session_id", session.ID),
		observability.String("provider", kind.String()),
		observability.String("model", session.Model),
	)

	return session, nil
}

// GetSession returns one of the caller's sessions with its messages.
func (s *ChatService) GetSession(ctx context.Context, userID, sessionID string) (*ChatSession, []*ChatMessage, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.store.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, nil, NewInfrastructureError("list messages", err)
	}

	return session, messages, nil
}

// ListSessions returns one page of the caller's sessions.
func (s *ChatService) ListSessions(ctx context.Context, req *ListSessionsRequest) (*SessionPage, error) {
	if req == nil {
		return nil, RequestErrorf("request cannot be nil")
	}

	filter := SessionFilter{Offset: req.Skip, Limit: req.Limit}
	if filter.Offset < 0 {
		return nil, RequestErrorf("skip must not be negative")
	}
	if filter.Limit == 0 {
		filter.Limit = MaxSessionPageSize
	}
	if filter.Limit < 1 || filter.Limit > MaxSessionPageSize {
		return nil, RequestErrorf("limit must be between 1 and %d", MaxSessionPageSize)
	}
	if req.Provider != "" {
		kind, err := ParseProviderKind(req.Provider)
		if err != nil {
			return nil, NewRequestError(err)
		}
		filter.Provider = kind
	}

	sessions, total, err := s.store.ListSessions(ctx, req.UserID, filter)
	if err != nil {
		return nil, NewInfrastructureError("list sessions", err)
	}
	return &SessionPage{Sessions: sessions, Total: total}, nil
}

// UpdateSession applies a metadata change to one of the caller's sessions.
func (s *ChatService) UpdateSession(ctx context.Context, req *UpdateSessionRequest) (*ChatSession, error) {
	if req == nil {
		return nil, RequestErrorf("request cannot be nil")
	}

	session, err := s.loadSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Title == nil {
		return session, nil
	}

	title := strings.TrimSpace(*req.Title)
	if len(title) > MaxSessionTitleLength {
		return nil, RequestErrorf("title must be at most %d bytes", MaxSessionTitleLength)
	}

	session.Title = title
	session.UpdatedAt = s.now().UTC()

	err = s.store.UpdateSession(ctx, session)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil, err
	case err != nil:
		return nil, NewInfrastructureError("update session", err)
	}

	observability.FromContext(ctx).Info("chat session updated",
		observability.String("session_id", session.ID),
	)

	return session, nil
}

// DeleteSession removes one of the caller's sessions.
func (s *ChatService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	err := s.store.DeleteSession(ctx, userID, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return err
	case err != nil:
		return NewInfrastructureError("delete session", err)
	}
	return nil
}

// Turn runs one chat turn. The user's message is persisted before the provider
// is called. The assistant message is persisted only when the stream reaches its
// Final event; a failed turn persists nothing further.
func (s *ChatService) Turn(ctx context.Context, req *ChatTurnRequest) (<-chan StreamEvent, error) {
	events, err := s.turn(ctx, req)

	switch {
	case err == nil:
		s.metrics.RequestServed("chat", "streaming")
	case IsRequestError(err) || errors.Is(err, ErrSessionNotFound):
		s.metrics.RequestServed("chat", "rejected")
	default:
		s.metrics.RequestServed("chat", "error")
	}

	return events, err
}

func (s *ChatService) turn(ctx context.Context, req *ChatTurnRequest) (<-chan StreamEvent, error) {
	if req == nil {
		return nil, RequestErrorf("request cannot be nil")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, RequestErrorf("message cannot be empty")
	}

	maxTokens, err := s.settings.budget(req.MaxTokens)
	if err != nil {
		return nil, err
	}

	session, err := s.loadSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(req.Provider, session.Provider.String()) || req.Model != session.Model {
		return nil, RequestErrorf("%w: session uses %s/%s", ErrSessionDrift, session.Provider, session.Model)
	}

	history, err := s.store.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, NewInfrastructureError("list messages", err)
	}
	if len(history) >= MaxMessagesPerSession {
		return nil, RequestErrorf("%w: at most %d messages per session", ErrMessageLimit, MaxMessagesPerSession)
	}

	spec := TargetSpec{Provider: session.Provider, Model: session.Model}
	target := Target{Spec: spec}

	adapter, err := s.registry.Get(ctx, spec.Provider)
	if err != nil {
		return nil, RequestErrorf("%w: %s is not configured", ErrUnknownProvider, spec.Provider)
	}

	pricing, err := s.catalog.Lookup(ctx, spec.Provider, spec.Model)
	switch {
	case errors.Is(err, ErrModelNotRecognized):
		target.Err = fmt.Errorf("%w: %s", ErrModelNotRecognized, spec.Model)
	case err != nil:
		return nil, NewInfrastructureError("resolve pricing", err)
	default:
		target.Pricing = pricing
		target.Open = openStream(adapter, &StreamRequest{
			Model:     spec.Model,
			Messages:  BuildTurnMessages(session, history, req.Message),
			MaxTokens: pricing.Budget(maxTokens),
		})
	}

	userMessage := &ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      RoleUser,
		Content:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err = s.store.AppendMessage(ctx, userMessage); err != nil {
		return nil, NewInfrastructureError("store user message", err)
	}

	mux, err := NewMultiplexer([]Target{target},
		WithIdleTimeout(s.settings.IdleTimeout),
		WithMetrics(s.metrics),
	)
	if err != nil {
		return nil, NewInfrastructureError("start turn", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	out := make(chan StreamEvent)
	go s.forward(runCtx, cancel, session, mux.Run(runCtx), out)

	return out, nil
}

// forward relays the turn's events, persisting the assistant message on Final.
func (s *ChatService) forward(
	ctx context.Context,
	cancel context.CancelFunc,
	session *ChatSession,
	events <-chan StreamEvent,
	out chan<- StreamEvent,
) {
	defer close(out)
	defer cancel()

	logger := observability.FromContext(ctx).With(observability.String("session_id", session.ID))

	turn := NewTurn()
	advance := func(next TurnState) {
		if err := turn.Advance(next); err != nil {
			logger.Warn("turn state rejected", observability.Error(err))
			return
		}
		logger.Debug("turn state changed", observability.String("state", next.String()))
	}
	advance(TurnStreaming)

	send := func(ev StreamEvent) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var content strings.Builder
	for ev := range events {
		switch ev.Kind {
		case EventDelta:
			content.WriteString(ev.Content)

		case EventFinal:
			assistant := &ChatMessage{
				ID:        uuid.NewString(),
				SessionID: session.ID,
				Role:      RoleAssistant,
				Content:   content.String(),
				Usage:     ev.Summary,
				CreatedAt: s.now().UTC(),
			}
			if err := s.storeAssistant(ctx, assistant); err != nil {
				advance(TurnFailed)
				logger.Error("failed to store assistant message", observability.Error(err))
				if send(StreamEvent{Kind: EventError, Err: NewInfrastructureError("store assistant message", err)}) {
					send(StreamEvent{Kind: EventDone})
				}
				return
			}
			advance(TurnCompleted)

		case EventFailure:
			advance(TurnFailed)

		case EventError:
			if !turn.State().Terminal() {
				advance(TurnFailed)
			}
		case EventDone:
		}

		if !send(ev) {
			return
		}
	}
}

// storeAssistant persists the reply even if the client has already gone away.
func (s *ChatService) storeAssistant(ctx context.Context, msg *ChatMessage) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), assistantStoreTimeout)
	defer cancel()
	return s.store.AppendMessage(ctx, msg)
}

func (s *ChatService) loadSession(ctx context.Context, userID, sessionID string) (*ChatSession, error) {
	session, err := s.store.GetSession(ctx, userID, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil, err
	case err != nil:
		return nil, NewInfrastructureError("load session", err)
	}
	return session, nil
}
