package domain

import (
	"fmt"
	"time"
)

// Session limits.
const (
	MaxSessionsPerUser    = 30
	MaxMessagesPerSession = 1000
	MaxSessionPageSize    = 100
	MaxSessionTitleLength = 255
)

// SessionMode selects how a session builds the context of each turn.
type SessionMode string

const (
	// SessionModeConversation replays the full history on every turn.
	SessionModeConversation SessionMode = "conversation"
	// SessionModeFixedContext wraps every turn in a static context template.
	SessionModeFixedContext SessionMode = "fixed_context"
)

// Valid reports whether m is a known session mode.
func (m SessionMode) Valid() bool {
	return m == SessionModeConversation || m == SessionModeFixedContext
}

// ChatSession pins a conversation to one provider model.
type ChatSession struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Title        string       `json:"title"`
	Provider     ProviderKind `json:"provider"`
	Model        string       `json:"model"`
	Mode         SessionMode  `json:"mode"`
	FixedContext string       `json:"fixed_context,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SessionFilter narrows and pages a session listing. A zero Limit returns
// every session after Offset.
type SessionFilter struct {
	Provider ProviderKind
	Offset   int
	Limit    int
}

// SessionPage is one page of a session listing. Total counts every session
// matching the filter, not only the ones in the page.
type SessionPage struct {
	Sessions []*ChatSession `json:"sessions"`
	Total    int            `json:"total"`
}

// ChatMessage is one persisted message of a session.
type ChatMessage struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Usage     *UsageSummary `json:"usage,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

const fixedContextTemplate = "You are a helpful assistant that can answer questions and help with tasks. " +
	"You are given a fixed context and a user message. " +
	"You need to answer the user message based on the context." +
	"The context is: %s\n\nThe user message is: %s"

// BuildTurnMessages assembles the messages sent to the provider for one turn.
// history must not include the new user message.
func BuildTurnMessages(session *ChatSession, history []*ChatMessage, userMessage string) []Message {
	if session.Mode == SessionModeFixedContext {
		return []Message{{
			Role:    RoleUser,
			Content: fmt.Sprintf(fixedContextTemplate, session.FixedContext, userMessage),
		}}
	}

	messages := make([]Message, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	return append(messages, Message{Role: RoleUser, Content: userMessage})
}

// TurnState is the lifecycle state of one chat turn.
type TurnState int

const (
	TurnPending TurnState = iota
	TurnStreaming
	TurnCompleted
	TurnFailed
)

func (s TurnState) String() string {
	switch s {
	case TurnPending:
		return "PENDING"
	case TurnStreaming:
		return "STREAMING"
	case TurnCompleted:
		return "COMPLETED"
	case TurnFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("TurnState(%d)", int(s))
	}
}

// Terminal reports whether no further transition is allowed.
func (s TurnState) Terminal() bool {
	return s == TurnCompleted || s == TurnFailed
}

// Turn tracks the state of one chat turn. It is not safe for concurrent use.
type Turn struct {
	state TurnState
}

// NewTurn returns a turn in the PENDING state.
func NewTurn() *Turn {
	return &Turn{state: TurnPending}
}

// State returns the current state.
func (t *Turn) State() TurnState {
	return t.state
}

// Advance moves the turn to next. Allowed transitions are
// PENDING -> STREAMING and STREAMING -> COMPLETED or FAILED.
func (t *Turn) Advance(next TurnState) error {
	allowed := false
	switch t.state {
	case TurnPending:
		allowed = next == TurnStreaming
	case TurnStreaming:
		allowed = next == TurnCompleted || next == TurnFailed
	case TurnCompleted, TurnFailed:
	}

	if !allowed {
		return fmt.Errorf("invalid turn transition %s -> %s", t.state, next)
	}

	t.state = next
	return nil
}
