// Package memory provides in-process session and comparison stores. Data does
// not survive a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/davidbz/llmcompare/internal/domain"
)

// Store implements domain.SessionStore and domain.ComparisonStore.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*domain.ChatSession
	messages    map[string][]*domain.ChatMessage
	comparisons map[string]*domain.ComparisonRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		mu:          sync.RWMutex{},
		sessions:    make(map[string]*domain.ChatSession),
		messages:    make(map[string][]*domain.ChatMessage),
		comparisons: make(map[string]*domain.ComparisonRecord),
	}
}

// CreateSession stores a new session.
func (s *Store) CreateSession(_ context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	stored := *session
	s.sessions[session.ID] = &stored
	return nil
}

// GetSession returns the user's session.
func (s *Store) GetSession(_ context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}

	found := *session
	return &found, nil
}

// ListSessions returns one page of the user's sessions, most recently updated
// first, and the number of sessions matching the filter.
func (s *Store) ListSessions(
	_ context.Context,
	userID string,
	filter domain.SessionFilter,
) ([]*domain.ChatSession, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*domain.ChatSession, 0)
	for _, session := range s.sessions {
		if session.UserID != userID {
			continue
		}
		if filter.Provider != "" && session.Provider != filter.Provider {
			continue
		}
		found := *session
		sessions = append(sessions, &found)
	}

	slices.SortFunc(sessions, func(a, b *domain.ChatSession) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	total := len(sessions)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return sessions[start:end], total, nil
}

// UpdateSession overwrites the title and update time of the user's session.
func (s *Store) UpdateSession(_ context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[session.ID]
	if !ok || stored.UserID != session.UserID {
		return domain.ErrSessionNotFound
	}

	stored.Title = session.Title
	stored.UpdatedAt = session.UpdatedAt
	return nil
}

// DeleteSession removes the user's session and its messages.
func (s *Store) DeleteSession(_ context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return domain.ErrSessionNotFound
	}

	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return nil
}

// CountSessions counts the user's sessions.
func (s *Store) CountSessions(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, session := range s.sessions {
		if session.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ListMessages returns the session's messages in append order.
func (s *Store) ListMessages(_ context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[sessionID]
	messages := make([]*domain.ChatMessage, len(stored))
	for i, msg := range stored {
		found := *msg
		messages[i] = &found
	}
	return messages, nil
}

// AppendMessage adds a message and bumps the session's update time.
func (s *Store) AppendMessage(_ context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[msg.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	stored := *msg
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], &stored)
	if msg.CreatedAt.After(session.UpdatedAt) {
		session.UpdatedAt = msg.CreatedAt
	}
	return nil
}

// CreateComparison stores a comparison record.
func (s *Store) CreateComparison(_ context.Context, record *domain.ComparisonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comparisons[record.ID]; exists {
		return fmt.Errorf("comparison %s already exists", record.ID)
	}

	stored := *record
	stored.Responses = slices.Clone(record.Responses)
	s.comparisons[record.ID] = &stored
	return nil
}

// ListComparisons returns the user's comparisons, newest first.
func (s *Store) ListComparisons(_ context.Context, userID string) ([]*domain.ComparisonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.ComparisonRecord, 0)
	for _, record := range s.comparisons {
		if record.UserID == userID {
			found := *record
			found.Responses = slices.Clone(record.Responses)
			records = append(records, &found)
		}
	}

	slices.SortFunc(records, func(a, b *domain.ComparisonRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return records, nil
}

// DeleteComparison removes one of the user's comparisons.
func (s *Store) DeleteComparison(_ context.Context, userID, comparisonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.comparisons[comparisonID]
	if !ok || record.UserID != userID {
		return domain.ErrComparisonNotFound
	}

	delete(s.comparisons, comparisonID)
	return nil
}
