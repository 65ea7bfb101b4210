package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
)

// Store implements domain.SessionStore and domain.ComparisonStore on PostgreSQL.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateSession inserts a session.
func (s *Store) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	if err := s.db.WithContext(ctx).Create(toSessionPO(session)).Error; err != nil {
		observability.FromContext(ctx).Error("failed to create session", observability.Error(err))
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession loads the user's session.
func (s *Store) GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	var po sessionPO
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return po.toDomain(), nil
}

// ListSessions returns one page of the user's sessions, most recently updated
// first, and the number of sessions matching the filter.
func (s *Store) ListSessions(
	ctx context.Context,
	userID string,
	filter domain.SessionFilter,
) ([]*domain.ChatSession, int, error) {
	query := s.db.WithContext(ctx).Model(&sessionPO{}).Where("user_id = ?", userID)
	if filter.Provider != "" {
		query = query.Where("provider = ?", string(filter.Provider))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	page := query.Order("updated_at DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}

	var pos []sessionPO
	if err := page.Find(&pos).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domain.ChatSession, 0, len(pos))
	for i := range pos {
		sessions = append(sessions, pos[i].toDomain())
	}
	return sessions, int(total), nil
}

// UpdateSession overwrites the title and update time of the user's session.
func (s *Store) UpdateSession(ctx context.Context, session *domain.ChatSession) error {
	result := s.db.WithContext(ctx).
		Model(&sessionPO{}).
		Where("id = ? AND user_id = ?", session.ID, session.UserID).
		Updates(map[string]any{
			"title":      session.Title,
			"updated_at": session.UpdatedAt,
		})
	if result.Error != nil {
		observability.FromContext(ctx).Error("failed to update session", observability.Error(result.Error))
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes the user's session and its messages.
func (s *Store) DeleteSession(ctx context.Context, userID, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", sessionID, userID).Delete(&sessionPO{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrSessionNotFound
		}

		if err := tx.Where("session_id = ?", sessionID).Delete(&messagePO{}).Error; err != nil {
			return fmt.Errorf("failed to delete session messages: %w", err)
		}
		return nil
	})
}

// CountSessions counts the user's sessions.
func (s *Store) CountSessions(ctx context.Context, userID string) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&sessionPO{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}

// ListMessages returns the session's messages ordered by creation time.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	var pos []messagePO
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&pos).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*domain.ChatMessage, 0, len(pos))
	for i := range pos {
		msg, err := pos[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode message %s: %w", pos[i].ID, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// AppendMessage inserts a message and bumps the session's update time.
func (s *Store) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	po, err := toMessagePO(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&sessionPO{}).
			Where("id = ?", msg.SessionID).
			Update("updated_at", msg.CreatedAt)
		if result.Error != nil {
			return fmt.Errorf("failed to touch session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrSessionNotFound
		}

		if err := tx.Create(po).Error; err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
		return nil
	})
}

// CreateComparison inserts a comparison with its responses.
func (s *Store) CreateComparison(ctx context.Context, record *domain.ComparisonRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(toComparisonPO(record)).Error
	})
	if err != nil {
		observability.FromContext(ctx).Error("failed to create comparison", observability.Error(err))
		return fmt.Errorf("failed to create comparison: %w", err)
	}
	return nil
}

// ListComparisons returns the user's comparisons, newest first.
func (s *Store) ListComparisons(ctx context.Context, userID string) ([]*domain.ComparisonRecord, error) {
	var pos []comparisonPO
	if err := s.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pos).Error; err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}

	records := make([]*domain.ComparisonRecord, 0, len(pos))
	for i := range pos {
		records = append(records, pos[i].toDomain())
	}
	return records, nil
}

// DeleteComparison removes one of the user's comparisons and its responses.
func (s *Store) DeleteComparison(ctx context.Context, userID, comparisonID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", comparisonID, userID).Delete(&comparisonPO{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete comparison: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrComparisonNotFound
		}

		if err := tx.Where("comparison_id = ?", comparisonID).Delete(&responsePO{}).Error; err != nil {
			return fmt.Errorf("failed to delete comparison responses: %w", err)
		}
		return nil
	})
}
