package postgres

import (
	"encoding/json"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
)

type sessionPO struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"size:128;not null;index:idx_sessions_user"`
	Title        string `gorm:"size:255"`
	Provider     string `gorm:"size:32;not null"`
	Model        string `gorm:"size:128;not null"`
	Mode         string `gorm:"size:32;not null"`
	FixedContext string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (sessionPO) TableName() string { return "chat_sessions" }

type messagePO struct {
	ID        string  `gorm:"primaryKey;size:36"`
	SessionID string  `gorm:"size:36;not null;index:idx_messages_session"`
	Role      string  `gorm:"size:16;not null"`
	Content   string  `gorm:"type:text;not null"`
	Usage     *string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (messagePO) TableName() string { return "chat_messages" }

type comparisonPO struct {
	ID        string       `gorm:"primaryKey;size:36"`
	UserID    string       `gorm:"size:128;not null;index:idx_comparisons_user"`
	Prompt    string       `gorm:"type:text;not null"`
	Responses []responsePO `gorm:"foreignKey:ComparisonID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (comparisonPO) TableName() string { return "comparisons" }

type responsePO struct {
	ID               uint   `gorm:"primaryKey"`
	ComparisonID     string `gorm:"size:36;not null;index:idx_responses_comparison"`
	Position         int    `gorm:"not null"`
	Provider         string `gorm:"size:32;not null"`
	Model            string `gorm:"size:128;not null"`
	Content          string `gorm:"type:text;not null"`
	PromptTokens     int    `gorm:"not null"`
	CompletionTokens int    `gorm:"not null"`
	TotalTokens      int    `gorm:"not null"`
	Cost             float64
	Latency          float64
}

func (responsePO) TableName() string { return "comparison_responses" }

func toSessionPO(s *domain.ChatSession) *sessionPO {
	return &sessionPO{
		ID:           s.ID,
		UserID:       s.UserID,
		Title:        s.Title,
		Provider:     string(s.Provider),
		Model:        s.Model,
		Mode:         string(s.Mode),
		FixedContext: s.FixedContext,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (po *sessionPO) toDomain() *domain.ChatSession {
	return &domain.ChatSession{
		ID:           po.ID,
		UserID:       po.UserID,
		Title:        po.Title,
		Provider:     domain.ProviderKind(po.Provider),
		Model:        po.Model,
		Mode:         domain.SessionMode(po.Mode),
		FixedContext: po.FixedContext,
		CreatedAt:    po.CreatedAt.UTC(),
		UpdatedAt:    po.UpdatedAt.UTC(),
	}
}

func toMessagePO(m *domain.ChatMessage) (*messagePO, error) {
	po := &messagePO{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}

	if m.Usage != nil {
		raw, err := json.Marshal(m.Usage)
		if err != nil {
			return nil, err
		}
		usage := string(raw)
		po.Usage = &usage
	}

	return po, nil
}

func (po *messagePO) toDomain() (*domain.ChatMessage, error) {
	msg := &domain.ChatMessage{
		ID:        po.ID,
		SessionID: po.SessionID,
		Role:      po.Role,
		Content:   po.Content,
		CreatedAt: po.CreatedAt.UTC(),
	}

	if po.Usage != nil {
		var usage domain.UsageSummary
		if err := json.Unmarshal([]byte(*po.Usage), &usage); err != nil {
			return nil, err
		}
		msg.Usage = &usage
	}

	return msg, nil
}

func toComparisonPO(r *domain.ComparisonRecord) *comparisonPO {
	responses := make([]responsePO, len(r.Responses))
	for i, resp := range r.Responses {
		responses[i] = responsePO{
			ComparisonID:     r.ID,
			Position:         i,
			Provider:         resp.Provider,
			Model:            resp.Model,
			Content:          resp.Content,
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.TotalTokens,
			Cost:             resp.Cost,
			Latency:          resp.LatencySeconds,
		}
	}

	return &comparisonPO{
		ID:        r.ID,
		UserID:    r.UserID,
		Prompt:    r.Prompt,
		Responses: responses,
		CreatedAt: r.CreatedAt,
	}
}

func (po *comparisonPO) toDomain() *domain.ComparisonRecord {
	responses := make([]domain.ComparisonResponse, len(po.Responses))
	for i, resp := range po.Responses {
		responses[i] = domain.ComparisonResponse{
			Provider:         resp.Provider,
			Model:            resp.Model,
			Content:          resp.Content,
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.TotalTokens,
			Cost:             resp.Cost,
			LatencySeconds:   resp.Latency,
		}
	}

	return &domain.ComparisonRecord{
		ID:        po.ID,
		UserID:    po.UserID,
		Prompt:    po.Prompt,
		Responses: responses,
		CreatedAt: po.CreatedAt.UTC(),
	}
}
