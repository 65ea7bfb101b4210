package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoryService stores comparisons the caller chose to keep.
type HistoryService struct {
	store ComparisonStore
	now   Clock
}

// NewHistoryService creates a new history service (DI constructor).
func NewHistoryService(store ComparisonStore) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
	}
}

// Save persists an already computed comparison.
func (s *HistoryService) Save(ctx context.Context, record *ComparisonRecord) (*ComparisonRecord, error) {
	if record == nil {
		return nil, RequestErrorf("comparison cannot be nil")
	}
	if strings.TrimSpace(record.Prompt) == "" {
		return nil, RequestErrorf("prompt cannot be empty")
	}
	if len(record.Responses) == 0 {
		return nil, RequestErrorf("comparison must contain at least one response")
	}
	for _, resp := range record.Responses {
		if _, err := ParseProviderKind(resp.Provider); err != nil {
			return nil, NewRequestError(err)
		}
		if resp.Model == "" {
			return nil, RequestErrorf("response for %s has no model", resp.Provider)
		}
	}

	saved := *record
	saved.ID = uuid.NewString()
	saved.CreatedAt = s.now().UTC()

	if err := s.store.CreateComparison(ctx, &saved); err != nil {
		return nil, NewInfrastructureError("create comparison", err)
	}

	return &saved, nil
}

// List returns the caller's comparisons, newest first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]*ComparisonRecord, error) {
	records, err := s.store.ListComparisons(ctx, userID)
	if err != nil {
		return nil, NewInfrastructureError("list comparisons", err)
	}
	return records, nil
}

// Delete removes one of the caller's comparisons.
func (s *HistoryService) Delete(ctx context.Context, userID, comparisonID string) error {
	err := s.store.DeleteComparison(ctx, userID, comparisonID)
	switch {
	case errors.Is(err, ErrComparisonNotFound):
		return err
	case err != nil:
		return NewInfrastructureError("delete comparison", err)
	}
	return nil
}
