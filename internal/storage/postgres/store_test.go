package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/storage/postgres"
)

func newStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	db, err := postgres.NewDB(postgres.Config{DSN: dsn, AutoMigrate: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return postgres.NewStore(db)
}

func TestNewDB_RequiresDSN(t *testing.T) {
	db, err := postgres.NewDB(postgres.Config{})

	require.Error(t, err)
	require.Nil(t, db)
}

func TestStore_SessionLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	userID := "user-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)

	session := &domain.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "test",
		Provider:  domain.ProviderAnthropic,
		Model:     "claude-3-7-sonnet-20250219",
		Mode:      domain.SessionModeConversation,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateSession(ctx, session))

	_, err := store.GetSession(ctx, "someone-else", session.ID)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, store.AppendMessage(ctx, &domain.ChatMessage{
		ID: uuid.NewString(), SessionID: session.ID, Role: domain.RoleUser, Content: "hi", CreatedAt: now.Add(time.Second),
	}))
	require.NoError(t, store.AppendMessage(ctx, &domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      domain.RoleAssistant,
		Content:   "hello",
		Usage: &domain.UsageSummary{
			Usage:          domain.NewUsage(3, 2),
			LatencySeconds: 0.5,
			Cost:           0.001,
			CreatedAt:      now,
		},
		CreatedAt: now.Add(2 * time.Second),
	}))

	messages, err := store.ListMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, domain.RoleUser, messages[0].Role)
	require.NotNil(t, messages[1].Usage)
	require.Equal(t, 5, messages[1].Usage.TotalTokens)

	count, err := store.CountSessions(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	session.Title = "renamed"
	session.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, store.UpdateSession(ctx, session))

	sessions, total, err := store.ListSessions(ctx, userID, domain.SessionFilter{Provider: session.Provider, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, sessions, 1)
	require.Equal(t, "renamed", sessions[0].Title)

	sessions, total, err = store.ListSessions(ctx, userID, domain.SessionFilter{Provider: domain.ProviderXAI})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, sessions)

	require.ErrorIs(t, store.UpdateSession(ctx, &domain.ChatSession{ID: session.ID, UserID: "stranger"}),
		domain.ErrSessionNotFound)

	require.NoError(t, store.DeleteSession(ctx, userID, session.ID))
	require.ErrorIs(t, store.DeleteSession(ctx, userID, session.ID), domain.ErrSessionNotFound)

	messages, err = store.ListMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestStore_ComparisonLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	record := &domain.ComparisonRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		Prompt: "compare",
		Responses: []domain.ComparisonResponse{
			{Provider: "openai", Model: "gpt-4o", Content: "a", TotalTokens: 3},
			{Provider: "google", Model: "gemini-2.0-flash", Content: "b", TotalTokens: 4},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateComparison(ctx, record))

	records, err := store.ListComparisons(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Responses, 2)
	require.Equal(t, "openai", records[0].Responses[0].Provider)

	require.ErrorIs(t, store.DeleteComparison(ctx, "someone-else", record.ID), domain.ErrComparisonNotFound)
	require.NoError(t, store.DeleteComparison(ctx, userID, record.ID))
}
