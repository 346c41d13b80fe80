//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/laundry-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.SetLogsTTL(ctx, 24*time.Hour))

	repo := NewLogsRepository(db)

	t.Run("create log entry", func(t *testing.T) {
		entry := &LogEntryDocument{
			Level:      "info",
			Message:    "Order optimized",
			RequestID:  "req-optimize",
			Method:     "POST",
			Path:       "/api/optimize",
			StatusCode: 200,
			Duration:   12,
			ActionType: "optimize",
			QuoteID:    "quote-1",
		}

		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create many log entries", func(t *testing.T) {
		entries := []*LogEntryDocument{
			{Level: "info", Message: "Catalog updated", RequestID: "req-1", ActionType: "update_catalog", Actor: "admin"},
			{Level: "error", Message: "Solver failed", RequestID: "req-2", ActionType: "optimize"},
			{Level: "warn", Message: "Login failed", RequestID: "req-3", ActionType: "login"},
		}
		require.NoError(t, repo.CreateMany(ctx, entries))
		require.NoError(t, repo.CreateMany(ctx, nil))
	})

	t.Run("query by request ID", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{RequestID: "req-optimize"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "quote-1", entries[0].QuoteID)
	})

	t.Run("query by action type", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{ActionType: "optimize"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.False(t, entries[0].Timestamp.Before(entries[1].Timestamp))
	})

	t.Run("query with limit", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("count ignores paging", func(t *testing.T) {
		count, err := repo.Count(ctx, LogQueryOptions{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("count with filter", func(t *testing.T) {
		count, err := repo.Count(ctx, LogQueryOptions{Level: "error"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, wrapped.Create(ctx, &LogEntryDocument{Level: "info", Message: "ok"}))

	count, err := wrapped.Count(ctx, LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.True(t, cb.GetStats().IsHealthy)
}
