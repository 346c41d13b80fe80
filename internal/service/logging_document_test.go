//go:build !integration

package service

import (
	"testing"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToDocument(t *testing.T) {
	t.Run("creates ID and timestamp if zero", func(t *testing.T) {
		doc := toDocument(&model.LogEntry{Level: "info", Message: "Test"})
		assert.False(t, doc.ID.IsZero())
		assert.False(t, doc.Timestamp.IsZero())
	})

	t.Run("preserves existing ID and timestamp", func(t *testing.T) {
		id := primitive.NewObjectID()
		timestamp := time.Now().Add(-1 * time.Hour)
		doc := toDocument(&model.LogEntry{ID: id, Timestamp: timestamp})
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, timestamp, doc.Timestamp)
	})

	t.Run("round trips all fields", func(t *testing.T) {
		entry := &model.LogEntry{
			Level:      "info",
			Message:    "Order optimized",
			RequestID:  "req-123",
			Method:     "POST",
			Path:       "/api/optimize",
			StatusCode: 200,
			Duration:   12,
			IP:         "127.0.0.1",
			UserAgent:  "test-agent",
			Error:      "",
			Actor:      "anonymous",
			ActionType: model.ActionOptimize,
			QuoteID:    "q-1",
			Fields:     map[string]interface{}{"total": "62.70"},
		}
		doc := toDocument(entry)
		back := fromLogDocument(doc)
		assert.Equal(t, *entry, back)
	})
}
