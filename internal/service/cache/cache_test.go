//go:build !integration

package cache

import (
	"context"
	"testing"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	quotes map[string]model.Quote
}

func (m *mapStore) Get(ctx context.Context, id string) (model.Quote, bool, error) {
	q, ok := m.quotes[id]
	return q, ok, nil
}

func (m *mapStore) Set(ctx context.Context, quote model.Quote) error {
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mapStore) Invalidate(ctx context.Context, id string) error {
	delete(m.quotes, id)
	return nil
}

func (m *mapStore) Stop() {}

func (m *mapStore) Metrics() Metrics {
	return Metrics{Size: len(m.quotes)}
}

func TestQuoteStoreContract(t *testing.T) {
	ctx := context.Background()
	var store QuoteStoreWithMetrics = &mapStore{quotes: map[string]model.Quote{}}

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, model.Quote{ID: "q1"}))
	q, found, err := store.Get(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, 1, store.Metrics().Size)

	require.NoError(t, store.Invalidate(ctx, "q1"))
	_, found, _ = store.Get(ctx, "q1")
	assert.False(t, found)
	store.Stop()
}
