// Package cache defines the quote store contract shared by the memory and Redis stores.
package cache

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
)

// QuoteStore keeps priced quotes until they expire. Implementations must be safe
// for concurrent use.
type QuoteStore interface {
	// Get returns the quote with the given id. A missing or expired quote is not an error.
	Get(ctx context.Context, id string) (model.Quote, bool, error)
	// Set stores a quote until its ExpiresAt, or for the store TTL when ExpiresAt is zero.
	Set(ctx context.Context, quote model.Quote) error
	Invalidate(ctx context.Context, id string) error
	// Stop releases background resources. It is safe to call more than once.
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// QuoteStoreWithMetrics extends QuoteStore with metrics reporting.
type QuoteStoreWithMetrics interface {
	QuoteStore
	Metrics() Metrics
}
