package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced order kept for a limited time so that it can be fetched
// again or rendered as a receipt.
type Quote struct {
	ID             string          `json:"id"`
	Order          Order           `json:"order"`
	Total          decimal.Decimal `json:"total"`
	Breakdown      Breakdown       `json:"breakdown"`
	CatalogVersion int             `json:"catalog_version"`
	// Catalog is the price list the quote was computed with. Quotes stored
	// before snapshots were kept have none.
	Catalog   *CatalogSpec `json:"catalog,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// PricedCatalog rebuilds the catalog the quote was priced with. It returns
// nil without an error when the quote carries no snapshot.
func (q Quote) PricedCatalog() (*Catalog, error) {
	if q.Catalog == nil {
		return nil, nil
	}
	cat, err := NewCatalog(*q.Catalog)
	if err != nil {
		return nil, fmt.Errorf("quote %s catalog snapshot: %w", q.ID, err)
	}
	return cat, nil
}

// Expired reports whether the quote is past its expiry at the given time.
func (q Quote) Expired(now time.Time) bool {
	return !q.ExpiresAt.IsZero() && now.After(q.ExpiresAt)
}
