package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/guttosm/laundry-service/internal/service/cache"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrQuoteNotFound is returned when a quote id is unknown or its quote has expired.
var ErrQuoteNotFound = errors.New("quote not found")

// Optimization outcomes used as the metrics status label.
const (
	statusSuccess       = "success"
	statusInvalidOrder  = "invalid_order"
	statusSolverFailure = "solver_failure"
	statusError         = "error"
)

// Optimizer prices an order against a catalog. *optimizer.Optimizer implements it.
type Optimizer interface {
	Optimize(ctx context.Context, cat *model.Catalog, order model.Order) (decimal.Decimal, model.Breakdown, error)
}

// PricingService prices orders and keeps the resulting quotes.
type PricingService interface {
	// Optimize prices order with the active catalog and stores the quote.
	Optimize(ctx context.Context, order model.Order) (model.Quote, error)
	// GetQuote returns a stored quote or ErrQuoteNotFound.
	GetQuote(ctx context.Context, id string) (model.Quote, error)
}

// PricingOption configures a PricingServiceImpl.
type PricingOption func(*PricingServiceImpl)

// WithQuoteTTL sets how long quotes are kept.
func WithQuoteTTL(ttl time.Duration) PricingOption {
	return func(s *PricingServiceImpl) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// PricingServiceImpl implements PricingService.
type PricingServiceImpl struct {
	catalogs  CatalogService
	optimizer Optimizer
	store     cache.QuoteStore
	ttl       time.Duration
}

var _ Optimizer = (*optimizer.Optimizer)(nil)

// NewPricingService creates a pricing service.
func NewPricingService(catalogs CatalogService, opt Optimizer, store cache.QuoteStore, opts ...PricingOption) *PricingServiceImpl {
	s := &PricingServiceImpl{
		catalogs:  catalogs,
		optimizer: opt,
		store:     store,
		ttl:       10 * time.Minute,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Optimize prices order with the active catalog and stores the quote.
// Order and solver errors are returned unwrapped so callers can match them
// with errors.As.
func (s *PricingServiceImpl) Optimize(ctx context.Context, order model.Order) (model.Quote, error) {
	start := time.Now()

	active, err := s.catalogs.Active(ctx)
	if err != nil {
		metrics.RecordOptimization(time.Since(start), statusError)
		return model.Quote{}, fmt.Errorf("resolve catalog: %w", err)
	}

	total, breakdown, err := s.optimizer.Optimize(ctx, active.Catalog, order)
	if err != nil {
		status := optimizationStatus(err)
		metrics.RecordOptimization(time.Since(start), status)
		if status != statusInvalidOrder {
			log.Error().Err(err).Int("catalog_version", active.Version).Msg("Order optimization failed")
		}
		return model.Quote{}, err
	}

	createdAt := time.Now().UTC()
	snapshot := active.Catalog.Spec()
	quote := model.Quote{
		ID:             uuid.NewString(),
		Order:          order.Clone(),
		Total:          total,
		Breakdown:      breakdown,
		CatalogVersion: active.Version,
		Catalog:        &snapshot,
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.Add(s.ttl),
	}

	// A priced order is still returned when it cannot be stored; only later
	// lookups by id are affected.
	if err := s.store.Set(ctx, quote); err != nil {
		log.Warn().Err(err).Str("quote_id", quote.ID).Msg("Failed to store quote")
	}

	elapsed := time.Since(start)
	metrics.RecordOptimization(elapsed, statusSuccess)
	metrics.RecordQuoteTotal(total.InexactFloat64())

	log.Debug().
		Str("quote_id", quote.ID).
		Str("total", total.StringFixed(model.MoneyPlaces)).
		Int("units", order.TotalUnits()).
		Dur("duration", elapsed).
		Msg("Order optimized")

	return quote, nil
}

// GetQuote returns a stored quote or ErrQuoteNotFound.
func (s *PricingServiceImpl) GetQuote(ctx context.Context, id string) (model.Quote, error) {
	quote, found, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Quote{}, fmt.Errorf("load quote: %w", err)
	}
	if !found || quote.Expired(time.Now()) {
		return model.Quote{}, ErrQuoteNotFound
	}
	return quote, nil
}

func optimizationStatus(err error) string {
	var unknown *model.UnknownItemError
	var quantity *model.InvalidQuantityError
	var solver *optimizer.SolverFailureError
	switch {
	case errors.As(err, &unknown), errors.As(err, &quantity):
		return statusInvalidOrder
	case errors.As(err, &solver):
		return statusSolverFailure
	default:
		return statusError
	}
}
