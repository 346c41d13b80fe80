package repository

import (
	"context"
	"errors"

	"github.com/guttosm/laundry-service/internal/circuitbreaker"
	"github.com/guttosm/laundry-service/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker wraps a catalog repository with circuit breaker protection.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active catalog. While the circuit is open it reports no
// stored catalog so that callers fall back to the file or built-in one.
func (r *CatalogRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*CatalogDocument, error) {
	doc, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*CatalogDocument, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return doc, err
}

// Create stores a new catalog version. Writes are never silently dropped.
func (r *CatalogRepositoryWithCircuitBreaker) Create(ctx context.Context, spec model.CatalogSpec, createdBy, note string) (*CatalogDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*CatalogDocument, error) {
		return r.repo.Create(ctx, spec, createdBy, note)
	})
}

// List returns stored catalog versions with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]CatalogDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]CatalogDocument, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Entries are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. Entries are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
