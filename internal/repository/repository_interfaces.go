package repository

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
)

// CatalogRepositoryInterface defines the catalog store used by the catalog service.
type CatalogRepositoryInterface interface {
	GetActive(ctx context.Context) (*CatalogDocument, error)
	Create(ctx context.Context, spec model.CatalogSpec, createdBy, note string) (*CatalogDocument, error)
	List(ctx context.Context, limit int) ([]CatalogDocument, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ CatalogRepositoryInterface = (*CatalogRepository)(nil)
	_ CatalogRepositoryInterface = (*CatalogRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface    = (*LogsRepository)(nil)
	_ LogsRepositoryInterface    = (*LogsRepositoryWithCircuitBreaker)(nil)
)
