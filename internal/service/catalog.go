package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrRepositoryNotConfigured is returned when an operation needs the database
// and the service runs without one.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// Catalog sources.
const (
	CatalogSourceDatabase = "database"
	CatalogSourceFile     = "file"
	CatalogSourceDefault  = "default"
)

const activeCatalogKey = "active"

// ActiveCatalog is the catalog used to price orders and where it came from.
// Version is 0 unless the catalog was loaded from the database.
type ActiveCatalog struct {
	Catalog   *model.Catalog
	Version   int
	Source    string
	UpdatedAt *time.Time
	CreatedBy string
	Note      string
}

// CatalogRevision is one stored catalog version.
type CatalogRevision struct {
	Version   int
	Active    bool
	Spec      model.CatalogSpec
	CreatedAt time.Time
	CreatedBy string
	Note      string
}

// CatalogService resolves and administers the active catalog.
type CatalogService interface {
	// Active returns the catalog to price with. It never fails when a fallback is configured.
	Active(ctx context.Context) (*ActiveCatalog, error)
	// Update validates spec and stores it as the new active version.
	Update(ctx context.Context, spec model.CatalogSpec, updatedBy, note string) (*ActiveCatalog, error)
	// History lists stored versions, newest first.
	History(ctx context.Context, limit int) ([]CatalogRevision, error)
	// Invalidate drops the cached active catalog.
	Invalidate()
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithCatalogRepository stores catalogs in repo. Without it only the fallback is served.
func WithCatalogRepository(repo repository.CatalogRepositoryInterface) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.repo = repo
	}
}

// WithCatalogCacheTTL sets how long a catalog read from the repository is reused.
func WithCatalogCacheTTL(ttl time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	repo     repository.CatalogRepositoryInterface
	fallback *ActiveCatalog
	cacheTTL time.Duration
	cache    *ttlCache[*ActiveCatalog]
}

// NewCatalogService creates a catalog service that serves fallback whenever no
// catalog is stored or the store cannot be read. source names where fallback came from.
func NewCatalogService(fallback *model.Catalog, source string, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		fallback: &ActiveCatalog{Catalog: fallback, Source: source},
		cacheTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = newTTLCache[*ActiveCatalog](catalogCacheName, 1, s.cacheTTL)
	metrics.SetCatalogVersion(0)
	return s
}

// Active returns the catalog to price with.
func (s *CatalogServiceImpl) Active(ctx context.Context) (*ActiveCatalog, error) {
	if s.repo == nil {
		return s.fallback, nil
	}
	if active, ok := s.cache.Get(activeCatalogKey); ok {
		return active, nil
	}

	doc, err := s.repo.GetActive(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Str("source", s.fallback.Source).Msg("Catalog store unavailable, using fallback catalog")
		return s.fallback, nil
	}

	active := s.fallback
	if doc != nil {
		stored, err := fromDocument(doc)
		if err != nil {
			log.Error().Err(err).Int("version", doc.Version).Msg("Stored catalog is invalid, using fallback catalog")
		} else {
			active = stored
		}
	}

	s.cache.Set(activeCatalogKey, active)
	metrics.SetCatalogVersion(active.Version)
	return active, nil
}

// Update validates spec and stores it as the new active version.
func (s *CatalogServiceImpl) Update(ctx context.Context, spec model.CatalogSpec, updatedBy, note string) (*ActiveCatalog, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if _, err := model.NewCatalog(spec); err != nil {
		return nil, err
	}

	doc, err := s.repo.Create(ctx, spec, updatedBy, note)
	if err != nil {
		return nil, fmt.Errorf("store catalog: %w", err)
	}

	active, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}

	s.cache.Set(activeCatalogKey, active)
	metrics.SetCatalogVersion(active.Version)

	log.Info().
		Int("version", active.Version).
		Str("updated_by", updatedBy).
		Msg("Catalog updated")
	return active, nil
}

// History lists stored versions, newest first.
func (s *CatalogServiceImpl) History(ctx context.Context, limit int) ([]CatalogRevision, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	docs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}

	revisions := make([]CatalogRevision, 0, len(docs))
	for i := range docs {
		spec, err := docs[i].Spec()
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, CatalogRevision{
			Version:   docs[i].Version,
			Active:    docs[i].Active,
			Spec:      spec,
			CreatedAt: docs[i].CreatedAt,
			CreatedBy: docs[i].CreatedBy,
			Note:      docs[i].Note,
		})
	}
	return revisions, nil
}

// Invalidate drops the cached active catalog.
func (s *CatalogServiceImpl) Invalidate() {
	s.cache.Invalidate(activeCatalogKey)
}

// Stop releases the cache goroutine.
func (s *CatalogServiceImpl) Stop() {
	s.cache.Stop()
}

func fromDocument(doc *repository.CatalogDocument) (*ActiveCatalog, error) {
	spec, err := doc.Spec()
	if err != nil {
		return nil, err
	}
	cat, err := model.NewCatalog(spec)
	if err != nil {
		return nil, fmt.Errorf("stored catalog version %d: %w", doc.Version, err)
	}
	updatedAt := doc.CreatedAt
	return &ActiveCatalog{
		Catalog:   cat,
		Version:   doc.Version,
		Source:    CatalogSourceDatabase,
		UpdatedAt: &updatedAt,
		CreatedBy: doc.CreatedBy,
		Note:      doc.Note,
	}, nil
}
