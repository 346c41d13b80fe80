package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/catalog"
	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/guttosm/laundry-service/internal/service/cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// quoteStoreShards is the shard count of the memory quote store.
const quoteStoreShards = 16

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Pricing    service.PricingService
	Catalogs   *service.CatalogServiceImpl
	Auth       service.AuthService
	QuoteStore cache.QuoteStore
	// Redis and redisClient are nil unless quotes are kept in Redis.
	Redis       *service.RedisQuoteStore
	redisClient *redis.Client
}

// Close stops background work and releases the quote store.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.Catalogs.Stop()
	s.QuoteStore.Stop()
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
}

// InitializeServices builds the pricing, catalog and auth services. db may be nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	fallback, err := catalog.Resolve(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	source := service.CatalogSourceDefault
	if cfg.Catalog.File != "" {
		source = service.CatalogSourceFile
		log.Info().Str("file", cfg.Catalog.File).Msg("Loaded catalog file")
	}

	catalogOpts := []service.CatalogOption{service.WithCatalogCacheTTL(cfg.Catalog.CacheTTL)}
	if db != nil {
		catalogOpts = append(catalogOpts, service.WithCatalogRepository(db.CatalogRepo))
	}
	catalogs := service.NewCatalogService(fallback, source, catalogOpts...)

	components := &ServiceComponents{Catalogs: catalogs}
	components.QuoteStore, components.redisClient = initializeQuoteStore(cfg)
	if components.redisClient != nil {
		components.Redis, _ = components.QuoteStore.(*service.RedisQuoteStore)
	}

	solver := optimizer.NewBranchAndBound(
		optimizer.WithMaxNodes(cfg.Solver.MaxNodes),
		optimizer.WithTolerance(cfg.Solver.Tolerance),
	)
	components.Pricing = service.NewPricingService(
		catalogs,
		optimizer.New(optimizer.WithSolver(solver)),
		components.QuoteStore,
		service.WithQuoteTTL(cfg.Quotes.TTL),
	)

	if cfg.Auth.Enabled {
		if cfg.Auth.AdminPasswordHash == "" {
			log.Warn().Msg("ADMIN_PASSWORD_HASH is not set - admin login is disabled")
		}
		components.Auth = service.NewAuthService(cfg.Auth)
	}

	return components, nil
}

// initializeQuoteStore connects to Redis when configured and falls back to the
// memory store when Redis cannot be reached.
func initializeQuoteStore(cfg config.Config) (cache.QuoteStore, *redis.Client) {
	if cfg.Quotes.Store == config.QuoteStoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := service.NewRedisQuoteStore(client, cfg.Redis.KeyPrefix, cfg.Quotes.TTL)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := store.Ping(ctx)
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Quotes are stored in Redis")
			return store, client
		}
		log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis - using memory quote store")
		_ = client.Close()
	}

	return service.NewMemoryQuoteStore(cfg.Quotes.CacheSize, cfg.Quotes.TTL, quoteStoreShards), nil
}
