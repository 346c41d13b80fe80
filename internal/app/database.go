package app

import (
	"context"
	"time"

	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/circuitbreaker"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/repository"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/rs/zerolog/log"
)

// Circuit breaker names, also used as readiness check names.
const (
	catalogsBreakerName = "mongodb_catalogs"
	logsBreakerName     = "mongodb_logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	CatalogRepo            repository.CatalogRepositoryInterface
	LoggingService         service.LoggingService
	CatalogsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// InitializeDatabase connects to MongoDB and builds the catalog and log repositories.
// Returns nil if the database is disabled or the connection fails; the service
// then prices with the configured catalog and keeps no audit trail.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	catalogsCB := newBreaker(cfg, catalogsBreakerName)
	logsCB := newBreaker(cfg, logsBreakerName)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                     db,
		CatalogRepo:            repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogsCB),
		LoggingService:         service.NewLoggingService(logsRepo),
		CatalogsCircuitBreaker: catalogsCB,
		LogsCircuitBreaker:     logsCB,
	}
}

func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange:    onBreakerStateChange,
	})
}

func onBreakerStateChange(name string, from, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
	log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
}
