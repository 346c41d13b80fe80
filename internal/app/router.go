package app

import (
	"github.com/guttosm/laundry-service/config"
	"github.com/guttosm/laundry-service/internal/http"
	"github.com/guttosm/laundry-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers    http.Handlers
	Config      http.RouterConfig
	AuditLogger *middleware.AsyncLogger
}

// InitializeRouter builds the HTTP handlers, health checks and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	var audit *middleware.AsyncLogger
	if db != nil {
		audit = middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	health := http.NewHealthHandler()
	if db != nil {
		health.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		health.RegisterCircuitBreaker(catalogsBreakerName, db.CatalogsCircuitBreaker)
		health.RegisterCircuitBreaker(logsBreakerName, db.LogsCircuitBreaker)
	}
	if services.Redis != nil {
		health.RegisterChecker("redis", http.HealthCheckFunc(services.Redis.Ping))
	}

	handlers := http.Handlers{
		Pricing: http.NewHandler(services.Pricing, services.Catalogs, http.WithAuditLogger(audit)),
		Catalog: http.NewCatalogHandler(services.Catalogs, audit),
		Health:  health,
	}
	if services.Auth != nil {
		handlers.Auth = http.NewAuthHandler(services.Auth, audit)
	}

	return &RouterComponents{
		Handlers: handlers,
		Config: http.RouterConfig{
			RateLimit:      cfg.Server.RateLimit,
			RateWindow:     cfg.Server.RateWindow,
			RequestTimeout: cfg.Server.RequestTimeout,
			AuthEnabled:    cfg.Auth.Enabled,
			APIKeys:        cfg.Auth.APIKeys,
			CORSOrigins:    cfg.Server.CORSOrigins,
			SwaggerUser:    cfg.Server.SwaggerUser,
			SwaggerPass:    cfg.Server.SwaggerPass,
			AuthService:    services.Auth,
			AuditLogger:    audit,
		},
		AuditLogger: audit,
	}
}
