package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	// AuthEnabled protects the API with APIKeys and the admin routes with JWTs.
	AuthEnabled bool
	APIKeys     map[string]bool
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
	AuthService service.AuthService
	AuditLogger *middleware.AsyncLogger
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
	}
}

// Handlers groups the handlers mounted by the router. Auth may be nil when
// authentication is disabled.
type Handlers struct {
	Pricing *Handler
	Catalog *CatalogHandler
	Auth    *AuthHandler
	Health  *HealthHandler
}

// Router is the configured gin engine plus the rate limiters it owns.
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiter cleanup goroutines.
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

// NewRouter creates and configures the gin router for the laundry service.
func NewRouter(h Handlers, cfg RouterConfig) *Router {
	r := &Router{Engine: gin.New()}

	r.configureGlobalMiddleware(&cfg)
	registerInfrastructureRoutes(r.Engine, h.Health, &cfg)

	api := r.Group("/api")

	if h.Auth != nil {
		NewAuthRoutes(h.Auth, cfg.AuthService).RegisterPublicRoutes(api)
	}

	public := api.Group("")
	if cfg.AuthEnabled && len(cfg.APIKeys) > 0 {
		public.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	NewPricingRoutes(h.Pricing).RegisterPublicRoutes(public)
	catalogRoutes := NewCatalogRoutes(h.Catalog)
	catalogRoutes.RegisterPublicRoutes(public)

	switch {
	case !cfg.AuthEnabled:
		catalogRoutes.RegisterProtectedRoutes(api)
	case cfg.AuthService != nil:
		var limiter *middleware.RateLimiter
		if cfg.RateLimit > 0 {
			limiter = r.newLimiter("admin", &cfg)
		}
		protected := NewAuthRoutes(h.Auth, cfg.AuthService).ProtectedGroup(api, limiter)
		catalogRoutes.RegisterProtectedRoutes(protected)
	}

	return r
}

func (r *Router) newLimiter(name string, cfg *RouterConfig) *middleware.RateLimiter {
	l := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, middleware.WithLimiterName(name))
	r.limiters = append(r.limiters, l)
	return l
}

func (r *Router) configureGlobalMiddleware(cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditLogger),
		middleware.ErrorHandler(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	if cfg.RateLimit > 0 {
		r.Use(r.newLimiter("global", cfg).RateLimit())
	}
}

func registerInfrastructureRoutes(router *gin.Engine, health *HealthHandler, cfg *RouterConfig) {
	if health == nil {
		health = NewHealthHandler()
	}
	health.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
