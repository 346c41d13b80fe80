package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/service"
)

// PublicRouteGroup defines routes that don't require an admin token.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require an admin token when auth is enabled.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup)
}

// PricingRoutes registers the optimize and quote routes.
type PricingRoutes struct {
	handler *Handler
}

// NewPricingRoutes creates pricing routes for handler.
func NewPricingRoutes(handler *Handler) *PricingRoutes {
	return &PricingRoutes{handler: handler}
}

// RegisterPublicRoutes registers the pricing endpoints.
func (r *PricingRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize", r.handler.Optimize)
	quotes := rg.Group("/quotes")
	{
		quotes.GET("/:id", r.handler.GetQuote)
		quotes.GET("/:id/receipt", r.handler.GetReceipt)
	}
}

// CatalogRoutes registers catalog reads and administration.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates catalog routes for handler.
func NewCatalogRoutes(handler *CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterPublicRoutes registers the active catalog read.
func (r *CatalogRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", r.handler.GetCatalog)
}

// RegisterProtectedRoutes registers catalog replacement and history.
func (r *CatalogRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/catalog", r.handler.UpdateCatalog)
	rg.GET("/catalog/history", r.handler.CatalogHistory)
}

// AuthRoutes registers the token endpoint and builds the admin group.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates auth routes for handler, validating tokens with authService.
func NewAuthRoutes(handler *AuthHandler, authService service.AuthService) *AuthRoutes {
	return &AuthRoutes{handler: handler, authService: authService}
}

// RegisterPublicRoutes registers POST /auth/token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/token", r.handler.IssueToken)
}

// ProtectedGroup returns a group that requires an admin token, rate limited per admin.
func (r *AuthRoutes) ProtectedGroup(rg *gin.RouterGroup, limiter *middleware.RateLimiter) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService), middleware.RequireRole(service.RoleAdmin))
	if limiter != nil {
		protected.Use(limiter.ActorRateLimit())
	}
	return protected
}
