package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/circuitbreaker"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CatalogHandler serves catalog reads and administration.
type CatalogHandler struct {
	catalogs service.CatalogService
	audit    *middleware.AsyncLogger
}

// NewCatalogHandler creates a catalog handler. al may be nil.
func NewCatalogHandler(catalogs service.CatalogService, al *middleware.AsyncLogger) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, audit: al}
}

// GetCatalog handles GET /api/catalog requests.
//
// @Summary      Get the active catalog
// @Description  Returns the price list used to price orders and where it was loaded from.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Active catalog"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	active, err := h.catalogs.Active(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(newCatalogResponse(active))
}

// UpdateCatalog handles PUT /api/catalog requests.
//
// @Summary      Replace the active catalog
// @Description  Validates the catalog and stores it as a new version. New quotes use it immediately; stored quotes keep their prices.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateCatalogRequest true "New catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Stored catalog"
// @Failure      400 {object} dto.ErrorResponse "Invalid catalog"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      409 {object} dto.ErrorResponse "No catalog store configured"
// @Failure      503 {object} dto.ErrorResponse "Catalog store unavailable"
// @Security     BearerAuth
// @Router       /api/catalog [put]
func (h *CatalogHandler) UpdateCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpdateCatalogRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	active, err := h.catalogs.Update(c.Request.Context(), req.Catalog, middleware.GetActor(c), req.Note)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionUpdateCatalog, "Catalog update failed", err, nil)

		var invalid *model.InvalidCatalogError
		switch {
		case errors.As(err, &invalid):
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidCatalog,
				map[string]string{"field": invalid.Field, "reason": invalid.Reason}, err, invalid.Field, invalid.Reason)
		case errors.Is(err, service.ErrRepositoryNotConfigured):
			builder.Error(http.StatusConflict, i18n.ErrKeyCatalogReadOnly, err)
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionUpdateCatalog, "Catalog updated", map[string]interface{}{
		"version": active.Version,
		"note":    active.Note,
	})
	builder.SuccessOK(newCatalogResponse(active))
}

// CatalogHistory handles GET /api/catalog/history requests.
//
// @Summary      List catalog versions
// @Description  Returns stored catalog versions, newest first.
// @Tags         Catalog
// @Produce      json
// @Param        limit query int false "Maximum number of versions (1-100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.CatalogRevisionResponse} "Catalog versions"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      409 {object} dto.ErrorResponse "No catalog store configured"
// @Failure      503 {object} dto.ErrorResponse "Catalog store unavailable"
// @Router       /api/catalog/history [get]
func (h *CatalogHandler) CatalogHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, map[string]string{"limit": raw}, nil)
			return
		}
		limit = n
	}

	revisions, err := h.catalogs.History(c.Request.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRepositoryNotConfigured):
			builder.Error(http.StatusConflict, i18n.ErrKeyCatalogReadOnly, err)
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	resp := make([]dto.CatalogRevisionResponse, 0, len(revisions))
	for _, r := range revisions {
		resp = append(resp, dto.CatalogRevisionResponse{
			Version:   r.Version,
			Active:    r.Active,
			Catalog:   r.Spec,
			CreatedAt: r.CreatedAt,
			CreatedBy: r.CreatedBy,
			Note:      r.Note,
		})
	}
	builder.SuccessOK(resp)
}

func newCatalogResponse(active *service.ActiveCatalog) dto.CatalogResponse {
	return dto.CatalogResponse{
		Version:   active.Version,
		Source:    active.Source,
		Catalog:   active.Catalog.Spec(),
		UpdatedAt: active.UpdatedAt,
		CreatedBy: active.CreatedBy,
		Note:      active.Note,
	}
}
