// Package http exposes the laundry pricing service over HTTP with gin.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/guttosm/laundry-service/internal/receipt"
	"github.com/guttosm/laundry-service/internal/service"
)

// maxOrderBytes bounds the optimize request body.
const maxOrderBytes = 64 << 10

// Handler serves the pricing routes.
type Handler struct {
	pricing  service.PricingService
	catalogs service.CatalogService
	audit    *middleware.AsyncLogger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditLogger records optimizations and receipts through al.
func WithAuditLogger(al *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.audit = al
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(pricing service.PricingService, catalogs service.CatalogService, opts ...HandlerOption) *Handler {
	h := &Handler{
		pricing:  pricing,
		catalogs: catalogs,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Optimize handles POST /api/optimize requests.
//
// @Summary      Price an order
// @Description  Returns the minimum total cost of an order and the packs, loose units and fixed items that achieve it. The body is either {"items": {...}} or the bare object of item quantities. Quantities must be non-negative integers; "3" and 3.0 are accepted.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body dto.OptimizeRequest true "Order to price"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Priced order"
// @Failure      400 {object} dto.ErrorResponse "Unknown item or invalid quantity"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Solver failure"
// @Failure      504 {object} dto.ErrorResponse "Optimization timed out"
// @Router       /api/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxOrderBytes))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	order, err := dto.ParseOrder(raw)
	if err != nil {
		writeOrderError(builder, err)
		return
	}

	quote, err := h.pricing.Optimize(c.Request.Context(), order)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionOptimize, "Order optimization failed", err, nil)
		writeOrderError(builder, err)
		return
	}

	entry := middleware.NewAuditEntry(c, model.ActionOptimize, "Order optimized")
	entry.QuoteID = quote.ID
	entry.WithField("total_cost", dto.Money(quote.Total)).WithField("catalog_version", quote.CatalogVersion)
	h.audit.Log(entry)

	builder.SuccessOK(dto.NewQuoteResponse(quote))
}

// GetQuote handles GET /api/quotes/:id requests.
//
// @Summary      Get a priced order
// @Description  Returns a quote produced by the optimize endpoint while it has not expired.
// @Tags         Pricing
// @Produce      json
// @Param        id path string true "Quote id"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Stored quote"
// @Failure      404 {object} dto.ErrorResponse "Unknown or expired quote"
// @Failure      503 {object} dto.ErrorResponse "Quote store unavailable"
// @Router       /api/quotes/{id} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	quote, err := h.pricing.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeQuoteError(builder, c.Param("id"), err)
		return
	}

	builder.SuccessOK(dto.NewQuoteResponse(quote))
}

// GetReceipt handles GET /api/quotes/:id/receipt requests.
//
// @Summary      Download a receipt
// @Description  Renders a stored quote as a one-page PDF receipt using the catalog the quote was priced with.
// @Tags         Pricing
// @Produce      application/pdf
// @Param        id path string true "Quote id"
// @Success      200 {file} binary "PDF receipt"
// @Failure      404 {object} dto.ErrorResponse "Unknown or expired quote"
// @Failure      500 {object} dto.ErrorResponse "Receipt could not be rendered"
// @Router       /api/quotes/{id}/receipt [get]
func (h *Handler) GetReceipt(c *gin.Context) {
	builder := NewResponseBuilder(c)
	ctx := c.Request.Context()
	id := c.Param("id")

	quote, err := h.pricing.GetQuote(ctx, id)
	if err != nil {
		writeQuoteError(builder, id, err)
		return
	}

	cat, err := h.receiptCatalog(ctx, quote)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, quote, cat); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	entry := middleware.NewAuditEntry(c, model.ActionReceipt, "Receipt downloaded")
	entry.QuoteID = quote.ID
	h.audit.Log(entry)

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, quote.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// receiptCatalog returns the catalog snapshot stored with the quote, or the
// active catalog for quotes stored without one.
func (h *Handler) receiptCatalog(ctx context.Context, quote model.Quote) (*model.Catalog, error) {
	cat, err := quote.PricedCatalog()
	if err != nil || cat != nil {
		return cat, err
	}
	active, err := h.catalogs.Active(ctx)
	if err != nil {
		return nil, err
	}
	return active.Catalog, nil
}

// writeOrderError maps parse, validation and solver errors to responses.
func writeOrderError(builder *ResponseBuilder, err error) {
	var (
		unknown    *model.UnknownItemError
		quantity   *model.InvalidQuantityError
		validation *dto.ValidationError
		failure    *optimizer.SolverFailureError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.As(err, &unknown):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyUnknownItem,
			map[string]string{"item": unknown.ItemID}, err, unknown.ItemID)
	case errors.As(err, &quantity):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidQuantity,
			map[string]string{"item": quantity.ItemID, "value": quantity.Value}, err, quantity.ItemID, quantity.Value)
	case errors.As(err, &validation):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody,
			map[string]string{"field": validation.Field}, err)
	case errors.As(err, &failure):
		builder.ErrorWithDetails(http.StatusInternalServerError, i18n.ErrKeySolverFailure,
			map[string]string{"status": failure.Status.String()}, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func writeQuoteError(builder *ResponseBuilder, id string, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		builder.ErrorWithDetails(http.StatusNotFound, i18n.ErrKeyQuoteNotFound, map[string]string{"quote_id": id}, err)
	default:
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	}
}
