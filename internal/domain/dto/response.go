package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data (QuoteResponse for the optimize endpoint)
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-06-02T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Unknown item in order"`
	// Details contains additional error details, such as the offending item id
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-06-02T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// Money renders an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(model.MoneyPlaces)
}

// SegmentCostsResponse is the per-segment cost of a quote, as display strings.
type SegmentCostsResponse struct {
	Fixed      string `json:"fixed" example:"21.00"`
	MixedPacks string `json:"mixed_packs" example:"16.00"`
	ShirtPacks string `json:"shirt_packs" example:"6.50"`
	LinenPacks string `json:"linen_packs" example:"0.00"`
	LooseUnits string `json:"loose_units" example:"19.20"`
	Total      string `json:"total" example:"62.70"`
} // @name SegmentCostsResponse

// BreakdownResponse is the auditable decomposition of a quote.
type BreakdownResponse struct {
	FixedItems                 map[string]int       `json:"fixed_items"`
	MixedPacksUsed             map[string]int       `json:"mixed_packs_used"`
	ShirtPacksUsed             map[string]int       `json:"shirt_packs_used"`
	LinenPacksUsed             map[string]int       `json:"linen_packs_used"`
	LooseUnits                 map[string]int       `json:"loose_units"`
	ShirtsEmbeddedInMixedPacks map[string]int       `json:"shirts_embedded_in_mixed_packs"`
	CostBySegment              SegmentCostsResponse `json:"cost_by_segment"`
} // @name BreakdownResponse

// QuoteResponse is a priced order.
//
// @Description Minimum cost of an order and the packs that achieve it
type QuoteResponse struct {
	ID             string            `json:"id" example:"0b6f7c4e-3f0a-4b53-a4a4-1f6f7f1d2c9e"`
	TotalCost      string            `json:"total_cost" example:"62.70"`
	Breakdown      BreakdownResponse `json:"breakdown"`
	CatalogVersion int               `json:"catalog_version" example:"1"`
	CreatedAt      time.Time         `json:"created_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
} // @name QuoteResponse

// NewBreakdownResponse converts a breakdown, rounding every segment for display.
func NewBreakdownResponse(b model.Breakdown) BreakdownResponse {
	loose := make(map[string]int, len(b.LooseUnits))
	for c, n := range b.LooseUnits {
		loose[string(c)] = n
	}
	costs := b.CostBySegment.Display()
	return BreakdownResponse{
		FixedItems:                 nonNil(b.FixedItems),
		MixedPacksUsed:             nonNil(b.MixedPacksUsed),
		ShirtPacksUsed:             nonNil(b.ShirtPacksUsed),
		LinenPacksUsed:             nonNil(b.LinenPacksUsed),
		LooseUnits:                 loose,
		ShirtsEmbeddedInMixedPacks: nonNil(b.ShirtsEmbeddedInMixedPacks),
		CostBySegment: SegmentCostsResponse{
			Fixed:      Money(costs.Fixed),
			MixedPacks: Money(costs.MixedPacks),
			ShirtPacks: Money(costs.ShirtPacks),
			LinenPacks: Money(costs.LinenPacks),
			LooseUnits: Money(costs.LooseUnits),
			Total:      Money(costs.Total),
		},
	}
}

// NewQuoteResponse converts a stored quote.
func NewQuoteResponse(q model.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		TotalCost:      Money(q.Total),
		Breakdown:      NewBreakdownResponse(q.Breakdown),
		CatalogVersion: q.CatalogVersion,
		CreatedAt:      q.CreatedAt,
		ExpiresAt:      q.ExpiresAt,
	}
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// CatalogResponse is the active catalog and its version.
//
// @Description Active catalog
type CatalogResponse struct {
	Version   int               `json:"version" example:"1"`
	Source    string            `json:"source" example:"database"`
	Catalog   model.CatalogSpec `json:"catalog"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
	CreatedBy string            `json:"created_by,omitempty" example:"admin"`
	Note      string            `json:"note,omitempty"`
} // @name CatalogResponse

// CatalogRevisionResponse is one stored catalog version.
//
// @Description Stored catalog version
type CatalogRevisionResponse struct {
	Version   int               `json:"version" example:"2"`
	Active    bool              `json:"active" example:"true"`
	Catalog   model.CatalogSpec `json:"catalog"`
	CreatedAt time.Time         `json:"created_at"`
	CreatedBy string            `json:"created_by,omitempty" example:"admin"`
	Note      string            `json:"note,omitempty" example:"summer prices"`
} // @name CatalogRevisionResponse
