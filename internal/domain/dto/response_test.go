package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeInternal, "solver failed").WithRequestID("test-id")

	assert.Equal(t, "test-id", err.RequestID)
	assert.Equal(t, ErrCodeInternal, err.Error)
	assert.Equal(t, "solver failed", err.Message)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestNewQuoteResponse(t *testing.T) {
	b := model.NewBreakdown()
	b.FixedItems["simple-dress"] = 3
	b.MixedPacksUsed["20"] = 1
	b.ShirtsEmbeddedInMixedPacks["20"] = 4
	b.LooseUnits[model.CategoryMisc] = 8
	b.CostBySegment = model.SegmentCosts{
		Fixed:      decimal.RequireFromString("21"),
		MixedPacks: decimal.RequireFromString("16"),
		ShirtPacks: decimal.RequireFromString("6.5"),
		LinenPacks: decimal.Zero,
		LooseUnits: decimal.RequireFromString("19.2"),
		Total:      decimal.RequireFromString("62.7"),
	}
	now := time.Now().UTC()
	q := model.Quote{ID: "q-1", Total: b.CostBySegment.Total, Breakdown: b, CatalogVersion: 2, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	resp := NewQuoteResponse(q)

	assert.Equal(t, "q-1", resp.ID)
	assert.Equal(t, "62.70", resp.TotalCost)
	assert.Equal(t, 2, resp.CatalogVersion)
	assert.Equal(t, "6.50", resp.Breakdown.CostBySegment.ShirtPacks)
	assert.Equal(t, "0.00", resp.Breakdown.CostBySegment.LinenPacks)
	assert.Equal(t, 8, resp.Breakdown.LooseUnits["misc"])
	assert.Equal(t, 0, resp.Breakdown.LooseUnits["sheet"])

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_cost":"62.70"`)
	assert.Contains(t, string(raw), `"shirt_packs_used":{}`)
	assert.Contains(t, string(raw), `"shirts_embedded_in_mixed_packs":{"20":4}`)
}

func TestNewBreakdownResponse_NilMaps(t *testing.T) {
	resp := NewBreakdownResponse(model.Breakdown{})

	assert.NotNil(t, resp.FixedItems)
	assert.NotNil(t, resp.MixedPacksUsed)
	assert.Equal(t, "0.00", resp.CostBySegment.Total)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "650002.00", Money(decimal.NewFromInt(650002)))
	assert.Equal(t, "0.13", Money(decimal.RequireFromString("0.125")))
}
