// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/laundry-service/internal/domain/model"
)

// OptimizeRequest documents the body of the optimize endpoint.
// A bare object of quantities without the items wrapper is accepted too.
//
// @Description Order to price, as item id to quantity
// @Example {"items": {"misc-piece": 24, "shirt": 9, "pillowcase": 2, "sheet": 2, "simple-dress": 3}}
type OptimizeRequest struct {
	// Items maps catalog item ids to non-negative integer quantities.
	Items map[string]int `json:"items" example:"shirt:3"`
} // @name OptimizeRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrBodyNotObject is returned when the order body is not a JSON object.
	ErrBodyNotObject = &ValidationError{
		Field:   "body",
		Message: "must be a JSON object of item quantities",
	}
	// ErrItemsNotAlone is returned when a wrapped order has keys next to "items".
	ErrItemsNotAlone = &ValidationError{
		Field:   "items",
		Message: "must be the only top-level key when it holds an object",
	}
)

// ParseOrder reads an order from a JSON body shaped either as {"items": {...}}
// or as the bare quantity object. A wrapped order may not carry other keys.
// Quantities may be integers, integral numbers such as 3.0, or strings holding
// an integer. Anything else yields *model.InvalidQuantityError. Item ids are
// not checked here.
func ParseOrder(raw []byte) (model.Order, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, ErrBodyNotObject
	}

	if wrapped, ok := body["items"]; ok {
		var items map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &items); err == nil && items != nil {
			if len(body) > 1 {
				return nil, ErrItemsNotAlone
			}
			body = items
		}
	}

	ids := make([]string, 0, len(body))
	for id := range body {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	order := make(model.Order, len(body))
	for _, id := range ids {
		qty, ok := parseQuantity(body[id])
		if !ok {
			return nil, &model.InvalidQuantityError{ItemID: id, Value: string(bytes.TrimSpace(body[id]))}
		}
		order[id] = qty
	}
	return order, nil
}

func parseQuantity(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	}

	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return 0, false
	}
	if n, err := num.Int64(); err == nil {
		return int(n), n <= math.MaxInt32 && n >= math.MinInt32
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// UpdateCatalogRequest is the body of the catalog replacement endpoint.
//
// @Description New active catalog
type UpdateCatalogRequest struct {
	Catalog model.CatalogSpec `json:"catalog"`
	// Note is a free text comment stored with the catalog version.
	Note string `json:"note,omitempty" example:"summer prices"`
} // @name UpdateCatalogRequest
