package model

import "fmt"

// UnknownItemError is returned when an order or catalog lookup references an
// item id that the catalog does not define.
type UnknownItemError struct {
	ItemID string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item %q", e.ItemID)
}

// InvalidQuantityError is returned when a quantity is negative or not an integer.
type InvalidQuantityError struct {
	ItemID string
	// Value is the offending quantity as it was received.
	Value string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %s for item %q: must be a non-negative integer", e.Value, e.ItemID)
}

// InvalidCatalogError describes the first rule a catalog definition violates.
type InvalidCatalogError struct {
	Field  string
	Reason string
}

func (e *InvalidCatalogError) Error() string {
	return fmt.Sprintf("invalid catalog: %s: %s", e.Field, e.Reason)
}
