package model

import (
	"sort"
	"strconv"
)

// Order maps an item id to the ordered quantity. Missing ids mean zero.
type Order map[string]int

// ItemIDs returns the order's item ids in lexical order.
func (o Order) ItemIDs() []string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalUnits returns the sum of all quantities.
func (o Order) TotalUnits() int {
	total := 0
	for _, qty := range o {
		total += qty
	}
	return total
}

// Clone returns an independent copy of the order.
func (o Order) Clone() Order {
	c := make(Order, len(o))
	for id, qty := range o {
		c[id] = qty
	}
	return c
}

// ValidateOrder checks every id against the catalog and every quantity for sign.
// Ids are checked in lexical order so the reported error is deterministic.
func ValidateOrder(cat *Catalog, order Order) error {
	for _, id := range order.ItemIDs() {
		if !cat.Has(id) {
			return &UnknownItemError{ItemID: id}
		}
		if qty := order[id]; qty < 0 {
			return &InvalidQuantityError{ItemID: id, Value: strconv.Itoa(qty)}
		}
	}
	return nil
}
