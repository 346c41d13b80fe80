package model

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places of the currency minor unit.
const MoneyPlaces = 2

// SegmentCosts holds the cost of each part of a priced order.
// Every segment is exact; only Total is rounded.
type SegmentCosts struct {
	Fixed      decimal.Decimal `json:"fixed" bson:"fixed"`
	MixedPacks decimal.Decimal `json:"mixed_packs" bson:"mixed_packs"`
	ShirtPacks decimal.Decimal `json:"shirt_packs" bson:"shirt_packs"`
	LinenPacks decimal.Decimal `json:"linen_packs" bson:"linen_packs"`
	LooseUnits decimal.Decimal `json:"loose_units" bson:"loose_units"`
	Total      decimal.Decimal `json:"total" bson:"total"`
}

// Sum returns the unrounded sum of the five segments.
func (s SegmentCosts) Sum() decimal.Decimal {
	return s.Fixed.Add(s.MixedPacks).Add(s.ShirtPacks).Add(s.LinenPacks).Add(s.LooseUnits)
}

// Display returns a copy with every segment rounded to the currency minor unit.
// Total is left as computed.
func (s SegmentCosts) Display() SegmentCosts {
	return SegmentCosts{
		Fixed:      RoundMoney(s.Fixed),
		MixedPacks: RoundMoney(s.MixedPacks),
		ShirtPacks: RoundMoney(s.ShirtPacks),
		LinenPacks: RoundMoney(s.LinenPacks),
		LooseUnits: RoundMoney(s.LooseUnits),
		Total:      s.Total,
	}
}

// RoundMoney rounds half away from zero to the currency minor unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Breakdown is the auditable decomposition of an optimized order.
type Breakdown struct {
	FixedItems                 map[string]int   `json:"fixed_items"`
	MixedPacksUsed             map[string]int   `json:"mixed_packs_used"`
	ShirtPacksUsed             map[string]int   `json:"shirt_packs_used"`
	LinenPacksUsed             map[string]int   `json:"linen_packs_used"`
	LooseUnits                 map[Category]int `json:"loose_units"`
	ShirtsEmbeddedInMixedPacks map[string]int   `json:"shirts_embedded_in_mixed_packs"`
	CostBySegment              SegmentCosts     `json:"cost_by_segment"`
}

// NewBreakdown returns a breakdown with empty maps and every loose category at zero.
func NewBreakdown() Breakdown {
	loose := make(map[Category]int, len(PoolableCategories))
	for _, c := range PoolableCategories {
		loose[c] = 0
	}
	return Breakdown{
		FixedItems:                 map[string]int{},
		MixedPacksUsed:             map[string]int{},
		ShirtPacksUsed:             map[string]int{},
		LinenPacksUsed:             map[string]int{},
		LooseUnits:                 loose,
		ShirtsEmbeddedInMixedPacks: map[string]int{},
		CostBySegment: SegmentCosts{
			Fixed:      decimal.Zero,
			MixedPacks: decimal.Zero,
			ShirtPacks: decimal.Zero,
			LinenPacks: decimal.Zero,
			LooseUnits: decimal.Zero,
			Total:      decimal.Zero,
		},
	}
}

// Empty reports whether nothing was priced.
func (b Breakdown) Empty() bool {
	if len(b.FixedItems)+len(b.MixedPacksUsed)+len(b.ShirtPacksUsed)+len(b.LinenPacksUsed) > 0 {
		return false
	}
	for _, n := range b.LooseUnits {
		if n != 0 {
			return false
		}
	}
	return true
}
