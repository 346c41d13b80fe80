// Package model defines the core domain entities for the laundry service.
package model

import (
	"github.com/shopspring/decimal"
)

// Category identifies a poolable item category: an item type that can be bought
// as loose units or folded into a discount pack.
type Category string

const (
	// CategoryMisc is the miscellaneous piece category, covered by mixed packs.
	CategoryMisc Category = "misc"
	// CategoryShirt is the shirt category, covered by mixed packs and shirt packs.
	CategoryShirt Category = "shirt"
	// CategoryPillowcase is the pillowcase category, covered by linen packs.
	CategoryPillowcase Category = "pillowcase"
	// CategorySheet is the sheet category, covered by linen packs.
	CategorySheet Category = "sheet"
)

// PoolableCategories lists every poolable category in presentation order.
var PoolableCategories = []Category{CategoryMisc, CategoryShirt, CategoryPillowcase, CategorySheet}

// Valid reports whether c is one of the poolable categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMisc, CategoryShirt, CategoryPillowcase, CategorySheet:
		return true
	}
	return false
}

// ItemClass classifies a catalog item for the optimizer.
type ItemClass int

const (
	// ClassFixed items are priced only per unit and never enter the optimization.
	ClassFixed ItemClass = iota
	// ClassMisc is the poolable miscellaneous piece.
	ClassMisc
	// ClassShirt is the poolable shirt.
	ClassShirt
	// ClassPillowcase is the poolable pillowcase.
	ClassPillowcase
	// ClassSheet is the poolable sheet.
	ClassSheet
)

// String returns the string representation of the class.
func (c ItemClass) String() string {
	switch c {
	case ClassFixed:
		return "fixed"
	case ClassMisc:
		return "poolable-misc"
	case ClassShirt:
		return "poolable-shirt"
	case ClassPillowcase:
		return "poolable-pillowcase"
	case ClassSheet:
		return "poolable-sheet"
	default:
		return "unknown"
	}
}

func classOf(c Category) ItemClass {
	switch c {
	case CategoryMisc:
		return ClassMisc
	case CategoryShirt:
		return ClassShirt
	case CategoryPillowcase:
		return ClassPillowcase
	case CategorySheet:
		return ClassSheet
	default:
		return ClassFixed
	}
}

// MixedPack jointly covers miscellaneous pieces and shirts.
// Shirts occupy capacity but at most ShirtLimit of them fit in one pack.
type MixedPack struct {
	ID         string          `json:"id" yaml:"id"`
	Capacity   int             `json:"capacity" yaml:"capacity"`
	ShirtLimit int             `json:"shirt_limit" yaml:"shirt_limit"`
	Price      decimal.Decimal `json:"price" yaml:"price"`
}

// ShirtPack covers shirts only.
type ShirtPack struct {
	ID       string          `json:"id" yaml:"id"`
	Capacity int             `json:"capacity" yaml:"capacity"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
}

// LinenPack covers a fixed bundle of sheets and pillowcases.
type LinenPack struct {
	ID          string          `json:"id" yaml:"id"`
	Sheets      int             `json:"sheets" yaml:"sheets"`
	Pillowcases int             `json:"pillowcases" yaml:"pillowcases"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
}

// Item is a priced catalog entry. Category is empty for fixed-price items.
type Item struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	Category  Category        `json:"category,omitempty" yaml:"category,omitempty"`
}

// Poolable reports whether the item has a pack alternative.
func (i Item) Poolable() bool {
	return i.Category != ""
}

// CatalogSpec is the plain, mutable description of a catalog as it is stored
// and exchanged. Use NewCatalog to obtain a validated, immutable Catalog.
type CatalogSpec struct {
	MixedPacks []MixedPack `json:"mixed_packs" yaml:"mixed_packs"`
	ShirtPacks []ShirtPack `json:"shirt_packs" yaml:"shirt_packs"`
	LinenPacks []LinenPack `json:"linen_packs" yaml:"linen_packs"`
	Items      []Item      `json:"items" yaml:"items"`
}

// Catalog is an immutable set of pricing rules. It is safe for concurrent use
// because nothing mutates it after NewCatalog returns.
type Catalog struct {
	mixedPacks []MixedPack
	shirtPacks []ShirtPack
	linenPacks []LinenPack
	items      []Item
	index      map[string]int
	poolable   map[Category]string
}

// NewCatalog validates spec and returns an immutable Catalog built from a copy of it.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	c := &Catalog{
		mixedPacks: append([]MixedPack(nil), spec.MixedPacks...),
		shirtPacks: append([]ShirtPack(nil), spec.ShirtPacks...),
		linenPacks: append([]LinenPack(nil), spec.LinenPacks...),
		items:      append([]Item(nil), spec.Items...),
		index:      make(map[string]int, len(spec.Items)),
		poolable:   make(map[Category]string, len(PoolableCategories)),
	}
	for i, item := range c.items {
		c.index[item.ID] = i
		if item.Poolable() {
			c.poolable[item.Category] = item.ID
		}
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid spec.
// It is intended for built-in catalogs and tests.
func MustCatalog(spec CatalogSpec) *Catalog {
	c, err := NewCatalog(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func validateSpec(spec CatalogSpec) error {
	seen := make(map[string]bool, len(spec.Items))
	poolable := make(map[Category]string, len(PoolableCategories))
	for _, item := range spec.Items {
		if item.ID == "" {
			return &InvalidCatalogError{Field: "items", Reason: "item id is required"}
		}
		if seen[item.ID] {
			return &InvalidCatalogError{Field: "items." + item.ID, Reason: "duplicate item id"}
		}
		seen[item.ID] = true
		if item.UnitPrice.IsNegative() {
			return &InvalidCatalogError{Field: "items." + item.ID, Reason: "unit price must not be negative"}
		}
		if item.Category == "" {
			continue
		}
		if !item.Category.Valid() {
			return &InvalidCatalogError{Field: "items." + item.ID, Reason: "unknown category " + string(item.Category)}
		}
		if other, ok := poolable[item.Category]; ok {
			return &InvalidCatalogError{
				Field:  "items." + item.ID,
				Reason: "category " + string(item.Category) + " already priced by " + other,
			}
		}
		poolable[item.Category] = item.ID
	}
	for _, cat := range PoolableCategories {
		if _, ok := poolable[cat]; !ok {
			return &InvalidCatalogError{Field: "items", Reason: "no loose unit price for category " + string(cat)}
		}
	}

	ids := make(map[string]bool, len(spec.MixedPacks))
	for _, p := range spec.MixedPacks {
		field := "mixed_packs." + p.ID
		switch {
		case p.ID == "":
			return &InvalidCatalogError{Field: "mixed_packs", Reason: "pack id is required"}
		case ids[p.ID]:
			return &InvalidCatalogError{Field: field, Reason: "duplicate pack id"}
		case p.Capacity <= 0:
			return &InvalidCatalogError{Field: field, Reason: "capacity must be positive"}
		case p.ShirtLimit < 0 || p.ShirtLimit > p.Capacity:
			return &InvalidCatalogError{Field: field, Reason: "shirt limit must be between 0 and capacity"}
		case p.Price.IsNegative():
			return &InvalidCatalogError{Field: field, Reason: "price must not be negative"}
		}
		ids[p.ID] = true
	}

	ids = make(map[string]bool, len(spec.ShirtPacks))
	for _, p := range spec.ShirtPacks {
		field := "shirt_packs." + p.ID
		switch {
		case p.ID == "":
			return &InvalidCatalogError{Field: "shirt_packs", Reason: "pack id is required"}
		case ids[p.ID]:
			return &InvalidCatalogError{Field: field, Reason: "duplicate pack id"}
		case p.Capacity <= 0:
			return &InvalidCatalogError{Field: field, Reason: "capacity must be positive"}
		case p.Price.IsNegative():
			return &InvalidCatalogError{Field: field, Reason: "price must not be negative"}
		}
		ids[p.ID] = true
	}

	ids = make(map[string]bool, len(spec.LinenPacks))
	for _, p := range spec.LinenPacks {
		field := "linen_packs." + p.ID
		switch {
		case p.ID == "":
			return &InvalidCatalogError{Field: "linen_packs", Reason: "pack id is required"}
		case ids[p.ID]:
			return &InvalidCatalogError{Field: field, Reason: "duplicate pack id"}
		case p.Sheets < 0 || p.Pillowcases < 0:
			return &InvalidCatalogError{Field: field, Reason: "counts must not be negative"}
		case p.Sheets == 0 && p.Pillowcases == 0:
			return &InvalidCatalogError{Field: field, Reason: "pack must cover at least one sheet or pillowcase"}
		case p.Price.IsNegative():
			return &InvalidCatalogError{Field: field, Reason: "price must not be negative"}
		}
		ids[p.ID] = true
	}
	return nil
}

// MixedPacks returns the mixed packs in catalog order.
func (c *Catalog) MixedPacks() []MixedPack {
	return append([]MixedPack(nil), c.mixedPacks...)
}

// ShirtPacks returns the shirt packs in catalog order.
func (c *Catalog) ShirtPacks() []ShirtPack {
	return append([]ShirtPack(nil), c.shirtPacks...)
}

// LinenPacks returns the linen packs in catalog order.
func (c *Catalog) LinenPacks() []LinenPack {
	return append([]LinenPack(nil), c.linenPacks...)
}

// Items returns every catalog item in catalog order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (Item, error) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, &UnknownItemError{ItemID: id}
	}
	return c.items[i], nil
}

// Has reports whether id belongs to the catalog item set.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// UnitPrice returns the per-unit price of an item.
func (c *Catalog) UnitPrice(id string) (decimal.Decimal, error) {
	item, err := c.Item(id)
	if err != nil {
		return decimal.Zero, err
	}
	return item.UnitPrice, nil
}

// Classify reports whether an item is fixed-price or which poolable category it belongs to.
func (c *Catalog) Classify(id string) (ItemClass, error) {
	item, err := c.Item(id)
	if err != nil {
		return ClassFixed, err
	}
	return classOf(item.Category), nil
}

// PoolableItem returns the item that prices loose units of a category.
func (c *Catalog) PoolableItem(category Category) Item {
	return c.items[c.index[c.poolable[category]]]
}

// Spec returns a copy of the catalog as plain data.
func (c *Catalog) Spec() CatalogSpec {
	return CatalogSpec{
		MixedPacks: c.MixedPacks(),
		ShirtPacks: c.ShirtPacks(),
		LinenPacks: c.LinenPacks(),
		Items:      c.Items(),
	}
}
