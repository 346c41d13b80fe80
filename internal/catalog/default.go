// Package catalog provides the built-in price list and loads catalogs from YAML files.
package catalog

import (
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Item ids of the built-in price list.
const (
	MiscPiece       = "misc-piece"
	Shirt           = "shirt"
	Pillowcase      = "pillowcase"
	Sheet           = "sheet"
	SimpleDress     = "simple-dress"
	RuffledDress    = "ruffled-dress"
	CreasedTrousers = "creased-trousers"
	Blazer          = "blazer"
	Towel           = "towel"
	TrouserSuit     = "trouser-suit"
	CeremonyDress   = "ceremony-dress"
	WeddingDress    = "wedding-dress"
	Overcoat        = "overcoat"
	PaddedJacket    = "padded-jacket"
	DownJacket      = "down-jacket"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultSpec returns the June 2025 price list.
func DefaultSpec() model.CatalogSpec {
	return model.CatalogSpec{
		MixedPacks: []model.MixedPack{
			{ID: "20", Capacity: 20, ShirtLimit: 5, Price: price("16.00")},
			{ID: "40", Capacity: 40, ShirtLimit: 8, Price: price("28.00")},
			{ID: "60", Capacity: 60, ShirtLimit: 12, Price: price("39.00")},
		},
		ShirtPacks: []model.ShirtPack{
			{ID: "5", Capacity: 5, Price: price("6.50")},
			{ID: "10", Capacity: 10, Price: price("12.00")},
		},
		LinenPacks: []model.LinenPack{
			{ID: "Small", Sheets: 2, Pillowcases: 4, Price: price("17.00")},
			{ID: "Large", Sheets: 3, Pillowcases: 6, Price: price("24.00")},
		},
		Items: []model.Item{
			{ID: MiscPiece, Name: "Miscellaneous piece", UnitPrice: price("0.90"), Category: model.CategoryMisc},
			{ID: Shirt, Name: "Shirt", UnitPrice: price("1.80"), Category: model.CategoryShirt},
			{ID: Pillowcase, Name: "Pillowcase", UnitPrice: price("2.50"), Category: model.CategoryPillowcase},
			{ID: Sheet, Name: "Sheet", UnitPrice: price("3.50"), Category: model.CategorySheet},
			{ID: SimpleDress, Name: "Simple dress", UnitPrice: price("7.00")},
			{ID: RuffledDress, Name: "Ruffled dress", UnitPrice: price("12.50")},
			{ID: CreasedTrousers, Name: "Creased trousers", UnitPrice: price("3.50")},
			{ID: Blazer, Name: "Blazer", UnitPrice: price("4.50")},
			{ID: Towel, Name: "Towel", UnitPrice: price("2.00")},
			{ID: TrouserSuit, Name: "Trouser suit", UnitPrice: price("12.50")},
			{ID: CeremonyDress, Name: "Ceremony dress", UnitPrice: price("12.50")},
			{ID: WeddingDress, Name: "Wedding dress", UnitPrice: price("100.00")},
			{ID: Overcoat, Name: "Overcoat", UnitPrice: price("16.90")},
			{ID: PaddedJacket, Name: "Padded jacket", UnitPrice: price("13.00")},
			{ID: DownJacket, Name: "Down jacket", UnitPrice: price("20.00")},
		},
	}
}

// Default returns the built-in catalog.
func Default() *model.Catalog {
	return model.MustCatalog(DefaultSpec())
}

// ExampleOrder is the sample order priced by the command line example mode.
func ExampleOrder() model.Order {
	return model.Order{
		MiscPiece:   24,
		Shirt:       9,
		Pillowcase:  2,
		Sheet:       2,
		SimpleDress: 3,
	}
}
