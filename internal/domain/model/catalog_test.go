package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() CatalogSpec {
	return CatalogSpec{
		MixedPacks: []MixedPack{{ID: "20", Capacity: 20, ShirtLimit: 5, Price: decimal.RequireFromString("16.00")}},
		ShirtPacks: []ShirtPack{{ID: "5", Capacity: 5, Price: decimal.RequireFromString("6.50")}},
		LinenPacks: []LinenPack{{ID: "Small", Sheets: 2, Pillowcases: 4, Price: decimal.RequireFromString("17.00")}},
		Items: []Item{
			{ID: "misc-piece", Name: "Miscellaneous piece", UnitPrice: decimal.RequireFromString("0.90"), Category: CategoryMisc},
			{ID: "shirt", Name: "Shirt", UnitPrice: decimal.RequireFromString("1.80"), Category: CategoryShirt},
			{ID: "pillowcase", Name: "Pillowcase", UnitPrice: decimal.RequireFromString("2.50"), Category: CategoryPillowcase},
			{ID: "sheet", Name: "Sheet", UnitPrice: decimal.RequireFromString("3.50"), Category: CategorySheet},
			{ID: "simple-dress", Name: "Simple dress", UnitPrice: decimal.RequireFromString("7.00")},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CatalogSpec)
		wantField string
	}{
		{name: "valid spec", mutate: func(*CatalogSpec) {}},
		{
			name:      "zero capacity mixed pack",
			mutate:    func(s *CatalogSpec) { s.MixedPacks[0].Capacity = 0 },
			wantField: "mixed_packs.20",
		},
		{
			name:      "shirt limit above capacity",
			mutate:    func(s *CatalogSpec) { s.MixedPacks[0].ShirtLimit = 21 },
			wantField: "mixed_packs.20",
		},
		{
			name:      "negative shirt pack price",
			mutate:    func(s *CatalogSpec) { s.ShirtPacks[0].Price = decimal.NewFromInt(-1) },
			wantField: "shirt_packs.5",
		},
		{
			name:      "empty linen pack",
			mutate:    func(s *CatalogSpec) { s.LinenPacks[0].Sheets, s.LinenPacks[0].Pillowcases = 0, 0 },
			wantField: "linen_packs.Small",
		},
		{
			name: "duplicate pack id",
			mutate: func(s *CatalogSpec) {
				s.ShirtPacks = append(s.ShirtPacks, ShirtPack{ID: "5", Capacity: 10, Price: decimal.NewFromInt(12)})
			},
			wantField: "shirt_packs.5",
		},
		{
			name:      "duplicate item id",
			mutate:    func(s *CatalogSpec) { s.Items = append(s.Items, Item{ID: "shirt", UnitPrice: decimal.NewFromInt(1)}) },
			wantField: "items.shirt",
		},
		{
			name:      "missing loose fallback",
			mutate:    func(s *CatalogSpec) { s.Items = s.Items[1:] },
			wantField: "items",
		},
		{
			name: "two items for one category",
			mutate: func(s *CatalogSpec) {
				s.Items = append(s.Items, Item{ID: "polo", UnitPrice: decimal.NewFromInt(2), Category: CategoryShirt})
			},
			wantField: "items.polo",
		},
		{
			name:      "unknown category",
			mutate:    func(s *CatalogSpec) { s.Items[4].Category = "curtain" },
			wantField: "items.simple-dress",
		},
		{
			name:      "negative unit price",
			mutate:    func(s *CatalogSpec) { s.Items[4].UnitPrice = decimal.RequireFromString("-0.01") },
			wantField: "items.simple-dress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(&spec)

			cat, err := NewCatalog(spec)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotNil(t, cat)
				return
			}

			var invalid *InvalidCatalogError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
			assert.Nil(t, cat)
		})
	}
}

func TestCatalog_IsolatedFromSpec(t *testing.T) {
	spec := testSpec()
	cat := MustCatalog(spec)

	spec.MixedPacks[0].Price = decimal.NewFromInt(1)
	spec.Items[0].UnitPrice = decimal.NewFromInt(1)
	assert.Equal(t, "16", cat.MixedPacks()[0].Price.String())

	packs := cat.MixedPacks()
	packs[0].Capacity = 99
	assert.Equal(t, 20, cat.MixedPacks()[0].Capacity)

	price, err := cat.UnitPrice("misc-piece")
	require.NoError(t, err)
	assert.Equal(t, "0.9", price.String())
}

func TestCatalog_Classify(t *testing.T) {
	cat := MustCatalog(testSpec())

	tests := []struct {
		id   string
		want ItemClass
	}{
		{"misc-piece", ClassMisc},
		{"shirt", ClassShirt},
		{"pillowcase", ClassPillowcase},
		{"sheet", ClassSheet},
		{"simple-dress", ClassFixed},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := cat.Classify(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cat.Classify("tuxedo")
	var unknown *UnknownItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "tuxedo", unknown.ItemID)

	_, err = cat.UnitPrice("tuxedo")
	assert.ErrorAs(t, err, &unknown)
}

func TestCatalog_PoolableItemAndSpec(t *testing.T) {
	cat := MustCatalog(testSpec())

	assert.Equal(t, "sheet", cat.PoolableItem(CategorySheet).ID)
	assert.Equal(t, "shirt", cat.PoolableItem(CategoryShirt).ID)

	again, err := NewCatalog(cat.Spec())
	require.NoError(t, err)
	assert.Equal(t, cat.Items(), again.Items())
}

func TestMustCatalog_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCatalog(CatalogSpec{}) })
}

func TestItemClass_String(t *testing.T) {
	assert.Equal(t, "fixed", ClassFixed.String())
	assert.Equal(t, "poolable-sheet", ClassSheet.String())
	assert.Equal(t, "unknown", ItemClass(42).String())
}
