// Package receipt renders priced quotes as one-page PDF receipts.
package receipt

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Segment names used to group receipt lines.
const (
	SegmentFixed      = "Items"
	SegmentMixedPacks = "Mixed packs"
	SegmentShirtPacks = "Shirt packs"
	SegmentLinenPacks = "Linen packs"
	SegmentLooseUnits = "Loose units"
)

// Line is one row of the receipt.
type Line struct {
	Segment     string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Section is a titled group of lines and its displayed subtotal.
type Section struct {
	Title    string
	Lines    []Line
	Subtotal decimal.Decimal
}

// Sections lays out the breakdown of quote against cat. Empty sections are
// omitted. Subtotals are rounded for display; the total is not recomputed.
// Every item and pack the breakdown uses must be listed in cat.
func Sections(quote model.Quote, cat *model.Catalog) ([]Section, error) {
	b := quote.Breakdown
	costs := b.CostBySegment.Display()

	fixed, err := fixedLines(b.FixedItems, cat)
	if err != nil {
		return nil, err
	}
	if err := checkPacks(b, cat); err != nil {
		return nil, err
	}

	var mixed, shirt, linen []Line
	for _, p := range cat.MixedPacks() {
		if n := b.MixedPacksUsed[p.ID]; n > 0 {
			desc := fmt.Sprintf("Mixed pack %s (%d pieces, up to %d shirts)", p.ID, p.Capacity, p.ShirtLimit)
			if s := b.ShirtsEmbeddedInMixedPacks[p.ID]; s > 0 {
				desc += fmt.Sprintf(", %d shirts inside", s)
			}
			mixed = append(mixed, newLine(SegmentMixedPacks, desc, n, p.Price))
		}
	}
	for _, p := range cat.ShirtPacks() {
		if n := b.ShirtPacksUsed[p.ID]; n > 0 {
			shirt = append(shirt, newLine(SegmentShirtPacks, fmt.Sprintf("Shirt pack %s (%d shirts)", p.ID, p.Capacity), n, p.Price))
		}
	}
	for _, p := range cat.LinenPacks() {
		if n := b.LinenPacksUsed[p.ID]; n > 0 {
			desc := fmt.Sprintf("Linen pack %s (%d sheets, %d pillowcases)", p.ID, p.Sheets, p.Pillowcases)
			linen = append(linen, newLine(SegmentLinenPacks, desc, n, p.Price))
		}
	}

	var loose []Line
	for _, c := range model.PoolableCategories {
		if n := b.LooseUnits[c]; n > 0 {
			item := cat.PoolableItem(c)
			loose = append(loose, newLine(SegmentLooseUnits, item.Name, n, item.UnitPrice))
		}
	}

	candidates := []Section{
		{Title: SegmentFixed, Lines: fixed, Subtotal: costs.Fixed},
		{Title: SegmentMixedPacks, Lines: mixed, Subtotal: costs.MixedPacks},
		{Title: SegmentShirtPacks, Lines: shirt, Subtotal: costs.ShirtPacks},
		{Title: SegmentLinenPacks, Lines: linen, Subtotal: costs.LinenPacks},
		{Title: SegmentLooseUnits, Lines: loose, Subtotal: costs.LooseUnits},
	}
	sections := candidates[:0]
	for _, s := range candidates {
		if len(s.Lines) > 0 {
			sections = append(sections, s)
		}
	}
	return sections, nil
}

func fixedLines(items map[string]int, cat *model.Catalog) ([]Line, error) {
	ids := make([]string, 0, len(items))
	for id, n := range items {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		item, err := cat.Item(id)
		if err != nil {
			return nil, err
		}
		lines = append(lines, newLine(SegmentFixed, item.Name, items[id], item.UnitPrice))
	}
	return lines, nil
}

// UnknownPackError is returned when a breakdown uses a pack the catalog does not list.
type UnknownPackError struct {
	Kind string
	ID   string
}

func (e *UnknownPackError) Error() string {
	return fmt.Sprintf("%s pack %q is not in the catalog", e.Kind, e.ID)
}

func checkPacks(b model.Breakdown, cat *model.Catalog) error {
	mixed := make(map[string]bool, len(cat.MixedPacks()))
	for _, p := range cat.MixedPacks() {
		mixed[p.ID] = true
	}
	shirt := make(map[string]bool, len(cat.ShirtPacks()))
	for _, p := range cat.ShirtPacks() {
		shirt[p.ID] = true
	}
	linen := make(map[string]bool, len(cat.LinenPacks()))
	for _, p := range cat.LinenPacks() {
		linen[p.ID] = true
	}

	checks := []struct {
		kind  string
		used  map[string]int
		known map[string]bool
	}{
		{kind: "mixed", used: b.MixedPacksUsed, known: mixed},
		{kind: "mixed", used: b.ShirtsEmbeddedInMixedPacks, known: mixed},
		{kind: "shirt", used: b.ShirtPacksUsed, known: shirt},
		{kind: "linen", used: b.LinenPacksUsed, known: linen},
	}
	for _, c := range checks {
		ids := make([]string, 0, len(c.used))
		for id, n := range c.used {
			if n > 0 && !c.known[id] {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			sort.Strings(ids)
			return &UnknownPackError{Kind: c.kind, ID: ids[0]}
		}
	}
	return nil
}

func newLine(segment, description string, qty int, unit decimal.Decimal) Line {
	return Line{
		Segment:     segment,
		Description: description,
		Quantity:    qty,
		UnitPrice:   unit,
		Amount:      unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// Column widths in millimetres; they add up to the A4 printable width.
var columns = []float64{100, 20, 30, 30}

// Render writes an A4 PDF receipt for quote to w.
func Render(w io.Writer, quote model.Quote, cat *model.Catalog) error {
	sections, err := Sections(quote, cat)
	if err != nil {
		return fmt.Errorf("layout receipt: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laundry receipt "+quote.ID, true)
	pdf.SetCreator("laundry-service", true)
	pdf.SetCatalogSort(true)
	if !quote.CreatedAt.IsZero() {
		pdf.SetCreationDate(quote.CreatedAt)
		pdf.SetModificationDate(quote.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Laundry receipt", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Quote "+quote.ID, "", 1, "L", false, 0, "")
	if !quote.CreatedAt.IsZero() {
		pdf.CellFormat(0, 6, quote.CreatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	}
	if quote.CatalogVersion > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Catalog version %d", quote.CatalogVersion), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	header := []string{"Description", "Qty", "Unit", "Amount"}
	for _, s := range sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range header {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(columns[i], 6, h, "B", 0, align, true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, l := range s.Lines {
			pdf.CellFormat(columns[0], 6, tr(l.Description), "", 0, "L", false, 0, "")
			pdf.CellFormat(columns[1], 6, fmt.Sprintf("%d", l.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(columns[2], 6, l.UnitPrice.StringFixed(model.MoneyPlaces), "", 0, "R", false, 0, "")
			pdf.CellFormat(columns[3], 6, model.RoundMoney(l.Amount).StringFixed(model.MoneyPlaces), "", 1, "R", false, 0, "")
		}

		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(columns[0]+columns[1]+columns[2], 6, "Subtotal", "T", 0, "R", false, 0, "")
		pdf.CellFormat(columns[3], 6, s.Subtotal.StringFixed(model.MoneyPlaces), "T", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	if len(sections) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "Nothing to clean.", "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(columns[0]+columns[1]+columns[2], 10, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(columns[3], 10, quote.Total.StringFixed(model.MoneyPlaces), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}
