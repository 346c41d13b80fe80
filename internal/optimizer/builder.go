package optimizer

import (
	"math"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

const problemName = "laundry_cost_minimization"

// BuildProblem translates a catalog and an order into an integer program.
//
// Variables: a count and an embedded-shirt count per mixed pack, a count per
// shirt pack and per linen pack, and a loose count per poolable category.
// Coverage constraints are inequalities; buying more pack capacity than ordered
// is allowed. Fixed-price items never enter the program.
//
// The variable set depends only on the catalog, never on the quantities.
func BuildProblem(cat *model.Catalog, order model.Order) (*Problem, error) {
	if err := model.ValidateOrder(cat, order); err != nil {
		return nil, err
	}

	qty := make(map[model.Category]float64, len(model.PoolableCategories))
	for _, c := range model.PoolableCategories {
		qty[c] = float64(order[cat.PoolableItem(c).ID])
	}

	mixed := cat.MixedPacks()
	shirtPacks := cat.ShirtPacks()
	linen := cat.LinenPacks()

	p := &Problem{
		Name:      problemName,
		Variables: make([]Variable, 0, 2*len(mixed)+len(shirtPacks)+len(linen)+len(model.PoolableCategories)),
		Hint:      make(map[VarID]int64, len(model.PoolableCategories)),
	}
	prices := make([]decimal.Decimal, 0, cap(p.Variables))
	addVar := func(id VarID, price decimal.Decimal) {
		p.Variables = append(p.Variables, Variable{ID: id, Cost: price.InexactFloat64()})
		prices = append(prices, price)
	}

	shirtCover := Constraint{Name: "cover_shirt", Sense: GreaterEq, RHS: qty[model.CategoryShirt]}
	miscCover := Constraint{Name: "cover_misc", Sense: GreaterEq, RHS: qty[model.CategoryMisc]}
	pillowCover := Constraint{Name: "cover_pillowcase", Sense: GreaterEq, RHS: qty[model.CategoryPillowcase]}
	sheetCover := Constraint{Name: "cover_sheet", Sense: GreaterEq, RHS: qty[model.CategorySheet]}
	var limits []Constraint

	for _, mp := range mixed {
		count, shirts := MixedPackVar(mp.ID), MixedShirtsVar(mp.ID)
		addVar(count, mp.Price)
		addVar(shirts, decimal.Zero)

		limits = append(limits, Constraint{
			Name:  "shirt_limit_" + mp.ID,
			Terms: []Term{{Var: shirts, Coef: 1}, {Var: count, Coef: -float64(mp.ShirtLimit)}},
			Sense: LessEq,
		})
		shirtCover.Terms = append(shirtCover.Terms, Term{Var: shirts, Coef: 1})
		miscCover.Terms = append(miscCover.Terms,
			Term{Var: count, Coef: float64(mp.Capacity)},
			Term{Var: shirts, Coef: -1},
		)
	}

	for _, sp := range shirtPacks {
		id := ShirtPackVar(sp.ID)
		addVar(id, sp.Price)
		shirtCover.Terms = append(shirtCover.Terms, Term{Var: id, Coef: float64(sp.Capacity)})
	}

	for _, pack := range linen {
		id := LinenPackVar(pack.ID)
		addVar(id, pack.Price)
		if pack.Pillowcases > 0 {
			pillowCover.Terms = append(pillowCover.Terms, Term{Var: id, Coef: float64(pack.Pillowcases)})
		}
		if pack.Sheets > 0 {
			sheetCover.Terms = append(sheetCover.Terms, Term{Var: id, Coef: float64(pack.Sheets)})
		}
	}

	for _, c := range model.PoolableCategories {
		id := LooseVar(c)
		addVar(id, cat.PoolableItem(c).UnitPrice)
		p.Hint[id] = int64(qty[c])
	}
	shirtCover.Terms = append(shirtCover.Terms, Term{Var: LooseVar(model.CategoryShirt), Coef: 1})
	miscCover.Terms = append(miscCover.Terms, Term{Var: LooseVar(model.CategoryMisc), Coef: 1})
	pillowCover.Terms = append(pillowCover.Terms, Term{Var: LooseVar(model.CategoryPillowcase), Coef: 1})
	sheetCover.Terms = append(sheetCover.Terms, Term{Var: LooseVar(model.CategorySheet), Coef: 1})

	p.Constraints = append(p.Constraints, shirtCover, miscCover, pillowCover, sheetCover)
	p.Constraints = append(p.Constraints, limits...)
	p.ObjectiveStep = objectiveStep(prices)

	return p, nil
}

// objectiveStep returns the smallest power of ten that divides every price.
// Any integer combination of the prices is then a multiple of it.
func objectiveStep(prices []decimal.Decimal) float64 {
	places := int32(0)
	for _, p := range prices {
		if exp := p.Exponent(); -exp > places {
			places = -exp
		}
	}
	return math.Pow10(-int(places))
}
