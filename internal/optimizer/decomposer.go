package optimizer

import (
	"fmt"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Decompose turns an optimal solution into a breakdown. Costs are recomputed
// from catalog prices with exact decimals and only the total is rounded.
//
// Pack maps and fixed items list positive counts only; every poolable
// category appears in LooseUnits. Shirt slots the order does not fill are
// reported as miscellaneous capacity rather than embedded shirts.
func Decompose(sol Solution, cat *model.Catalog, order model.Order) (model.Breakdown, error) {
	if sol.Status != StatusOptimal {
		return model.Breakdown{}, &SolverFailureError{Status: sol.Status}
	}

	value := func(id VarID) (int, error) {
		v, ok := sol.Values[id]
		if !ok {
			return 0, &SolverFailureError{Status: StatusError, Err: fmt.Errorf("no value for variable %s", id)}
		}
		if v < 0 {
			return 0, &SolverFailureError{Status: StatusError, Err: fmt.Errorf("negative value %d for variable %s", v, id)}
		}
		return int(v), nil
	}

	b := model.NewBreakdown()
	costs := &b.CostBySegment

	unplaced := order[cat.PoolableItem(model.CategoryShirt).ID]
	for _, mp := range cat.MixedPacks() {
		count, err := value(MixedPackVar(mp.ID))
		if err != nil {
			return model.Breakdown{}, err
		}
		shirts, err := value(MixedShirtsVar(mp.ID))
		if err != nil {
			return model.Breakdown{}, err
		}
		if count == 0 {
			continue
		}
		b.MixedPacksUsed[mp.ID] = count
		costs.MixedPacks = costs.MixedPacks.Add(mp.Price.Mul(decimal.NewFromInt(int64(count))))

		shirts = min(shirts, unplaced)
		if shirts > 0 {
			b.ShirtsEmbeddedInMixedPacks[mp.ID] = shirts
			unplaced -= shirts
		}
	}

	for _, sp := range cat.ShirtPacks() {
		count, err := value(ShirtPackVar(sp.ID))
		if err != nil {
			return model.Breakdown{}, err
		}
		if count > 0 {
			b.ShirtPacksUsed[sp.ID] = count
			costs.ShirtPacks = costs.ShirtPacks.Add(sp.Price.Mul(decimal.NewFromInt(int64(count))))
		}
	}

	for _, pack := range cat.LinenPacks() {
		count, err := value(LinenPackVar(pack.ID))
		if err != nil {
			return model.Breakdown{}, err
		}
		if count > 0 {
			b.LinenPacksUsed[pack.ID] = count
			costs.LinenPacks = costs.LinenPacks.Add(pack.Price.Mul(decimal.NewFromInt(int64(count))))
		}
	}

	for _, c := range model.PoolableCategories {
		count, err := value(LooseVar(c))
		if err != nil {
			return model.Breakdown{}, err
		}
		b.LooseUnits[c] = count
		price := cat.PoolableItem(c).UnitPrice
		costs.LooseUnits = costs.LooseUnits.Add(price.Mul(decimal.NewFromInt(int64(count))))
	}

	for _, id := range order.ItemIDs() {
		qty := order[id]
		item, err := cat.Item(id)
		if err != nil {
			return model.Breakdown{}, err
		}
		if item.Poolable() || qty <= 0 {
			continue
		}
		b.FixedItems[id] = qty
		costs.Fixed = costs.Fixed.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
	}

	costs.Total = model.RoundMoney(costs.Sum())
	return b, nil
}
