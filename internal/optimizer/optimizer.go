package optimizer

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Optimizer prices orders at minimum cost: BuildProblem, then the Solver, then
// Decompose. It holds no state besides the solver and is safe for concurrent use.
type Optimizer struct {
	solver Solver
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithSolver replaces the default BranchAndBound solver.
func WithSolver(s Solver) Option {
	return func(o *Optimizer) {
		if s != nil {
			o.solver = s
		}
	}
}

// New creates an Optimizer.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{solver: NewBranchAndBound()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize returns the minimum total cost of the order under the catalog and
// the breakdown that achieves it. The total equals Breakdown.CostBySegment.Total.
//
// Unknown items and negative quantities are rejected before the solver runs.
// A non-optimal solve is returned as *SolverFailureError.
func (o *Optimizer) Optimize(ctx context.Context, cat *model.Catalog, order model.Order) (decimal.Decimal, model.Breakdown, error) {
	problem, err := BuildProblem(cat, order)
	if err != nil {
		return decimal.Zero, model.Breakdown{}, err
	}

	sol, err := o.solver.Solve(ctx, problem)
	if err != nil {
		return decimal.Zero, model.Breakdown{}, &SolverFailureError{Status: StatusError, Err: err}
	}
	if sol.Status != StatusOptimal {
		return decimal.Zero, model.Breakdown{}, &SolverFailureError{Status: sol.Status}
	}

	breakdown, err := Decompose(sol, cat, order)
	if err != nil {
		return decimal.Zero, model.Breakdown{}, err
	}
	return breakdown.CostBySegment.Total, breakdown, nil
}
