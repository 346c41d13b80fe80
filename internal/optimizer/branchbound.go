package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// DefaultMaxNodes bounds the number of subproblems a BranchAndBound solve may examine.
	DefaultMaxNodes = 100000
	// DefaultTolerance is passed to the simplex method for every relaxation.
	DefaultTolerance = 1e-10

	integralityTol = 1e-7
)

// ErrNodeLimit is returned when a solve examines more subproblems than allowed.
var ErrNodeLimit = errors.New("branch and bound node limit reached")

// BranchAndBound is the default Solver. It solves linear relaxations with
// gonum's simplex implementation and searches depth-first, branching on the
// most fractional variable.
type BranchAndBound struct {
	tol      float64
	maxNodes int
}

// BranchAndBoundOption configures a BranchAndBound.
type BranchAndBoundOption func(*BranchAndBound)

// WithTolerance sets the simplex tolerance.
func WithTolerance(tol float64) BranchAndBoundOption {
	return func(b *BranchAndBound) {
		if tol >= 0 {
			b.tol = tol
		}
	}
}

// WithMaxNodes sets the subproblem limit.
func WithMaxNodes(n int) BranchAndBoundOption {
	return func(b *BranchAndBound) {
		if n > 0 {
			b.maxNodes = n
		}
	}
}

// NewBranchAndBound creates a solver with the given options applied over the defaults.
func NewBranchAndBound(opts ...BranchAndBoundOption) *BranchAndBound {
	b := &BranchAndBound{
		tol:      DefaultTolerance,
		maxNodes: DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Solve finds an optimal integer assignment for p. Constraint blocks that share
// no variable are solved independently and merged; the node limit applies per block.
func (s *BranchAndBound) Solve(ctx context.Context, p *Problem) (Solution, error) {
	if err := p.Validate(); err != nil {
		return Solution{Status: StatusError}, err
	}
	for _, c := range p.Constraints {
		if len(c.Terms) == 0 && !c.Satisfied(nil) {
			return Solution{Status: StatusInfeasible}, nil
		}
	}

	merged := Solution{Status: StatusOptimal, Values: make(map[VarID]int64, len(p.Variables))}
	for _, block := range partition(p) {
		sol, err := s.solveBlock(ctx, block)
		merged.Nodes += sol.Nodes
		if err != nil || sol.Status != StatusOptimal {
			return Solution{Status: sol.Status, Nodes: merged.Nodes}, err
		}
		for id, v := range sol.Values {
			merged.Values[id] = v
		}
		merged.Objective += sol.Objective
	}
	return merged, nil
}

func (s *BranchAndBound) solveBlock(ctx context.Context, p *Problem) (Solution, error) {
	r := newRelaxation(p)
	if r.infeasible {
		return Solution{Status: StatusInfeasible}, nil
	}

	var best []int64
	bestObj := math.Inf(1)
	if p.Hint != nil && p.Feasible(p.Hint) {
		best = r.vector(p.Hint)
		bestObj = p.Objective(p.Hint)
		if bestObj == 0 && r.nonNegativeCosts() {
			return r.solution(best, bestObj, 0), nil
		}
	}
	r.limitBounds(bestObj)

	stack := []node{newNode(len(r.costs))}
	nodes := 0
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{Status: StatusError, Nodes: nodes}, fmt.Errorf("branch and bound interrupted: %w", err)
		}
		if nodes >= s.maxNodes {
			return Solution{Status: StatusError, Nodes: nodes}, ErrNodeLimit
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		x, obj, err := r.solve(nd, s.tol)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return Solution{Status: StatusUnbounded, Nodes: nodes}, nil
		case err != nil:
			// No relaxation bound: fall back to the parent bound and split the domain.
			if best != nil && (prune(nd.bound, bestObj, p.ObjectiveStep) || r.beyondLimits(nd)) {
				continue
			}
			down, up, ok := r.split(nd)
			if !ok {
				return Solution{Status: StatusError, Nodes: nodes}, fmt.Errorf("linear relaxation at node %d: %w", nodes, err)
			}
			stack = append(stack, down, up)
			continue
		}

		if best != nil && prune(obj, bestObj, p.ObjectiveStep) {
			continue
		}

		j := mostFractional(x)
		if j < 0 {
			candidate := roundVector(x)
			values := r.values(candidate)
			if !p.Feasible(values) {
				continue
			}
			if o := p.Objective(values); o < bestObj {
				best, bestObj = candidate, o
			}
			continue
		}

		down, up := nd.clone(), nd.clone()
		down.hi[j] = math.Floor(x[j])
		up.lo[j] = math.Ceil(x[j])
		down.bound, up.bound = obj, obj
		// LIFO: the up branch is explored first.
		stack = append(stack, down, up)
	}

	if best == nil {
		return Solution{Status: StatusInfeasible, Nodes: nodes}, nil
	}
	return r.solution(best, bestObj, nodes), nil
}

// prune reports whether a relaxation bound cannot beat the incumbent.
// With a known objective step the bound is first raised to the next multiple of it.
func prune(bound, incumbent, step float64) bool {
	if step > 0 {
		bound = math.Ceil(bound/step-1e-6) * step
		return bound >= incumbent-step/2
	}
	return bound >= incumbent-1e-9*math.Max(1, math.Abs(incumbent))
}

func mostFractional(x []float64) int {
	best, bestDist := -1, 0.0
	for j, v := range x {
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist <= integralityTol+1e-9*math.Abs(v) {
			continue
		}
		if dist > bestDist {
			best, bestDist = j, dist
		}
	}
	return best
}

func roundVector(x []float64) []int64 {
	out := make([]int64, len(x))
	for j, v := range x {
		if r := math.Round(v); r > 0 {
			out[j] = int64(r)
		}
	}
	return out
}

// node holds the branching bounds of one subproblem and the relaxation bound
// of its parent.
type node struct {
	lo, hi []float64
	bound  float64
}

func newNode(n int) node {
	nd := node{lo: make([]float64, n), hi: make([]float64, n), bound: math.Inf(-1)}
	for j := range nd.hi {
		nd.hi[j] = math.Inf(1)
	}
	return nd
}

func (n node) clone() node {
	return node{
		lo:    append([]float64(nil), n.lo...),
		hi:    append([]float64(nil), n.hi...),
		bound: n.bound,
	}
}

type row struct {
	cols  []int
	coefs []float64
	sense Sense
	rhs   float64
}

const rowTol = 1e-9

// normalize flips the row so that its right-hand side is non-negative.
func normalize(rw row) row {
	if math.Abs(rw.rhs) < rowTol {
		rw.rhs = 0
	}
	if rw.rhs >= 0 {
		return rw
	}
	rw.rhs = -rw.rhs
	for k := range rw.coefs {
		rw.coefs[k] = -rw.coefs[k]
	}
	if rw.sense == GreaterEq {
		rw.sense = LessEq
	} else {
		rw.sense = GreaterEq
	}
	return rw
}

// relaxation is the presolved linear form of a problem, shared by every node.
// Rows have a non-negative right-hand side; rows implied by non-negativity are dropped.
type relaxation struct {
	ids        []VarID
	index      map[VarID]int
	costs      []float64
	rows       []row
	limits     []float64
	infeasible bool
}

func newRelaxation(p *Problem) *relaxation {
	r := &relaxation{
		ids:    make([]VarID, len(p.Variables)),
		index:  make(map[VarID]int, len(p.Variables)),
		costs:  make([]float64, len(p.Variables)),
		limits: make([]float64, len(p.Variables)),
	}
	for j, v := range p.Variables {
		r.ids[j] = v.ID
		r.index[v.ID] = j
		r.costs[j] = v.Cost
		r.limits[j] = math.Inf(1)
	}

	for _, c := range p.Constraints {
		merged := make(map[int]float64, len(c.Terms))
		var order []int
		for _, t := range c.Terms {
			j := r.index[t.Var]
			if _, ok := merged[j]; !ok {
				order = append(order, j)
			}
			merged[j] += t.Coef
		}

		rw := row{sense: c.Sense, rhs: c.RHS}
		for _, j := range order {
			if merged[j] != 0 {
				rw.cols = append(rw.cols, j)
				rw.coefs = append(rw.coefs, merged[j])
			}
		}
		rw = normalize(rw)

		if len(rw.cols) == 0 {
			if rw.sense == GreaterEq && rw.rhs > 0 {
				r.infeasible = true
			}
			continue
		}
		if implied(rw) {
			continue
		}
		r.rows = append(r.rows, rw)
	}
	return r
}

// implied reports whether every non-negative assignment satisfies the row.
func implied(rw row) bool {
	for _, a := range rw.coefs {
		if rw.sense == GreaterEq && a < 0 {
			return false
		}
		if rw.sense == LessEq && a > 0 {
			return false
		}
	}
	return rw.sense == LessEq || rw.rhs == 0
}

func (r *relaxation) nonNegativeCosts() bool {
	for _, c := range r.costs {
		if c < 0 {
			return false
		}
	}
	return true
}

// limitBounds derives upper bounds that every assignment cheaper than the
// incumbent respects: priced columns from the incumbent objective, the others
// by propagation through the rows. Columns left unbounded keep +Inf.
func (r *relaxation) limitBounds(incumbent float64) {
	if math.IsInf(incumbent, 1) || !r.nonNegativeCosts() {
		return
	}
	for j, c := range r.costs {
		if c > 0 {
			r.limits[j] = math.Floor(incumbent/c + 1e-9)
		}
	}
	for pass := 0; pass < 3; pass++ {
		for _, rw := range r.rows {
			// Read the row as sum(sign*a*x) <= sign*rhs.
			sign := 1.0
			if rw.sense == GreaterEq {
				sign = -1
			}
			for k, j := range rw.cols {
				a := sign * rw.coefs[k]
				if a <= 0 {
					continue
				}
				room := sign * rw.rhs
				for kk, jj := range rw.cols {
					if b := sign * rw.coefs[kk]; kk != k && b < 0 {
						room -= b * r.limits[jj]
					}
				}
				if !math.IsInf(room, 0) && !math.IsNaN(room) {
					r.limits[j] = math.Min(r.limits[j], math.Floor(room/a+1e-9))
				}
			}
		}
	}
}

// beyondLimits reports whether a node forces a column past its derived limit,
// which rules out any assignment cheaper than the incumbent.
func (r *relaxation) beyondLimits(nd node) bool {
	for j, lo := range nd.lo {
		if lo > r.limits[j] {
			return true
		}
	}
	return false
}

// split halves the widest bounded domain of the node.
func (r *relaxation) split(nd node) (node, node, bool) {
	best, width := -1, 0.0
	for j := range nd.lo {
		hi := math.Min(nd.hi[j], r.limits[j])
		if w := hi - nd.lo[j]; !math.IsInf(w, 1) && w > width {
			best, width = j, w
		}
	}
	if best < 0 {
		return node{}, node{}, false
	}
	hi := math.Min(nd.hi[best], r.limits[best])
	mid := math.Floor(nd.lo[best] + width/2)
	down, up := nd.clone(), nd.clone()
	down.hi[best] = mid
	up.lo[best], up.hi[best] = mid+1, hi
	return down, up, true
}

// solve minimizes the relaxation within the node bounds. Every column is
// shifted by its lower bound and columns with equal bounds are substituted,
// so only upper bounds add rows. Columns that appear in no remaining row stay
// at their lower bound unless their cost is negative.
func (r *relaxation) solve(nd node, tol float64) ([]float64, float64, error) {
	n := len(r.costs)
	x := make([]float64, n)
	width := make([]float64, n)
	free := make([]bool, n)
	obj := 0.0
	for j := 0; j < n; j++ {
		if nd.lo[j] > nd.hi[j] {
			return nil, 0, lp.ErrInfeasible
		}
		x[j] = nd.lo[j]
		obj += r.costs[j] * nd.lo[j]
		width[j] = nd.hi[j] - nd.lo[j]
		free[j] = width[j] > 0
	}

	rows := make([]row, 0, len(r.rows)+n)
	inRows := make([]int, n)
	for _, base := range r.rows {
		rw := row{sense: base.sense, rhs: base.rhs}
		for k, j := range base.cols {
			rw.rhs -= base.coefs[k] * nd.lo[j]
			if free[j] {
				rw.cols = append(rw.cols, j)
				rw.coefs = append(rw.coefs, base.coefs[k])
			}
		}
		rw = normalize(rw)
		if len(rw.cols) == 0 {
			if rw.sense == GreaterEq && rw.rhs > 0 {
				return nil, 0, lp.ErrInfeasible
			}
			continue
		}
		if implied(rw) {
			continue
		}
		for _, j := range rw.cols {
			inRows[j]++
		}
		rows = append(rows, rw)
	}
	structural := len(rows)

	pos := make([]int, n)
	active := make([]int, 0, n)
	for j := 0; j < n; j++ {
		pos[j] = -1
		switch {
		case inRows[j] > 0:
			pos[j] = len(active)
			active = append(active, j)
		case !free[j] || r.costs[j] >= 0:
		case math.IsInf(width[j], 1):
			return nil, 0, lp.ErrUnbounded
		default:
			x[j] += width[j]
			obj += r.costs[j] * width[j]
		}
	}
	for _, j := range active {
		if !math.IsInf(width[j], 1) {
			rows = append(rows, row{cols: []int{j}, coefs: []float64{1}, sense: LessEq, rhs: width[j]})
		}
	}
	if len(rows) == 0 {
		return x, obj, nil
	}

	lpx := standardForm{costs: r.costs, active: active, pos: pos, structural: structural}
	y, yObj, err := lpx.solve(rows, width, inRows, tol)
	if err != nil {
		return nil, 0, err
	}
	for k, j := range active {
		if y[k] > 0 {
			x[j] += y[k]
		}
	}
	return x, obj + yObj, nil
}

func (r *relaxation) vector(values map[VarID]int64) []int64 {
	out := make([]int64, len(r.ids))
	for id, v := range values {
		if j, ok := r.index[id]; ok {
			out[j] = v
		}
	}
	return out
}

func (r *relaxation) values(x []int64) map[VarID]int64 {
	out := make(map[VarID]int64, len(r.ids))
	for j, id := range r.ids {
		out[id] = x[j]
	}
	return out
}

func (r *relaxation) solution(x []int64, obj float64, nodes int) Solution {
	return Solution{
		Status:    StatusOptimal,
		Values:    r.values(x),
		Objective: obj,
		Nodes:     nodes,
	}
}
