package optimizer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

func TestBranchAndBound_Solve(t *testing.T) {
	tests := []struct {
		name       string
		problem    *Problem
		wantStatus Status
		wantObj    float64
		want       map[VarID]int64
	}{
		{
			name: "fractional relaxation rounds up",
			problem: &Problem{
				Variables:   []Variable{{ID: "x", Cost: 1}},
				Constraints: []Constraint{{Name: "c", Terms: []Term{{Var: "x", Coef: 2}}, Sense: GreaterEq, RHS: 3}},
			},
			wantStatus: StatusOptimal,
			wantObj:    2,
			want:       map[VarID]int64{"x": 2},
		},
		{
			name: "bundle beats units",
			problem: &Problem{
				Variables: []Variable{{ID: "unit", Cost: 1}, {ID: "box", Cost: 4.5}},
				Constraints: []Constraint{{
					Name:  "cover",
					Terms: []Term{{Var: "unit", Coef: 1}, {Var: "box", Coef: 6}},
					Sense: GreaterEq,
					RHS:   11,
				}},
				Hint:          map[VarID]int64{"unit": 11},
				ObjectiveStep: 0.5,
			},
			wantStatus: StatusOptimal,
			wantObj:    9,
			want:       map[VarID]int64{"unit": 0, "box": 2},
		},
		{
			name: "knapsack style cover",
			problem: &Problem{
				Variables: []Variable{{ID: "a", Cost: 5}, {ID: "b", Cost: 7}},
				Constraints: []Constraint{{
					Name:  "cover",
					Terms: []Term{{Var: "a", Coef: 3}, {Var: "b", Coef: 5}},
					Sense: GreaterEq,
					RHS:   9,
				}},
			},
			wantStatus: StatusOptimal,
			wantObj:    14,
		},
		{
			name: "zero cost hint short circuits",
			problem: &Problem{
				Variables:   []Variable{{ID: "x", Cost: 1}},
				Constraints: []Constraint{{Name: "c", Terms: []Term{{Var: "x", Coef: 1}}, Sense: GreaterEq, RHS: 0}},
				Hint:        map[VarID]int64{"x": 0},
			},
			wantStatus: StatusOptimal,
			wantObj:    0,
			want:       map[VarID]int64{"x": 0},
		},
		{
			name: "infeasible",
			problem: &Problem{
				Variables:   []Variable{{ID: "x", Cost: 1}},
				Constraints: []Constraint{{Name: "c", Terms: []Term{{Var: "x", Coef: 1}}, Sense: LessEq, RHS: -1}},
			},
			wantStatus: StatusInfeasible,
		},
		{
			name: "empty row with positive demand",
			problem: &Problem{
				Variables:   []Variable{{ID: "x", Cost: 1}},
				Constraints: []Constraint{{Name: "c", Sense: GreaterEq, RHS: 1}},
			},
			wantStatus: StatusInfeasible,
		},
		{
			name: "unbounded",
			problem: &Problem{
				Variables: []Variable{{ID: "x", Cost: -1}},
			},
			wantStatus: StatusUnbounded,
		},
	}

	solver := NewBranchAndBound()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := solver.Solve(context.Background(), tt.problem)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, sol.Status)
			if tt.wantStatus != StatusOptimal {
				return
			}
			assert.InDelta(t, tt.wantObj, sol.Objective, 1e-9)
			assert.True(t, tt.problem.Feasible(sol.Values))
			for id, v := range tt.want {
				assert.Equal(t, v, sol.Values[id], string(id))
			}
		})
	}
}

func fractionalProblem() *Problem {
	return &Problem{
		Variables:   []Variable{{ID: "x", Cost: 1}, {ID: "y", Cost: 1}},
		Constraints: []Constraint{{Name: "c", Terms: []Term{{Var: "x", Coef: 2}, {Var: "y", Coef: 2}}, Sense: GreaterEq, RHS: 3}},
	}
}

func TestBranchAndBound_NodeLimit(t *testing.T) {
	solver := NewBranchAndBound(WithMaxNodes(1))

	sol, err := solver.Solve(context.Background(), fractionalProblem())
	assert.ErrorIs(t, err, ErrNodeLimit)
	assert.Equal(t, StatusError, sol.Status)
	assert.Equal(t, 1, sol.Nodes)
}

func TestBranchAndBound_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, err := NewBranchAndBound().Solve(ctx, fractionalProblem())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusError, sol.Status)
}

func TestBranchAndBound_InvalidProblem(t *testing.T) {
	p := &Problem{Constraints: []Constraint{{Name: "c", Terms: []Term{{Var: "ghost", Coef: 1}}}}}

	sol, err := NewBranchAndBound().Solve(context.Background(), p)
	assert.Error(t, err)
	assert.Equal(t, StatusError, sol.Status)
}

func TestBranchAndBound_Options(t *testing.T) {
	b := NewBranchAndBound(WithTolerance(1e-8), WithMaxNodes(10))
	assert.Equal(t, 1e-8, b.tol)
	assert.Equal(t, 10, b.maxNodes)

	b = NewBranchAndBound(WithTolerance(-1), WithMaxNodes(0))
	assert.Equal(t, DefaultTolerance, b.tol)
	assert.Equal(t, DefaultMaxNodes, b.maxNodes)
}

func TestPrune(t *testing.T) {
	tests := []struct {
		name      string
		bound     float64
		incumbent float64
		step      float64
		want      bool
	}{
		{name: "bound rounds up to incumbent", bound: 62.691, incumbent: 62.70, step: 0.01, want: true},
		{name: "bound one step below", bound: 62.68, incumbent: 62.70, step: 0.01, want: false},
		{name: "no step strict comparison", bound: 62.691, incumbent: 62.70, step: 0, want: false},
		{name: "no step equal", bound: 5, incumbent: 5, step: 0, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prune(tt.bound, tt.incumbent, tt.step))
		})
	}
}

func TestMostFractional(t *testing.T) {
	assert.Equal(t, -1, mostFractional([]float64{0, 1, 2.0000000001, 16667}))
	assert.Equal(t, 1, mostFractional([]float64{0.1, 2.5, 3.7}))
}

func TestBranchAndBound_IndependentBlocks(t *testing.T) {
	p := &Problem{
		Variables: []Variable{{ID: "a", Cost: 1}, {ID: "b", Cost: 3}, {ID: "idle", Cost: 2}},
		Constraints: []Constraint{
			{Name: "ca", Terms: []Term{{Var: "a", Coef: 2}}, Sense: GreaterEq, RHS: 3},
			{Name: "cb", Terms: []Term{{Var: "b", Coef: 1}}, Sense: GreaterEq, RHS: 2},
		},
		Hint: map[VarID]int64{"a": 2, "b": 2},
	}

	sol, err := NewBranchAndBound().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 8, sol.Objective, 1e-9)
	assert.Equal(t, map[VarID]int64{"a": 2, "b": 2, "idle": 0}, sol.Values)
}

func TestPartition(t *testing.T) {
	p := &Problem{
		Name:          "blocks",
		Variables:     []Variable{{ID: "x"}, {ID: "y"}, {ID: "z"}, {ID: "w"}, {ID: "free"}},
		ObjectiveStep: 0.01,
		Constraints: []Constraint{
			{Name: "zw", Terms: []Term{{Var: "z", Coef: 1}, {Var: "w", Coef: 1}}, Sense: GreaterEq, RHS: 1},
			{Name: "empty", Sense: LessEq, RHS: 1},
			{Name: "xz", Terms: []Term{{Var: "x", Coef: 1}, {Var: "z", Coef: -1}}, Sense: LessEq},
			{Name: "y", Terms: []Term{{Var: "y", Coef: 1}}, Sense: GreaterEq, RHS: 2},
		},
		Hint: map[VarID]int64{"x": 1, "y": 2, "w": 1},
	}

	blocks := partition(p)
	require.Len(t, blocks, 3)

	assert.Equal(t, []Variable{{ID: "x"}, {ID: "z"}, {ID: "w"}}, blocks[0].Variables)
	require.Len(t, blocks[0].Constraints, 2)
	assert.Equal(t, "zw", blocks[0].Constraints[0].Name)
	assert.Equal(t, "xz", blocks[0].Constraints[1].Name)
	assert.Equal(t, map[VarID]int64{"x": 1, "w": 1}, blocks[0].Hint)

	assert.Equal(t, []Variable{{ID: "y"}}, blocks[1].Variables)
	assert.Equal(t, map[VarID]int64{"y": 2}, blocks[1].Hint)

	assert.Equal(t, []Variable{{ID: "free"}}, blocks[2].Variables)
	assert.Empty(t, blocks[2].Constraints)
	assert.Empty(t, blocks[2].Hint)

	for _, b := range blocks {
		assert.Equal(t, "blocks", b.Name)
		assert.Equal(t, 0.01, b.ObjectiveStep)
	}
}

func TestPartition_NilHint(t *testing.T) {
	blocks := partition(fractionalProblem())
	require.Len(t, blocks, 1)
	assert.Nil(t, blocks[0].Hint)
}

func TestRelaxation_SolveShiftsBounds(t *testing.T) {
	p := &Problem{
		Variables: []Variable{{ID: "x", Cost: 1}, {ID: "y", Cost: 2}, {ID: "z", Cost: -1}},
		Constraints: []Constraint{
			{Name: "cover", Terms: []Term{{Var: "x", Coef: 1}, {Var: "y", Coef: 1}}, Sense: GreaterEq, RHS: 10},
		},
	}
	r := newRelaxation(p)

	nd := newNode(3)
	nd.lo[0], nd.hi[0] = 4, 4
	nd.lo[1] = 1
	nd.hi[2] = 3

	x, obj, err := r.solve(nd, DefaultTolerance)
	require.NoError(t, err)
	assert.InDelta(t, 4, x[0], 1e-9)
	assert.InDelta(t, 6, x[1], 1e-9)
	assert.InDelta(t, 3, x[2], 1e-9)
	assert.InDelta(t, 4+12-3, obj, 1e-9)
}

func TestRelaxation_SolveNodeOutcomes(t *testing.T) {
	r := newRelaxation(&Problem{
		Variables:   []Variable{{ID: "x", Cost: 1}, {ID: "y", Cost: -1}},
		Constraints: []Constraint{{Name: "cap", Terms: []Term{{Var: "x", Coef: 1}}, Sense: LessEq, RHS: 2}},
	})

	nd := newNode(2)
	nd.lo[0] = 3
	nd.hi[1] = 5
	_, _, err := r.solve(nd, DefaultTolerance)
	assert.ErrorIs(t, err, lp.ErrInfeasible)

	nd = newNode(2)
	_, _, err = r.solve(nd, DefaultTolerance)
	assert.ErrorIs(t, err, lp.ErrUnbounded)

	nd = newNode(2)
	nd.lo[1], nd.hi[1] = 2, 1
	_, _, err = r.solve(nd, DefaultTolerance)
	assert.ErrorIs(t, err, lp.ErrInfeasible)
}

func TestStandardForm_InitialBasis(t *testing.T) {
	f := standardForm{active: []int{0, 1}, pos: []int{0, 1}, structural: 2}
	width := []float64{math.Inf(1), 4}

	rows := []row{
		{cols: []int{0, 1}, coefs: []float64{2, 1}, sense: GreaterEq, rhs: 6},
		{cols: []int{1}, coefs: []float64{1}, sense: LessEq, rhs: 3},
	}
	assert.Equal(t, []int{0, 3}, f.initialBasis(rows, width, []int{1, 2}))

	// The only candidate column appears in another row.
	assert.Nil(t, f.initialBasis(rows, width, []int{2, 2}))

	// The candidate cannot cover the row within its width.
	rows[0] = row{cols: []int{1}, coefs: []float64{1}, sense: GreaterEq, rhs: 5}
	assert.Nil(t, f.initialBasis(rows, width, []int{0, 1}))

	rows[0].rhs = 0
	assert.Equal(t, []int{2, 3}, f.initialBasis(rows, width, []int{0, 2}))
}

func TestRunSimplex_RejectedBasis(t *testing.T) {
	A := mat.NewDense(1, 2, []float64{1, -1})
	b := []float64{2}
	c := []float64{1, 0}

	// Slack alone gives -2, which is not a feasible start.
	_, _, err := runSimplex(c, A, b, DefaultTolerance, []int{1})
	assert.ErrorIs(t, err, errBasisRejected)

	obj, x, err := runSimplex(c, A, b, DefaultTolerance, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 2, obj, 1e-9)
	assert.InDelta(t, 2, x[0], 1e-9)
}

func TestRelaxation_LimitBounds(t *testing.T) {
	r := newRelaxation(&Problem{
		Variables: []Variable{{ID: "pack", Cost: 4}, {ID: "inside", Cost: 0}, {ID: "loose", Cost: 1}},
		Constraints: []Constraint{
			{Name: "limit", Terms: []Term{{Var: "inside", Coef: 1}, {Var: "pack", Coef: -3}}, Sense: LessEq},
			{Name: "cover", Terms: []Term{{Var: "inside", Coef: 1}, {Var: "loose", Coef: 1}}, Sense: GreaterEq, RHS: 10},
		},
	})
	r.limitBounds(10)

	assert.Equal(t, []float64{2, 6, 10}, r.limits)

	nd := newNode(3)
	assert.False(t, r.beyondLimits(nd))
	nd.lo[1] = 7
	assert.True(t, r.beyondLimits(nd))
}

func TestRelaxation_LimitBoundsWithoutIncumbent(t *testing.T) {
	r := newRelaxation(fractionalProblem())
	r.limitBounds(math.Inf(1))
	assert.True(t, math.IsInf(r.limits[0], 1))

	_, _, ok := r.split(newNode(2))
	assert.False(t, ok)
}

func TestRelaxation_Split(t *testing.T) {
	r := newRelaxation(fractionalProblem())
	r.limits = []float64{3, 9}

	nd := newNode(2)
	nd.lo[1] = 1
	nd.bound = 4.5

	down, up, ok := r.split(nd)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1}, down.lo)
	assert.Equal(t, 5.0, down.hi[1])
	assert.Equal(t, []float64{0, 6}, up.lo)
	assert.Equal(t, 9.0, up.hi[1])
	assert.Equal(t, 4.5, down.bound)
	assert.Equal(t, 4.5, up.bound)
	assert.True(t, math.IsInf(nd.hi[1], 1))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "unbounded", StatusUnbounded.String())
	assert.Equal(t, "error", StatusError.String())
}
