package optimizer

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// errBasisRejected is returned when the simplex method refuses a starting basis.
var errBasisRejected = errors.New("simplex rejected the starting basis")

// standardForm turns node rows into the equality form lp.Simplex expects:
// one slack column per row after the active structural columns.
type standardForm struct {
	costs      []float64
	active     []int
	pos        []int
	structural int
}

// solve returns the values of the active columns and their objective. It first
// starts from a constructed feasible basis on row-scaled input, then lets the
// simplex method find its own basis, scaled and unscaled, until one attempt
// produces a definite answer.
func (f standardForm) solve(rows []row, width []float64, inRows []int, tol float64) ([]float64, float64, error) {
	type attempt struct {
		scaled bool
		basis  []int
	}
	attempts := make([]attempt, 0, 3)
	if basis := f.initialBasis(rows, width, inRows); basis != nil {
		attempts = append(attempts, attempt{scaled: true, basis: basis})
	}
	attempts = append(attempts, attempt{scaled: true}, attempt{scaled: false})

	var err error
	for _, a := range attempts {
		c, A, b := f.build(rows, a.scaled)
		var obj float64
		var x []float64
		obj, x, err = runSimplex(c, A, b, tol, a.basis)
		switch {
		case err == nil:
			return x[:len(f.active)], obj, nil
		case errors.Is(err, lp.ErrInfeasible), errors.Is(err, lp.ErrUnbounded):
			return nil, 0, err
		}
	}
	return nil, 0, err
}

func (f standardForm) build(rows []row, scaled bool) ([]float64, *mat.Dense, []float64) {
	m, na := len(rows), len(f.active)
	n := na + m
	c := make([]float64, n)
	for k, j := range f.active {
		c[k] = f.costs[j]
	}
	A := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	for i, rw := range rows {
		scale := 1.0
		if scaled {
			top := 0.0
			for _, a := range rw.coefs {
				top = math.Max(top, math.Abs(a))
			}
			if top > 0 {
				scale = 1 / top
			}
		}
		for k, j := range rw.cols {
			A.Set(i, f.pos[j], rw.coefs[k]*scale)
		}
		if rw.sense == GreaterEq {
			A.Set(i, na+i, -1)
		} else {
			A.Set(i, na+i, 1)
		}
		b[i] = rw.rhs * scale
	}
	return c, A, b
}

// initialBasis builds a primal feasible basis when every row has an obvious
// basic column: the slack of a row already satisfied at zero, or else a column
// that appears in no other structural row and covers the row within its width.
// It returns nil when some row has no such column.
func (f standardForm) initialBasis(rows []row, width []float64, inRows []int) []int {
	na := len(f.active)
	basis := make([]int, len(rows))
	for i, rw := range rows {
		if rw.sense == LessEq || rw.rhs == 0 {
			basis[i] = na + i
			continue
		}
		if i >= f.structural {
			return nil
		}
		basis[i] = -1
		for k, j := range rw.cols {
			a := rw.coefs[k]
			if a > 0 && inRows[j] == 1 && rw.rhs/a <= width[j] {
				basis[i] = f.pos[j]
				break
			}
		}
		if basis[i] < 0 {
			return nil
		}
	}
	return basis
}

// runSimplex calls lp.Simplex and turns its panics on a bad starting basis
// into an error.
func runSimplex(c []float64, A mat.Matrix, b []float64, tol float64, basis []int) (obj float64, x []float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			obj, x, err = 0, nil, fmt.Errorf("%w: %v", errBasisRejected, p)
		}
	}()
	return lp.Simplex(c, A, b, tol, basis)
}
