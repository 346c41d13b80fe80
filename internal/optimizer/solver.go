package optimizer

import (
	"context"
	"fmt"
)

// Status is the outcome reported by a Solver.
type Status int

const (
	// StatusOptimal means Values holds an optimal assignment of every variable.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the objective can decrease without limit.
	StatusUnbounded
	// StatusError means the solver stopped without a conclusion.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}

// Solution is a solver's answer to a Problem.
type Solution struct {
	Status    Status
	Values    map[VarID]int64
	Objective float64
	// Nodes is the number of subproblems the solver examined.
	Nodes int
}

// Solver solves integer programs. Implementations must be safe for concurrent use.
//
// A returned error always comes with StatusError. Infeasible and unbounded
// problems are reported through Status with a nil error.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}

// SolverFailureError reports a solve that did not reach an optimal assignment.
// With a valid catalog this indicates a defect, so it is never retried.
type SolverFailureError struct {
	Status Status
	Err    error
}

func (e *SolverFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solver failed with status %s: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("solver failed with status %s", e.Status)
}

func (e *SolverFailureError) Unwrap() error {
	return e.Err
}
