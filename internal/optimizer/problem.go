// Package optimizer prices a laundry order at minimum cost. It translates a
// catalog and an order into an integer program, hands it to a Solver and turns
// the assignment back into an auditable breakdown.
package optimizer

import (
	"fmt"
	"math"

	"github.com/guttosm/laundry-service/internal/domain/model"
)

// VarID identifies a decision variable.
type VarID string

const (
	mixedPackPrefix   = "mixed_pack:"
	mixedShirtsPrefix = "mixed_shirts:"
	shirtPackPrefix   = "shirt_pack:"
	linenPackPrefix   = "linen_pack:"
	loosePrefix       = "loose:"
)

// MixedPackVar is the number of mixed packs bought with the given id.
func MixedPackVar(id string) VarID { return VarID(mixedPackPrefix + id) }

// MixedShirtsVar is the number of shirts placed in the mixed packs with the given id.
func MixedShirtsVar(id string) VarID { return VarID(mixedShirtsPrefix + id) }

// ShirtPackVar is the number of shirt packs bought with the given id.
func ShirtPackVar(id string) VarID { return VarID(shirtPackPrefix + id) }

// LinenPackVar is the number of linen packs bought with the given id.
func LinenPackVar(id string) VarID { return VarID(linenPackPrefix + id) }

// LooseVar is the number of units of a category bought at the loose unit price.
func LooseVar(c model.Category) VarID { return VarID(loosePrefix + string(c)) }

// Variable is a non-negative integer decision variable with its objective coefficient.
type Variable struct {
	ID   VarID
	Cost float64
}

// Sense is the direction of a linear constraint.
type Sense int

const (
	// GreaterEq constrains the left-hand side to be at least the right-hand side.
	GreaterEq Sense = iota
	// LessEq constrains the left-hand side to be at most the right-hand side.
	LessEq
)

func (s Sense) String() string {
	if s == LessEq {
		return "<="
	}
	return ">="
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  VarID
	Coef float64
}

// Constraint is a linear inequality over decision variables.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Satisfied reports whether the assignment satisfies the constraint.
// Unassigned variables count as zero.
func (c Constraint) Satisfied(values map[VarID]int64) bool {
	lhs := 0.0
	for _, t := range c.Terms {
		lhs += t.Coef * float64(values[t.Var])
	}
	slack := feasibilityTol * math.Max(1, math.Abs(c.RHS))
	if c.Sense == LessEq {
		return lhs <= c.RHS+slack
	}
	return lhs >= c.RHS-slack
}

const feasibilityTol = 1e-9

// Problem is a minimization integer program over non-negative integer variables.
type Problem struct {
	Name        string
	Variables   []Variable
	Constraints []Constraint
	// Hint is a known feasible assignment. Solvers may use it as a starting incumbent.
	Hint map[VarID]int64
	// ObjectiveStep is a value every feasible objective is a multiple of,
	// or zero when no such value is known.
	ObjectiveStep float64
}

// Objective evaluates the objective for an assignment.
func (p *Problem) Objective(values map[VarID]int64) float64 {
	total := 0.0
	for _, v := range p.Variables {
		total += v.Cost * float64(values[v.ID])
	}
	return total
}

// Feasible reports whether an assignment is non-negative and satisfies every constraint.
func (p *Problem) Feasible(values map[VarID]int64) bool {
	for _, v := range p.Variables {
		if values[v.ID] < 0 {
			return false
		}
	}
	for _, c := range p.Constraints {
		if !c.Satisfied(values) {
			return false
		}
	}
	return true
}

// Validate checks that every constraint and hint references a declared variable.
func (p *Problem) Validate() error {
	declared := make(map[VarID]bool, len(p.Variables))
	for _, v := range p.Variables {
		if declared[v.ID] {
			return fmt.Errorf("problem %s: duplicate variable %s", p.Name, v.ID)
		}
		declared[v.ID] = true
	}
	for _, c := range p.Constraints {
		for _, t := range c.Terms {
			if !declared[t.Var] {
				return fmt.Errorf("problem %s: constraint %s references undeclared variable %s", p.Name, c.Name, t.Var)
			}
		}
	}
	for id := range p.Hint {
		if !declared[id] {
			return fmt.Errorf("problem %s: hint references undeclared variable %s", p.Name, id)
		}
	}
	return nil
}
