package satsolver

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// GiniSolver implements Solver over a github.com/irifrance/gini instance.
// Gini stands in for both the "CaDiCaL-class" all-SAT engine the PI
// enumerator wants and the "Glucose-class" incremental/propagating engine
// the cover table wants (spec.md §5) — it is the one concrete SAT library
// surfaced anywhere in the retrieved example pack.
type GiniSolver struct {
	g       *gini.Gini
	next    int // next variable NewVar will hand out
	maxVar  int // highest variable number seen by AddClause/NewVar
	clauses [][]int
}

// NewGiniSolver creates a solver whose NewVar calls start at startVar.
// Callers that fix their own variable numbering ahead of time (dual-rail
// p_i/n_i, cover-table pids) pass one past their highest fixed number.
func NewGiniSolver(startVar int) *GiniSolver {
	return &GiniSolver{g: gini.New(), next: startVar, maxVar: startVar - 1}
}

func litOf(v int) z.Lit {
	if v > 0 {
		return z.Var(v).Pos()
	}
	return z.Var(-v).Neg()
}

func (s *GiniSolver) track(v int) {
	if v < 0 {
		v = -v
	}
	if v > s.maxVar {
		s.maxVar = v
	}
}

// NewVar implements Solver.
func (s *GiniSolver) NewVar() int {
	v := s.next
	if v <= s.maxVar {
		v = s.maxVar + 1
	}
	s.next = v + 1
	s.track(v)
	return v
}

// AddClause implements Solver.
func (s *GiniSolver) AddClause(lits ...int) {
	cl := append([]int(nil), lits...)
	for _, l := range cl {
		s.track(l)
		s.g.Add(litOf(l))
	}
	s.g.Add(0)
	s.clauses = append(s.clauses, cl)
}

// Clauses implements Solver. Every clause here was asserted by this
// package's own AddClause calls -- gini never injects extra top-level
// clauses on its own -- so this is the complete instance, not a partial
// view into gini's internals.
func (s *GiniSolver) Clauses() [][]int { return s.clauses }

// NumVars implements Solver.
func (s *GiniSolver) NumVars() int { return s.maxVar }

// Solve implements Solver.
func (s *GiniSolver) Solve(assumptions ...int) bool {
	ms := make([]z.Lit, len(assumptions))
	for i, a := range assumptions {
		s.track(a)
		ms[i] = litOf(a)
	}
	s.g.Assume(ms...)
	return s.g.Solve() == 1
}

// Model implements Solver.
func (s *GiniSolver) Model() []int {
	out := make([]int, 0, s.maxVar)
	for v := 1; v <= s.maxVar; v++ {
		lit := z.Var(v).Pos()
		if s.g.Value(lit) {
			out = append(out, v)
		} else {
			out = append(out, -v)
		}
	}
	return out
}

// Propagate implements Solver, delegating to Gini's unit-propagation
// primitive (Test). Assumptions are pushed first; the returned literals
// are whatever Test forced, translated back to our signed-int convention.
func (s *GiniSolver) Propagate(assumptions ...int) (bool, []int) {
	ms := make([]z.Lit, len(assumptions))
	for i, a := range assumptions {
		s.track(a)
		ms[i] = litOf(a)
	}
	s.g.Assume(ms...)
	res, forced := s.g.Test(nil)
	out := make([]int, 0, len(forced))
	for _, m := range forced {
		v := int(m.Var())
		if m.IsPos() {
			out = append(out, v)
		} else {
			out = append(out, -v)
		}
	}
	return res != -1, out
}
