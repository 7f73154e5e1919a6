// Package satsolver wraps a concrete SAT backend behind a minimal trait:
// NewVar, AddClause, Solve(assumptions), Model, Propagate(assumptions),
// Clauses and NumVars. The cardinality constraint is the free function
// Cardinality, built on that trait, not a method of it. pkg/qsm talks only
// to this interface; GiniSolver is the production backend (gini is the
// only SAT library the retrieved example pack surfaces, vendored in
// other_examples as github.com/irifrance/gini/logic/c.go) and BruteForce
// is a dependency-free reference backend for tests.
//
// Variables are plain positive ints, assigned by callers (the dual-rail
// encoder fixes p_i/n_i numbers, the cover table fixes pids) or minted
// fresh via NewVar. A literal is a variable, or its negation (-v).
package satsolver

// Solver is the minimal SAT trait pkg/qsm depends on.
type Solver interface {
	// NewVar allocates and returns a fresh variable strictly greater
	// than every variable used so far, including ones referenced only
	// in clauses added via AddClause.
	NewVar() int

	// AddClause asserts the disjunction of lits as a permanent clause.
	AddClause(lits ...int)

	// Solve decides satisfiability of the clause database under the
	// given unit assumptions.
	Solve(assumptions ...int) bool

	// Model returns the last satisfying assignment found by Solve, as
	// a slice of signed literals (one per known variable). Behavior is
	// undefined if the last Solve call returned false.
	Model() []int

	// Propagate performs unit propagation under assumptions without a
	// full search. It returns false if propagation derives a conflict; the
	// literal slice is then backend-dependent (BruteForce returns nil). On
	// success it returns every literal forced true.
	Propagate(assumptions ...int) (bool, []int)

	// Clauses returns every clause asserted so far via AddClause, in
	// assertion order, for debugging dumps (e.g. -print-dimacs). Every
	// clause in this package's instances originates from this package's
	// own AddClause calls, so the returned set is the complete instance,
	// not a partial view into backend-internal clauses.
	Clauses() [][]int

	// NumVars returns the highest variable number seen so far, whether
	// minted by NewVar or referenced directly in a clause or assumption.
	NumVars() int
}

// Cardinality builds a totalizer-equivalent cardinality network over lits
// (a "sequential counter" ladder, Sinz-style, specialized to emit one
// threshold literal per level rather than a single fixed bound) and
// returns rhs, where rhs[b] is true in exactly the models where at most b
// of lits are true, for b = 0..ubound. When ubound >= len(lits),
// rhs[ubound] is the literal pinned true by a unit clause, since that
// bound can never be exceeded.
//
// gini/logic.C.CardSort builds the same kind of network as circuit gates
// with their own internally-numbered variables; it is not used here
// because those variables would need remapping to coexist with the
// dual-rail numbering the cover encoder fixes ahead of time (spec.md
// §4.3 assigns p_i/n_i before the cardinality constraint exists). Working
// directly in the solver's flat variable space avoids that remap.
func Cardinality(s Solver, lits []int, ubound int) []int {
	n := len(lits)
	if ubound > n {
		ubound = n
	}
	trueLit := s.NewVar()
	s.AddClause(trueLit)
	falseLit := -trueLit

	at := func(reg map[int]int, j int) int {
		if v, ok := reg[j]; ok {
			return v
		}
		return falseLit
	}

	// reg[j] = "at least j of the literals processed so far are true",
	// rebuilt incrementally as each input literal is folded in.
	reg := map[int]int{0: trueLit}
	for i := 0; i < n; i++ {
		x := lits[i]
		next := map[int]int{0: trueLit}
		maxJ := i + 1
		if maxJ > ubound+1 {
			maxJ = ubound + 1
		}
		for j := 1; j <= maxJ; j++ {
			term1 := at(reg, j)
			term2 := andGate(s, x, at(reg, j-1))
			next[j] = orGate(s, term1, term2)
		}
		reg = next
	}

	rhs := make([]int, ubound+1)
	for b := 0; b <= ubound; b++ {
		atLeastBPlus1 := at(reg, b+1)
		rhs[b] = -atLeastBPlus1
	}
	return rhs
}

// andGate returns a literal g Tseitin-equivalent to (a AND b).
func andGate(s Solver, a, b int) int {
	if a == b {
		return a
	}
	g := s.NewVar()
	s.AddClause(-g, a)
	s.AddClause(-g, b)
	s.AddClause(g, -a, -b)
	return g
}

// orGate returns a literal g Tseitin-equivalent to (a OR b).
func orGate(s Solver, a, b int) int {
	if a == b {
		return a
	}
	g := s.NewVar()
	s.AddClause(a, b, -g)
	s.AddClause(-a, g)
	s.AddClause(-b, g)
	return g
}
