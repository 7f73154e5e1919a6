package qsm

import "github.com/gitrdm/goqsm/internal/satsolver"

// CoverTable is the incremental SAT instance the minimizer queries to
// decide whether a set of activated PI classes covers the full input-cube
// set (spec.md §4.4, grounded on original_source/py-qsm/sat_encodings.py's
// CoverTable). One SAT variable per PIClass, numbered by its own ID (the
// representative cube's id, assigned from the same factory as every
// input cube, so all ids are distinct). For each input cube r, one clause
// asserts "at least one class covering r is activated" -- the classic
// unate-covering encoding of a prime-implicant chart.
type CoverTable struct {
	sol      satsolver.Solver
	classes  map[int]*PIClass // keyed by PIClass.ID
	cubes    []*Cube          // the input R-cube set, in original order
	coverage map[int]map[int]bool // classID -> set of covered cube IDs
}

// NewCoverTable builds one covering clause per input cube: the
// disjunction of every PIClass (by any orbit member) that covers it.
func NewCoverTable(sol satsolver.Solver, classes []*PIClass, cubes []*Cube) *CoverTable {
	ct := &CoverTable{
		sol:      sol,
		classes:  make(map[int]*PIClass, len(classes)),
		cubes:    cubes,
		coverage: make(map[int]map[int]bool, len(classes)),
	}
	for _, pc := range classes {
		ct.classes[pc.ID] = pc
		ct.coverage[pc.ID] = make(map[int]bool)
	}

	for _, cube := range cubes {
		var clause []int
		for _, pc := range classes {
			if classCovers(pc, cube) {
				clause = append(clause, pc.ID)
				ct.coverage[pc.ID][cube.ID()] = true
			}
		}
		sol.AddClause(clause...)
	}
	return ct
}

// classCovers reports whether any member of pc's orbit covers cube.
func classCovers(pc *PIClass, cube *Cube) bool {
	for _, member := range pc.EqClass {
		if cubeSatisfies(cube, member) {
			return true
		}
	}
	return false
}

// cubeSatisfies reports whether cube's literals agree with pi wherever pi
// cares, i.e. pi covers cube.
func cubeSatisfies(cube, pi *Cube) bool {
	if cube.N() != pi.N() {
		return false
	}
	for i := uint(0); i < pi.N(); i++ {
		pv := pi.At(i)
		if pv == CareDash {
			continue
		}
		if cube.At(i) != pv {
			return false
		}
	}
	return true
}

// IsCovered reports whether the clause database is satisfiable under the
// given assumptions: activated should include a positive literal for
// every class considered chosen and a negative literal for every class
// not yet chosen, so the check reflects exactly "this set of classes, and
// nothing else, covers every input cube" (spec.md §4.4).
func (ct *CoverTable) IsCovered(activated []int) bool {
	return ct.sol.Solve(activated...)
}

// Propagate performs unit propagation under the given assumed class
// literals and returns whatever the SAT oracle forces, sound regardless
// of backend completeness (spec.md §4.4/§5).
func (ct *CoverTable) Propagate(assumed []int) (bool, []int) {
	return ct.sol.Propagate(assumed...)
}

// RootEssentials returns the set of PIClass ids that Propagate forces true
// with no assumptions at all: classes that are the sole coverer of some
// input cube's clause before any decision is made (spec.md §4.4, "root
// essentials").
func (ct *CoverTable) RootEssentials() []int {
	ok, forced := ct.Propagate(nil)
	if !ok {
		return nil
	}
	return ct.filterClassLiterals(forced)
}

// ConditionalEssentials returns the class ids Propagate forces true once
// decided (a mix of positive activations and negative exclusions) is
// assumed, restricted to ids not already present in decided (spec.md
// §4.4/§4.5, "conditional essentials": excluding alternatives can force
// the last remaining coverer of a cube).
func (ct *CoverTable) ConditionalEssentials(decided []int) []int {
	ok, forced := ct.Propagate(decided)
	if !ok {
		return nil
	}
	already := make(map[int]bool, len(decided))
	for _, d := range decided {
		already[abs(d)] = true
	}
	var out []int
	for _, id := range ct.filterClassLiterals(forced) {
		if !already[id] {
			out = append(out, id)
		}
	}
	return out
}

func (ct *CoverTable) filterClassLiterals(forced []int) []int {
	var out []int
	for _, lit := range forced {
		if lit > 0 {
			if _, known := ct.classes[lit]; known {
				out = append(out, lit)
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CoverageOf returns the number of input cubes class covers, precomputed
// when the clause database was built (spec.md §4.4).
func (ct *CoverTable) CoverageOf(class *PIClass) int {
	return len(ct.coverage[class.ID])
}

// CompareSolutions reports whether two equal-cost candidate covers are
// literal-set identical, merging py-qsm's analyze_solutions/
// compare_solutions into one call since the core never needs the
// intermediate per-class literal-set analysis on its own (spec.md §9).
func CompareSolutions(a, b []*PIClass) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]bool, len(a))
	for _, pc := range a {
		set[pc.ID] = true
	}
	for _, pc := range b {
		if !set[pc.ID] {
			return false
		}
	}
	return true
}
