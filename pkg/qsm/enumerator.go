package qsm

import (
	"github.com/gitrdm/goqsm/internal/satsolver"
	"github.com/rs/zerolog"
)

// Enumerator finds all prime implicants of the off-set of a reachable-
// state cube set, grouped into PIClasses by the domain-symmetry group
// (spec.md §4.3, grounded on original_source/py-qsm/sat_encodings.py's
// DualEncoder and prime_implicants.py's PIClass).
type Enumerator struct {
	rail *DualRail
	sym  *Symmetry
	sol  satsolver.Solver
	log  zerolog.Logger

	n uint
}

// NewEnumerator wires a dual-rail encoding for n atoms over solver sol,
// asserting the off-set exclusion clause for every cube in inputCubes and
// preparing (but not yet solving under) a minimum-literal-count search.
func NewEnumerator(sol satsolver.Solver, sym *Symmetry, n uint, inputCubes []*Cube, log zerolog.Logger) *Enumerator {
	rail := NewDualRail(sol, n)
	for _, c := range inputCubes {
		rail.ExcludeInputCube(c)
	}
	return &Enumerator{rail: rail, sym: sym, sol: sol, n: n, log: log}
}

// EnumerateAll runs the minimum-literal-count-first search to completion,
// returning one PIClass per discovered orbit, in discovery order (spec.md
// §4.3: "enumeration proceeds by increasing literal count").
func (e *Enumerator) EnumerateAll(factory *CubeFactory, atoms []Atom) []*PIClass {
	var classes []*PIClass
	lits := e.rail.Literals()

	for bound := 0; bound <= int(2*e.n); bound++ {
		// A fresh cardinality network is built per bound rather than
		// reused incrementally; simpler, and clause counts stay small at
		// the atom counts this package targets.
		rhs := satsolver.Cardinality(e.sol, lits, bound)
		atMostBound := rhs[bound]

		for {
			if !e.sol.Solve(atMostBound) {
				break
			}
			model := e.rail.DecodeModel(e.sol.Model())
			pi := factory.New(model)
			pc := NewPIClass(pi, atoms)

			orbit := e.sym.Orbit(model)
			for _, variant := range orbit[1:] {
				member := factory.New(variant)
				pc.AddEquivalent(member)
			}
			for _, member := range pc.EqClass {
				e.rail.BlockCube(member)
			}

			e.log.Debug().Str("pi", pi.String()).Int("orbit_size", pc.Size()).Msg("discovered prime implicant class")
			classes = append(classes, pc)
		}
	}
	return classes
}
