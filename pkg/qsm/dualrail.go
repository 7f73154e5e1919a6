package qsm

import "github.com/gitrdm/goqsm/internal/satsolver"

// DualRail maintains the dual-rail SAT encoding of an N-atom PI search
// (spec.md §4.3): two SAT variables per atom position, p_i asserting
// atom_i is a positive literal of the candidate cube and n_i asserting a
// negative literal, with p_i and n_i mutually exclusive so "neither" means
// "don't care". Variable numbers are fixed up front so a later
// cardinality constraint (see satsolver.Cardinality) can be layered on
// top without renumbering.
type DualRail struct {
	solver satsolver.Solver
	n      uint
	p      []int // p[i] = SAT var for atom i positive
	neg    []int // neg[i] = SAT var for atom i negative
}

// NewDualRail allocates the 2n dual-rail variables on s and asserts their
// pairwise mutual exclusion.
func NewDualRail(s satsolver.Solver, n uint) *DualRail {
	d := &DualRail{solver: s, n: n, p: make([]int, n), neg: make([]int, n)}
	for i := uint(0); i < n; i++ {
		d.p[i] = s.NewVar()
		d.neg[i] = s.NewVar()
		s.AddClause(-d.p[i], -d.neg[i])
	}
	return d
}

// N is the number of atom positions encoded.
func (d *DualRail) N() uint { return d.n }

// PosVar/NegVar expose the raw SAT variables, needed by the cardinality
// constraint builder and by test assertions on the encoding.
func (d *DualRail) PosVar(i uint) int { return d.p[i] }
func (d *DualRail) NegVar(i uint) int { return d.neg[i] }

// Literals returns p_0,n_0,p_1,n_1,...,p_{n-1},n_{n-1} for building a
// cardinality constraint over "number of care positions" (spec.md §4.3:
// "minimum literal count first").
func (d *DualRail) Literals() []int {
	out := make([]int, 0, 2*d.n)
	for i := uint(0); i < d.n; i++ {
		out = append(out, d.p[i], d.neg[i])
	}
	return out
}

// ExcludeInputCube adds the clause ruling out cube as a candidate PI by
// requiring at least one of its literals to disagree with the polarity
// encoded on the dual rail, i.e. the candidate must NOT be entailed by
// cube alone. For a reachable-state cube r with literal l_i at position
// i, "the candidate cube does not cover r" means some p_i/n_i fires with
// the opposite sign of l_i's complement -- concretely: for each
// don't-care-free position i of r with value v, add the unit-style
// disjunct (v=1 -> n_i, v=0 -> p_i) into one clause (spec.md §4.3, "the
// off-set clauses").
func (d *DualRail) ExcludeInputCube(cube *Cube) {
	lits := make([]int, 0, cube.Len())
	for i := uint(0); i < d.n; i++ {
		switch cube.At(i) {
		case '1':
			lits = append(lits, d.neg[i])
		case '0':
			lits = append(lits, d.p[i])
		}
	}
	d.solver.AddClause(lits...)
}

// BlockCube forbids the search from returning exactly cube again, used
// both to move past an already-discovered PI and, with orbit members, to
// block an entire symmetry orbit in one shot (spec.md §4.3's "for each
// care position add the opposite-polarity dual-rail literal"). Don't-care
// positions contribute nothing to the clause -- adding a literal for them
// would let any specialization of cube trivially satisfy the clause and
// resurface as a spurious, non-minimal PI class at a larger bound,
// matching ExcludeInputCube's pattern of only ever touching care
// positions.
func (d *DualRail) BlockCube(cube *Cube) {
	lits := make([]int, 0, cube.Len())
	for i := uint(0); i < d.n; i++ {
		switch cube.At(i) {
		case '1':
			lits = append(lits, -d.p[i])
		case '0':
			lits = append(lits, -d.neg[i])
		}
	}
	d.solver.AddClause(lits...)
}

// DecodeModel reads a satisfying assignment back into a {0,1,-} byte
// cube. model is the full literal list returned by Solver.Model.
func (d *DualRail) DecodeModel(model []int) []byte {
	set := make(map[int]bool, len(model))
	for _, l := range model {
		if l > 0 {
			set[l] = true
		} else {
			set[-l] = false
		}
	}
	out := make([]byte, d.n)
	for i := uint(0); i < d.n; i++ {
		switch {
		case set[d.p[i]]:
			out[i] = '1'
		case set[d.neg[i]]:
			out[i] = '0'
		default:
			out[i] = CareDash
		}
	}
	return out
}
