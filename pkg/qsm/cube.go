package qsm

import (
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"
)

// CareDash is the don't-care rune used in a cube's external string form.
const CareDash = '-'

// Cube is a ternary vector over N atom positions: a conjunction of
// literals with don't-cares omitted (spec.md §3). Internally it is a pair
// of bitsets rather than a []byte — values holds the literal's polarity,
// cares marks which positions are not don't-care — which makes equality
// a cheap word-at-a-time comparison instead of a byte compare. Other
// operations read positions one at a time through At.
type Cube struct {
	id     int
	n      uint
	values *bitset.BitSet
	cares  *bitset.BitSet
}

// ID returns the cube's monotonically assigned id. 0 means "no cube"
// (spec.md §3); real cubes never have id 0.
func (c *Cube) ID() int { return c.id }

// N returns the cube's length (the number of atom positions).
func (c *Cube) N() uint { return c.n }

// At returns '0', '1' or '-' for position i.
func (c *Cube) At(i uint) byte {
	if !c.cares.Test(i) {
		return CareDash
	}
	if c.values.Test(i) {
		return '1'
	}
	return '0'
}

// String renders the cube in PLA/DIMACS-adjacent {0,1,-} form.
func (c *Cube) String() string {
	buf := make([]byte, c.n)
	for i := uint(0); i < c.n; i++ {
		buf[i] = c.At(i)
	}
	return string(buf)
}

// Len is the number of care positions, i.e. a PI cube's cost.
func (c *Cube) Len() int { return int(c.cares.Count()) }

// Care returns the ordered list of signed literals (±(i+1)) for every
// care position, per spec.md §3.
func (c *Cube) Care() []int {
	out := make([]int, 0, c.cares.Count())
	for i, ok := c.cares.NextSet(0); ok; i, ok = c.cares.NextSet(i + 1) {
		if c.values.Test(i) {
			out = append(out, int(i)+1)
		} else {
			out = append(out, -(int(i) + 1))
		}
	}
	return out
}

// CareNeg returns the clause ruling this cube out: the negation of Care.
func (c *Cube) CareNeg() []int {
	care := c.Care()
	neg := make([]int, len(care))
	for i, l := range care {
		neg[i] = -l
	}
	return neg
}

// Equal reports whether two cubes have identical ternary vectors,
// ignoring id (spec.md §3).
func (c *Cube) Equal(o *Cube) bool {
	return c.n == o.n && c.values.Equal(o.values) && c.cares.Equal(o.cares)
}

// hashKey returns a content hash of the ternary vector, used by
// CubeFactory to dedupe the input reachable-state set in O(1) amortized
// time instead of an O(n) string/bitset compare per candidate.
func (c *Cube) hashKey() [32]byte {
	buf := make([]byte, c.n+1)
	buf[0] = byte(c.n)
	for i := uint(0); i < c.n; i++ {
		buf[i+1] = c.At(i)
	}
	return blake2b.Sum256(buf)
}

// CubeFactory owns the monotonic cube-id counter (spec.md §9: "re-
// architect as a counter owned by a CubeFactory object ... lifecycle =
// per-run") and the content-hash index used to drop duplicate input
// cubes on insertion (spec.md §3, "Cube set (input R)").
type CubeFactory struct {
	n      uint
	nextID int
	seen   map[[32]byte][]*Cube
}

// NewCubeFactory creates a factory for N-long cubes whose ids start at
// firstID (id 0 is reserved, so firstID must be >= 1).
func NewCubeFactory(n uint, firstID int) *CubeFactory {
	return &CubeFactory{n: n, nextID: firstID, seen: make(map[[32]byte][]*Cube)}
}

// fromBytes builds a cube's bitsets from a {0,1,-} byte string of length n.
func (f *CubeFactory) fromBytes(lits []byte) (*bitset.BitSet, *bitset.BitSet) {
	values := bitset.New(f.n)
	cares := bitset.New(f.n)
	for i, b := range lits {
		switch b {
		case '1':
			cares.Set(uint(i))
			values.Set(uint(i))
		case '0':
			cares.Set(uint(i))
		}
	}
	return values, cares
}

// New always mints a cube with a fresh id, even if an identical ternary
// vector was seen before. Used for PI-enumeration results and orbit
// members, where every cube is a newly-discovered object (spec.md §4.3).
func (f *CubeFactory) New(lits []byte) *Cube {
	values, cares := f.fromBytes(lits)
	c := &Cube{id: f.nextID, n: f.n, values: values, cares: cares}
	f.nextID++
	return c
}

// Intern returns the existing cube equal to lits if one was already
// interned, otherwise mints and records a new one. Used to build the
// deduplicated input reachable-state set (spec.md §3: "Duplicates dropped
// on insertion").
func (f *CubeFactory) Intern(lits []byte) (cube *Cube, isNew bool) {
	values, cares := f.fromBytes(lits)
	probe := &Cube{n: f.n, values: values, cares: cares}
	key := probe.hashKey()
	for _, c := range f.seen[key] {
		if c.Equal(probe) {
			return c, false
		}
	}
	probe.id = f.nextID
	f.nextID++
	f.seen[key] = append(f.seen[key], probe)
	return probe, true
}

// NextID previews the id the next New/Intern call would assign.
func (f *CubeFactory) NextID() int { return f.nextID }
