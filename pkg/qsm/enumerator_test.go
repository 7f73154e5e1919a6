package qsm

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goqsm/internal/satsolver"
)

// TestEnumerateAllTwoAtomXOR checks the textbook two-variable case: the
// reachable-state (on-)set is {a XOR b}, i.e. input cubes "10" and "01".
// The off-set's prime implicants are exactly a&b ("11") and ~a&~b ("00"),
// both cost 2; no cost-0 or cost-1 candidate survives because every
// single literal trivially covers one of the two reachable cubes.
func TestEnumerateAllTwoAtomXOR(t *testing.T) {
	sig := NewSignature(nil, map[string]map[string]struct{}{}, map[string][]string{})
	atoms := []Atom{{Pred: "a"}, {Pred: "b"}}

	sol := satsolver.NewBruteForce(1)
	sym, err := BuildSymmetry(sig, atoms, false)
	require.NoError(t, err)

	factory := NewCubeFactory(2, 1)
	in10, _ := factory.Intern([]byte("10"))
	in01, _ := factory.Intern([]byte("01"))

	enum := NewEnumerator(sol, sym, 2, []*Cube{in10, in01}, zerolog.Nop())
	classes := enum.EnumerateAll(factory, atoms)

	got := map[string]int{}
	for _, pc := range classes {
		got[pc.Repr.String()] = pc.Cost
	}
	assert.Equal(t, map[string]int{"11": 2, "00": 2}, got)
}
