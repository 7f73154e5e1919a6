package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

func TestResolvePredicateSuffixExactMatch(t *testing.T) {
	got, ok := ResolvePredicateSuffix([]string{"le", "member"}, "le")
	assert.True(t, ok)
	assert.Equal(t, "le", got)
}

func TestResolvePredicateSuffixDottedSuffixMatch(t *testing.T) {
	got, ok := ResolvePredicateSuffix([]string{"le", "member"}, "round.le")
	assert.True(t, ok)
	assert.Equal(t, "le", got)
}

func TestResolvePredicateSuffixNoMatch(t *testing.T) {
	_, ok := ResolvePredicateSuffix([]string{"le"}, "gt")
	assert.False(t, ok)
}

func TestStripMembersWithMembersTrueKeepsAll(t *testing.T) {
	atoms := []qsm.Atom{{Pred: "le"}, {Pred: "member"}}
	out := StripMembers(atoms, map[string]struct{}{"member": {}}, true)
	assert.Equal(t, atoms, out)
}

func TestStripMembersWithMembersFalseDropsMemberAtoms(t *testing.T) {
	atoms := []qsm.Atom{{Pred: "le"}, {Pred: "member"}, {Pred: "member"}}
	out := StripMembers(atoms, map[string]struct{}{"member": {}}, false)
	assert.Len(t, out, 1)
	assert.Equal(t, "le", out[0].Pred)
}
