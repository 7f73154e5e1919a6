package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProtocolGroundsRelations(t *testing.T) {
	src := `type node = { a, b }
relation le(node, node)
`
	spec, err := ParseProtocol(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"node"}, spec.Sig.Sorts)
	assert.Equal(t, []string{"a", "b"}, spec.Sig.SortElements["node"])

	got := make(map[string]bool, len(spec.Atoms))
	for _, a := range spec.Atoms {
		got[a.String()] = true
	}
	assert.Len(t, spec.Atoms, 4)
	assert.True(t, got["le(a,a)"])
	assert.True(t, got["le(a,b)"])
	assert.True(t, got["le(b,a)"])
	assert.True(t, got["le(b,b)"])
}

func TestParseProtocolFoldsIndividualToNullaryAtom(t *testing.T) {
	src := "individual leader : node\n"
	spec, err := ParseProtocol(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, spec.Atoms, 1)
	assert.Equal(t, "leader", spec.Atoms[0].String())
}

func TestParseProtocolFoldsFunctionToRelationWithResultSort(t *testing.T) {
	src := `type node = { a, b }
function next(node) : node
`
	spec, err := ParseProtocol(strings.NewReader(src))
	require.NoError(t, err)
	got := make(map[string]bool, len(spec.Atoms))
	for _, a := range spec.Atoms {
		got[a.String()] = true
	}
	assert.True(t, got["next(a,a)"])
	assert.True(t, got["next(a,b)"])
	assert.True(t, got["next(b,a)"])
	assert.True(t, got["next(b,b)"])
}

func TestParseProtocolRejectsUndeclaredSort(t *testing.T) {
	_, err := ParseProtocol(strings.NewReader("relation le(node, node)\n"))
	require.Error(t, err)
}

func TestParseProtocolRejectsUnknownDeclaration(t *testing.T) {
	_, err := ParseProtocol(strings.NewReader("garbage line\n"))
	require.Error(t, err)
}
