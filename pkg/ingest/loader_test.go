package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

func TestBuildInputReconcilesColumnsAndInternsCubes(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader("type node = { a, b }\nrelation le(node, node)\n"))
	require.NoError(t, err)

	pla, err := ParsePLA(strings.NewReader(
		".i 4\n.o 1\n.ilb le(a,a) le(a,b) le(b,a) le(b,b)\n1010 1\n0101 1\n.e\n"))
	require.NoError(t, err)

	in, err := BuildInput(spec, pla, LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, in.Atoms, 4)
	require.Len(t, in.Cubes, 2)
	assert.Equal(t, "1010", in.Cubes[0].String())
	assert.Equal(t, "0101", in.Cubes[1].String())
}

func TestBuildInputDedupesIdenticalCubes(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader("type node = { a } \nrelation le(node, node)\n"))
	require.NoError(t, err)
	pla, err := ParsePLA(strings.NewReader(".i 1\n.o 1\n.ilb le(a,a)\n1 1\n1 1\n.e\n"))
	require.NoError(t, err)

	in, err := BuildInput(spec, pla, LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, in.Cubes, 1)
}

func TestBuildInputReconcilesBacktickQuotedColumn(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader("type node = { a, b }\nrelation le(node, node)\n"))
	require.NoError(t, err)
	pla, err := ParsePLA(strings.NewReader(".i 1\n.o 1\n.ilb `le(a,b)`\n1 1\n.e\n"))
	require.NoError(t, err)

	in, err := BuildInput(spec, pla, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, in.Atoms, 4)
	require.Len(t, in.Cubes, 1)
}

func TestBuildInputRejectsReusedPredicateAlias(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader("type node = { a } \nrelation le(node, node)\n"))
	require.NoError(t, err)
	pla, err := ParsePLA(strings.NewReader(".i 2\n.o 1\n.ilb round.le(a,a) le(a,a)\n11 1\n.e\n"))
	require.NoError(t, err)

	_, err = BuildInput(spec, pla, LoadOptions{})
	require.Error(t, err)
	fe, ok := err.(*qsm.FatalError)
	require.True(t, ok)
	assert.Equal(t, qsm.CategoryMalformedInput, fe.Category)
}

func TestBuildInputRejectsUnresolvableColumn(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader("type node = { a } \nrelation le(node, node)\n"))
	require.NoError(t, err)
	pla, err := ParsePLA(strings.NewReader(".i 1\n.o 1\n.ilb gt(a,a)\n1 1\n.e\n"))
	require.NoError(t, err)

	_, err = BuildInput(spec, pla, LoadOptions{})
	require.Error(t, err)
}

func TestBuildInputStripsMemberPredicatesWhenRequested(t *testing.T) {
	spec, err := ParseProtocol(strings.NewReader(
		"type node = { a } \nrelation le(node, node)\nrelation member(node)\n"))
	require.NoError(t, err)
	pla, err := ParsePLA(strings.NewReader(".i 2\n.o 1\n.ilb le(a,a) member(a)\n11 1\n.e\n"))
	require.NoError(t, err)

	in, err := BuildInput(spec, pla, LoadOptions{
		WithMembers:      false,
		MemberPredicates: map[string]struct{}{"member": {}},
	})
	require.NoError(t, err)
	require.Len(t, in.Atoms, 1)
	assert.Equal(t, "le(a,a)", in.Atoms[0].String())
	require.Len(t, in.Cubes, 1)
	assert.Equal(t, "1", in.Cubes[0].String())
}
