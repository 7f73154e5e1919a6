package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

func TestParsePLAHappyPath(t *testing.T) {
	src := `.i 3
.o 1
.ilb a b c
.ob out
.p 2
10- 1
-01 1
.e
`
	pf, err := ParsePLA(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, pf.Atoms)
	require.Len(t, pf.Cubes, 2)
	assert.Equal(t, "10-", string(pf.Cubes[0]))
	assert.Equal(t, "-01", string(pf.Cubes[1]))
}

func TestParsePLAStripsBacktickQuotedAtoms(t *testing.T) {
	pf, err := ParsePLA(strings.NewReader(".i 2\n.o 1\n.ilb `le(a,a)` b\n10 1\n.e\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"le(a,a)", "b"}, pf.Atoms)
}

func TestParsePLAIgnoresCommentsAndBlankLines(t *testing.T) {
	src := "# a comment\n.i 1\n.o 1\n.ilb a\n\n1 1\n.e\n"
	pf, err := ParsePLA(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, pf.Atoms)
	require.Len(t, pf.Cubes, 1)
}

func TestParsePLARejectsMultiOutput(t *testing.T) {
	_, err := ParsePLA(strings.NewReader(".i 1\n.o 2\n.ilb a\n.e\n"))
	require.Error(t, err)
	fe, ok := err.(*qsm.FatalError)
	require.True(t, ok)
	assert.Equal(t, qsm.CategoryMalformedInput, fe.Category)
}

func TestParsePLARejectsWrongCubeWidth(t *testing.T) {
	_, err := ParsePLA(strings.NewReader(".i 2\n.o 1\n.ilb a b\n1 1\n.e\n"))
	require.Error(t, err)
	fe, ok := err.(*qsm.FatalError)
	require.True(t, ok)
	assert.Equal(t, qsm.CategoryMalformedInput, fe.Category)
}

func TestParsePLARejectsNonOneOutputValue(t *testing.T) {
	_, err := ParsePLA(strings.NewReader(".i 1\n.o 1\n.ilb a\n1 0\n.e\n"))
	require.Error(t, err)
}

func TestParsePLARejectsUnknownDirective(t *testing.T) {
	_, err := ParsePLA(strings.NewReader(".bogus xyz\n.e\n"))
	require.Error(t, err)
}
