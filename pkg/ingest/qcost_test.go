package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

func TestParseQCostFileAndApplyTo(t *testing.T) {
	src := "->\n" +
		"pla: 11-\n" +
		"quantifier-free: (~a | ~b)\n" +
		"quantified: (forall R . ~a(R))\n" +
		"num-forall: 1\n" +
		"num-exists: 0\n" +
		"num-lits: 2\n"
	table, err := ParseQCostFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, table.records, 1)

	atoms := []qsm.Atom{{Pred: "a"}, {Pred: "b"}, {Pred: "c"}}
	factory := qsm.NewCubeFactory(3, 1)
	cube := factory.New([]byte("11-"))
	pc := qsm.NewPIClass(cube, atoms)

	table.ApplyTo([]*qsm.PIClass{pc})
	assert.Equal(t, 3, pc.QCost)
	assert.Equal(t, "(forall R . ~a(R))", pc.QuantifiedForm)
}

func TestParseQCostFileAcceptsInlinePLAField(t *testing.T) {
	src := "-> pla: 1-\n" +
		"quantifier-free: a\n" +
		"quantified: a\n" +
		"num-forall: 0\n" +
		"num-exists: 1\n" +
		"num-lits: 1\n"
	table, err := ParseQCostFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, table.records, 1)
	rec, ok := table.records["1-"]
	require.True(t, ok)
	assert.Equal(t, 2, rec.qcost)
}

func TestQCostApplyToSkipsNonMatchingCube(t *testing.T) {
	src := "->\n" +
		"pla: 1-\n" +
		"quantifier-free: a\n" +
		"quantified: a\n" +
		"num-forall: 0\n" +
		"num-exists: 0\n" +
		"num-lits: 1\n"
	table, err := ParseQCostFile(strings.NewReader(src))
	require.NoError(t, err)

	atoms := []qsm.Atom{{Pred: "a"}, {Pred: "b"}}
	factory := qsm.NewCubeFactory(2, 1)
	cube := factory.New([]byte("-1")) // does not match the "1-" record
	pc := qsm.NewPIClass(cube, atoms)
	original := pc.QCost

	table.ApplyTo([]*qsm.PIClass{pc})
	assert.Equal(t, original, pc.QCost)
	assert.Equal(t, "", pc.QuantifiedForm)
}

func TestParseQCostFileRejectsMalformedRecord(t *testing.T) {
	_, err := ParseQCostFile(strings.NewReader("->\nbogus: nope\n"))
	require.Error(t, err)
	fe, ok := err.(*qsm.FatalError)
	require.True(t, ok)
	assert.Equal(t, qsm.CategoryMalformedInput, fe.Category)
}

func TestParseQCostFileRejectsLineNotStartingWithArrow(t *testing.T) {
	_, err := ParseQCostFile(strings.NewReader("not a record\n"))
	require.Error(t, err)
	fe, ok := err.(*qsm.FatalError)
	require.True(t, ok)
	assert.Equal(t, qsm.CategoryMalformedInput, fe.Category)
}
