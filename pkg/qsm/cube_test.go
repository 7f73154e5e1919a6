package qsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeAtAndString(t *testing.T) {
	f := NewCubeFactory(3, 1)
	c := f.New([]byte("1-0"))
	assert.Equal(t, byte('1'), c.At(0))
	assert.Equal(t, byte(CareDash), c.At(1))
	assert.Equal(t, byte('0'), c.At(2))
	assert.Equal(t, "1-0", c.String())
	assert.Equal(t, 2, c.Len())
}

func TestCubeCareAndCareNeg(t *testing.T) {
	f := NewCubeFactory(3, 1)
	c := f.New([]byte("1-0"))
	assert.Equal(t, []int{1, -3}, c.Care())
	assert.Equal(t, []int{-1, 3}, c.CareNeg())
}

func TestCubeFactoryNewAssignsFreshIDs(t *testing.T) {
	f := NewCubeFactory(2, 1)
	a := f.New([]byte("10"))
	b := f.New([]byte("10"))
	require.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Equal(b))
}

func TestCubeFactoryInternDeduplicates(t *testing.T) {
	f := NewCubeFactory(2, 1)
	a, isNewA := f.Intern([]byte("10"))
	b, isNewB := f.Intern([]byte("10"))
	assert.True(t, isNewA)
	assert.False(t, isNewB)
	assert.Equal(t, a.ID(), b.ID())
	assert.Same(t, a, b)
}

func TestCubeFactoryInternDistinguishesDistinctCubes(t *testing.T) {
	f := NewCubeFactory(2, 1)
	a, _ := f.Intern([]byte("10"))
	b, _ := f.Intern([]byte("01"))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Equal(b))
}

func TestPIClassAnalyzeCostAndConst(t *testing.T) {
	atoms := []Atom{
		{Pred: "p", Args: []string{"a"}},
		{Pred: "leader"}, // nullary -> a "constant" atom
	}
	f := NewCubeFactory(2, 1)
	repr := f.New([]byte("1-"))
	pc := NewPIClass(repr, atoms)
	assert.Equal(t, 1, pc.Cost)
	assert.Equal(t, 0, pc.HasConst)
	assert.False(t, pc.HasAllConst)

	repr2 := f.New([]byte("-1"))
	pc2 := NewPIClass(repr2, atoms)
	assert.Equal(t, 1, pc2.HasConst)
	assert.True(t, pc2.HasAllConst)
}

func TestPIClassApplyQCostOverridesOnlyWhenPositive(t *testing.T) {
	f := NewCubeFactory(1, 1)
	repr := f.New([]byte("1"))
	pc := NewPIClass(repr, []Atom{{Pred: "p"}})
	pc.ApplyQCost()
	assert.Equal(t, 1, pc.Cost)

	pc.QCost = 5
	pc.ApplyQCost()
	assert.Equal(t, 5, pc.Cost)
}

func TestPIClassHasCube(t *testing.T) {
	f := NewCubeFactory(2, 1)
	repr := f.New([]byte("10"))
	pc := NewPIClass(repr, []Atom{{Pred: "a"}, {Pred: "b"}})
	variant := f.New([]byte("01"))
	pc.AddEquivalent(variant)

	assert.True(t, pc.HasCube([]byte("10")))
	assert.True(t, pc.HasCube([]byte("01")))
	assert.False(t, pc.HasCube([]byte("11")))
}
