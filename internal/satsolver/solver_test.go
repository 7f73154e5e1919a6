package satsolver

import "testing"

// TestCardinalityAtMostZero checks the b=0 rhs literal forces every input
// literal false.
func TestCardinalityAtMostZero(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	rhs := Cardinality(s, []int{a, b}, 1)

	if !s.Solve(rhs[0]) {
		t.Fatal("expected satisfiable with at-most-0 bound")
	}
	model := s.Model()
	if model[a-1] > 0 || model[b-1] > 0 {
		t.Fatalf("expected both literals false under at-most-0, got %v", model)
	}
}

func TestCardinalityAtMostOneAllowsExactlyOne(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	rhs := Cardinality(s, []int{a, b}, 1)

	s.AddClause(a)
	if !s.Solve(rhs[1]) {
		t.Fatal("expected satisfiable with a true and at-most-1 bound")
	}
}

func TestCardinalityRejectsOverBound(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	rhs := Cardinality(s, []int{a, b}, 1)

	s.AddClause(a)
	s.AddClause(b)
	if s.Solve(rhs[0]) {
		t.Fatal("expected unsatisfiable: both true exceeds at-most-0")
	}
}
