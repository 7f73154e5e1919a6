package satsolver

import "testing"

func TestBruteForceSolveSatisfiable(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(a, b)
	s.AddClause(-a, -b)

	if !s.Solve() {
		t.Fatal("expected satisfiable")
	}
	model := s.Model()
	if len(model) != 2 {
		t.Fatalf("expected 2-literal model, got %v", model)
	}
	aTrue := model[a-1] > 0
	bTrue := model[b-1] > 0
	if aTrue == bTrue {
		t.Fatalf("expected exactly one of a,b true, got a=%v b=%v", aTrue, bTrue)
	}
}

func TestBruteForceUnsatisfiable(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	s.AddClause(a)
	s.AddClause(-a)
	if s.Solve() {
		t.Fatal("expected unsatisfiable")
	}
}

func TestBruteForceAssumptions(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(-a, b)
	if !s.Solve(a) {
		t.Fatal("expected satisfiable under assumption a")
	}
	model := s.Model()
	if model[b-1] < 0 {
		t.Fatal("expected b forced true")
	}
}

func TestBruteForcePropagateUnitChain(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	c := s.NewVar()
	s.AddClause(-a, b)
	s.AddClause(-b, c)

	ok, forced := s.Propagate(a)
	if !ok {
		t.Fatal("expected propagation to succeed")
	}
	want := map[int]bool{a: true, b: true, c: true}
	got := map[int]bool{}
	for _, l := range forced {
		got[abs(l)] = l > 0
	}
	for v, want := range want {
		if got[v] != want {
			t.Fatalf("var %d: want %v, got %v (forced=%v)", v, want, got[v], forced)
		}
	}
}

func TestBruteForcePropagateConflict(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	s.AddClause(a)
	ok, _ := s.Propagate(-a)
	if ok {
		t.Fatal("expected conflict")
	}
}

func TestBruteForceClausesAndNumVars(t *testing.T) {
	s := NewBruteForce(1)
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(a, -b)
	s.AddClause(-a, b)

	if s.NumVars() != 2 {
		t.Fatalf("expected 2 vars, got %d", s.NumVars())
	}
	clauses := s.Clauses()
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0][0] != a || clauses[0][1] != -b {
		t.Fatalf("unexpected first clause: %v", clauses[0])
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
