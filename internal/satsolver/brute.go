package satsolver

// BruteForce is a dependency-free reference Solver used by pkg/qsm's unit
// tests. spec.md §5 only requires the backend to be sound and complete,
// not any particular heuristic, so small test fixtures can be checked
// against exhaustive search instead of against Gini's search order.
// Not suitable for anything beyond a few dozen variables.
type BruteForce struct {
	clauses [][]int
	next    int
	maxVar  int
	model   []int // 1-indexed by variable, model[v] holds the signed lit
}

// NewBruteForce creates a brute-force solver whose NewVar calls start at
// startVar.
func NewBruteForce(startVar int) *BruteForce {
	return &BruteForce{next: startVar, maxVar: startVar - 1}
}

func (s *BruteForce) track(v int) {
	if v < 0 {
		v = -v
	}
	if v > s.maxVar {
		s.maxVar = v
	}
}

// NewVar implements Solver.
func (s *BruteForce) NewVar() int {
	v := s.next
	if v <= s.maxVar {
		v = s.maxVar + 1
	}
	s.next = v + 1
	s.track(v)
	return v
}

// AddClause implements Solver.
func (s *BruteForce) AddClause(lits ...int) {
	cl := append([]int(nil), lits...)
	for _, l := range cl {
		s.track(l)
	}
	s.clauses = append(s.clauses, cl)
}

func (s *BruteForce) satisfied(assign []bool) bool {
	for _, cl := range s.clauses {
		ok := false
		for _, l := range cl {
			v := l
			want := true
			if v < 0 {
				v, want = -v, false
			}
			if v <= len(assign)-1 && assign[v] == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Solve implements Solver via exhaustive search over free variables,
// honoring assumptions as fixed unit literals.
func (s *BruteForce) Solve(assumptions ...int) bool {
	fixed := map[int]bool{}
	for _, a := range assumptions {
		s.track(a)
		v, want := a, true
		if v < 0 {
			v, want = -v, false
		}
		fixed[v] = want
	}

	n := s.maxVar
	assign := make([]bool, n+1)
	for v, want := range fixed {
		assign[v] = want
	}
	free := make([]int, 0, n)
	for v := 1; v <= n; v++ {
		if _, ok := fixed[v]; !ok {
			free = append(free, v)
		}
	}

	total := 1 << len(free)
	for mask := 0; mask < total; mask++ {
		for i, v := range free {
			assign[v] = mask&(1<<i) != 0
		}
		if s.satisfied(assign) {
			s.model = make([]int, n+1)
			for v := 1; v <= n; v++ {
				if assign[v] {
					s.model[v] = v
				} else {
					s.model[v] = -v
				}
			}
			return true
		}
	}
	return false
}

// Model implements Solver.
func (s *BruteForce) Model() []int {
	if s.model == nil {
		return nil
	}
	out := make([]int, 0, len(s.model)-1)
	for v := 1; v < len(s.model); v++ {
		out = append(out, s.model[v])
	}
	return out
}

// Clauses implements Solver.
func (s *BruteForce) Clauses() [][]int { return s.clauses }

// NumVars implements Solver.
func (s *BruteForce) NumVars() int { return s.maxVar }

// Propagate implements Solver as unit propagation to fixpoint, which is
// sound (every literal it returns holds in every model extending
// assumptions) even though it is not complete.
func (s *BruteForce) Propagate(assumptions ...int) (bool, []int) {
	n := s.maxVar
	known := map[int]bool{}
	for _, a := range assumptions {
		s.track(a)
		v, want := a, true
		if v < 0 {
			v, want = -v, false
		}
		if prev, ok := known[v]; ok && prev != want {
			return false, nil
		}
		known[v] = want
	}

	for changed := true; changed; {
		changed = false
		for _, cl := range s.clauses {
			unknownCount := 0
			var lastUnknown int
			satisfied := false
			for _, l := range cl {
				v, want := l, true
				if v < 0 {
					v, want = -v, false
				}
				if got, ok := known[v]; ok {
					if got == want {
						satisfied = true
						break
					}
					continue
				}
				unknownCount++
				lastUnknown = l
			}
			if satisfied {
				continue
			}
			if unknownCount == 0 {
				return false, nil
			}
			if unknownCount == 1 {
				v, want := lastUnknown, true
				if v < 0 {
					v, want = -v, false
				}
				if _, ok := known[v]; !ok {
					known[v] = want
					changed = true
				}
			}
		}
	}

	out := make([]int, 0, len(known))
	for v := 1; v <= n; v++ {
		if want, ok := known[v]; ok {
			if want {
				out = append(out, v)
			} else {
				out = append(out, -v)
			}
		}
	}
	return true, out
}
