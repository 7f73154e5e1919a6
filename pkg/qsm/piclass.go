package qsm

// PIClass is an equivalence class of prime implicants under the protocol's
// domain-symmetry group (spec.md §3). Its id, used as the activation
// variable in the cover-table SAT instance, is the representative cube's
// id.
type PIClass struct {
	Repr     *Cube
	EqClass  []*Cube
	ID       int
	Cost     int
	QCost    int // 0 means "no override"; see ApplyQCost
	HasConst int
	HasAllConst bool

	// Coverage is set lazily by the Minimizer before each decision: the
	// number of input cubes this class covers, as reported by
	// CoverTable.CoverageOf.
	Coverage int
	// Decided is not read or set by Minimizer, which records its decision
	// points in its own ptrail.
	Decided bool

	// QuantifiedForm is an opaque textual annotation the core never
	// interprets, only carries through to solution printout.
	QuantifiedForm string
}

// NewPIClass creates a singleton class around repr and computes its cost
// and has_const/has_all_const attributes against atoms (spec.md
// §3/§4.3's analyze_PI).
func NewPIClass(repr *Cube, atoms []Atom) *PIClass {
	pc := &PIClass{
		Repr:    repr,
		EqClass: []*Cube{repr},
		ID:      repr.ID(),
	}
	pc.analyze(atoms)
	return pc
}

// AddEquivalent appends another orbit member to the class.
func (pc *PIClass) AddEquivalent(c *Cube) {
	pc.EqClass = append(pc.EqClass, c)
}

// Size is the number of cubes in the class's orbit.
func (pc *PIClass) Size() int { return len(pc.EqClass) }

// IsSingleton reports whether the class has no symmetric siblings.
func (pc *PIClass) IsSingleton() bool { return len(pc.EqClass) == 1 }

func (pc *PIClass) analyze(atoms []Atom) {
	pc.Cost = pc.Repr.Len()
	pc.HasAllConst = true
	for i := uint(0); i < pc.Repr.N(); i++ {
		lit := pc.Repr.At(i)
		if lit == CareDash {
			continue
		}
		if int(i) >= len(atoms) {
			continue
		}
		if len(atoms[i].Args) == 0 {
			pc.HasConst++
		} else {
			pc.HasAllConst = false
		}
	}
}

// ApplyQCost overrides Cost with QCost when the latter is positive,
// per spec.md §3 ("cost is overridden to qcost").
func (pc *PIClass) ApplyQCost() {
	if pc.QCost > 0 {
		pc.Cost = pc.QCost
	}
}

// HasCube reports whether lits (a {0,1,-} byte string) already belongs to
// the class's orbit, by literal comparison rather than Cube identity.
func (pc *PIClass) HasCube(lits []byte) bool {
	for _, c := range pc.EqClass {
		if len(lits) != int(c.N()) {
			continue
		}
		match := true
		for i, b := range lits {
			if c.At(uint(i)) != b {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
