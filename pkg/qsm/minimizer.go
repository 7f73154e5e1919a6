package qsm

import (
	"github.com/rs/zerolog"
)

// Minimizer performs DPLL-style branch and bound over PIClass activation
// decisions to find a minimum-cost cover of the input cube set (spec.md
// §4.5, grounded on original_source/py-qsm/minimizer.py's Minimizer).
type Minimizer struct {
	ct      *CoverTable
	classes map[int]*PIClass
	unk     []int // every class id, in discovery order; decidedAlready skips those on the trail
	ptrail  []int // decision points: indices into trail marking each decide()
	trail   []int // decided/forced class ids, positive = activated, negative = excluded

	best    []int // best cover found so far (class ids), nil until one is found
	bestCost int
	preferConsts bool
	log     zerolog.Logger
}

// NewMinimizer builds a minimizer over the given PI classes and cover
// table, applying QCost overrides up front (spec.md §3).
func NewMinimizer(ct *CoverTable, classes []*PIClass, preferConsts bool, log zerolog.Logger) *Minimizer {
	m := &Minimizer{ct: ct, classes: make(map[int]*PIClass, len(classes)), preferConsts: preferConsts, log: log}
	for _, pc := range classes {
		pc.ApplyQCost()
		m.classes[pc.ID] = pc
		m.unk = append(m.unk, pc.ID)
	}
	m.bestCost = -1
	return m
}

// Solve runs the essentials/redundancy fixpoint loop followed by branch
// and bound, returning the minimum-cost set of activated PIClasses.
func (m *Minimizer) Solve() []*PIClass {
	m.applyRootEssentials()
	m.search()
	out := make([]*PIClass, 0, len(m.best))
	for _, id := range m.best {
		out = append(out, m.classes[id])
	}
	return out
}

// applyRootEssentials forces every class Propagate(nil) demands true
// before any search decision is made (spec.md §4.4/§4.5).
func (m *Minimizer) applyRootEssentials() {
	for _, id := range m.ct.RootEssentials() {
		m.assign(id, true)
	}
}

// decide picks the next undecided class by ascending coverage (ties
// broken by has_all_const preference when preferConsts is set, then by
// position in unk) per spec.md §4.5's "decide()": "Sort unk by ascending
// coverage. If prefer_consts is enabled, pick the first pid with
// has_all_const = true; else pick index 0." refreshCoverage recomputes
// every undecided class's Coverage first, since coverage can only be
// read meaningfully once the cover table has been built.
func (m *Minimizer) decide() (int, bool) {
	m.refreshCoverage()
	best := -1
	for _, id := range m.unk {
		if m.decidedAlready(id) {
			continue
		}
		if best == -1 || m.better(id, best) {
			best = id
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// refreshCoverage updates Coverage on every undecided class from the
// cover table (spec.md §4.4's coverage_of, §4.5's "also updates
// coverage").
func (m *Minimizer) refreshCoverage() {
	for _, id := range m.unk {
		if m.decidedAlready(id) {
			continue
		}
		pc := m.classes[id]
		pc.Coverage = m.ct.CoverageOf(pc)
	}
}

// better reports whether a should be preferred over b per spec.md §9's
// ordering guarantees: ascending coverage, then (when preferConsts is
// set) has_all_const preference, then position in unk -- the scan in
// decide() already visits unk in order and only replaces best on a
// strict improvement, so returning false on a full tie preserves that
// position-in-unk tiebreak for free.
func (m *Minimizer) better(a, b int) bool {
	pa, pb := m.classes[a], m.classes[b]
	if pa.Coverage != pb.Coverage {
		return pa.Coverage < pb.Coverage
	}
	if m.preferConsts && pa.HasAllConst != pb.HasAllConst {
		return pa.HasAllConst && !pb.HasAllConst
	}
	return false
}

func (m *Minimizer) decidedAlready(id int) bool {
	for _, t := range m.trail {
		if t == id || t == -id {
			return true
		}
	}
	return false
}

// assign pushes id's truth value onto the trail, without recording a new
// decision point (used for forced/propagated assignments).
func (m *Minimizer) assign(id int, activated bool) {
	if activated {
		m.trail = append(m.trail, id)
	} else {
		m.trail = append(m.trail, -id)
	}
}

func (m *Minimizer) assumptions() []int {
	return append([]int(nil), m.trail...)
}

// leafAssumptions extends the trail with an explicit negative literal for
// every undecided class, so a coverage check reflects "this decided set,
// and nothing else, covers every input cube" rather than "this decided
// set could be extended by undecided classes to cover everything" --
// IsCovered needs the former (spec.md §4.4/§4.5).
func (m *Minimizer) leafAssumptions() []int {
	out := append([]int(nil), m.trail...)
	for _, id := range m.unk {
		if !m.decidedAlready(id) {
			out = append(out, -id)
		}
	}
	return out
}

func (m *Minimizer) currentCost() int {
	cost := 0
	for _, t := range m.trail {
		if t > 0 {
			cost += m.classes[t].Cost
		}
	}
	return cost
}

func (m *Minimizer) costIsOverUB(extra int) bool {
	return m.bestCost >= 0 && m.currentCost()+extra > m.bestCost
}

// backtrack pops the trail back to (and including removing) the most
// recent decision point, flips that decision's polarity, and leaves it on
// the trail as a forced exclusion -- spec.md §4.5's chronological
// backtracking.
func (m *Minimizer) backtrack() bool {
	if len(m.ptrail) == 0 {
		return false
	}
	point := m.ptrail[len(m.ptrail)-1]
	m.ptrail = m.ptrail[:len(m.ptrail)-1]
	decision := m.trail[point]
	m.trail = m.trail[:point]
	m.trail = append(m.trail, -decision)
	return true
}

// search is the branch-and-bound main loop.
func (m *Minimizer) search() {
	for {
		if m.costIsOverUB(0) {
			if !m.backtrack() {
				return
			}
			continue
		}
		if m.ct.IsCovered(m.leafAssumptions()) {
			m.evaluateSolution()
			if !m.backtrack() {
				return
			}
			continue
		}

		id, ok := m.decide()
		if !ok {
			if !m.backtrack() {
				return
			}
			continue
		}
		m.ptrail = append(m.ptrail, len(m.trail))
		m.assign(id, true)

		conds := m.ct.ConditionalEssentials(m.assumptions())
		for _, cid := range conds {
			if !m.decidedAlready(cid) {
				m.assign(cid, true)
			}
		}
	}
}

// evaluateSolution records the current trail's activated classes as the
// new incumbent if it is strictly cheaper, or tied and the first found
// (spec.md §4.5/§4.6's "all-solutions tie" note: ties are surfaced by the
// caller re-running Solve with a pinned UB via SolveAllAtCost, not here).
func (m *Minimizer) evaluateSolution() {
	cost := m.currentCost()
	if m.bestCost >= 0 && cost >= m.bestCost {
		return
	}
	var ids []int
	for _, t := range m.trail {
		if t > 0 {
			ids = append(ids, t)
		}
	}
	m.best = ids
	m.bestCost = cost
	m.log.Debug().Int("cost", cost).Int("classes", len(ids)).Msg("new incumbent cover")
}

// SolveAllAtCost re-collects every distinct activated-class set whose
// cost equals exactly cost, by exhausting the search after pinning the
// upper bound, using CompareSolutions to dedupe literal-identical covers
// (spec.md §4.6, "list every minimum-cost solution").
func (m *Minimizer) SolveAllAtCost(cost int) [][]*PIClass {
	m.trail = nil
	m.ptrail = nil
	m.bestCost = cost
	m.applyRootEssentials()
	var all [][]*PIClass
	m.enumerateCovers(&all)
	return all
}

func (m *Minimizer) enumerateCovers(all *[][]*PIClass) {
	for {
		if m.currentCost() > m.bestCost {
			if !m.backtrack() {
				return
			}
			continue
		}
		if m.ct.IsCovered(m.leafAssumptions()) {
			if m.currentCost() == m.bestCost {
				cover := m.activeClasses()
				if !containsSolution(*all, cover) {
					*all = append(*all, cover)
				}
			}
			if !m.backtrack() {
				return
			}
			continue
		}
		id, ok := m.decide()
		if !ok {
			if !m.backtrack() {
				return
			}
			continue
		}
		m.ptrail = append(m.ptrail, len(m.trail))
		m.assign(id, true)
	}
}

func (m *Minimizer) activeClasses() []*PIClass {
	var out []*PIClass
	for _, t := range m.trail {
		if t > 0 {
			out = append(out, m.classes[t])
		}
	}
	return out
}

func containsSolution(all [][]*PIClass, cover []*PIClass) bool {
	for _, s := range all {
		if CompareSolutions(s, cover) {
			return true
		}
	}
	return false
}
