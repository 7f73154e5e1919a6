// Package qsm computes a minimum-cost, symmetry-aware quantified invariant
// for a finite-state protocol specification: it enumerates the prime
// implicants of the negated reachable-state set, groups them into domain-
// symmetry orbits, and selects a minimum-cost cover by branch and bound.
//
// The package assumes parsed, validated inputs (see pkg/ingest for the
// protocol-specification and PLA-cube file readers) and is single-threaded
// and deterministic by design: see Enumerator and Minimizer.
package qsm

import (
	"fmt"
	"sort"
	"strings"
)

// Atom is a ground Boolean term pred(args) over the protocol signature.
// Its position in a Signature's Atoms list is the bit position shared by
// every Cube built against that signature.
type Atom struct {
	Pred string
	Args []string
}

// String renders the atom the way the PLA file header and --only-pis
// output both expect: "pred(a,b,c)", or "pred" for a nullary atom.
func (a Atom) String() string {
	if len(a.Args) == 0 {
		return a.Pred
	}
	return fmt.Sprintf("%s(%s)", a.Pred, strings.Join(a.Args, ","))
}

// Equal reports whether two atoms name the same predicate instance.
func (a Atom) Equal(o Atom) bool {
	if a.Pred != o.Pred || len(a.Args) != len(o.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Signature is the protocol's sort/predicate declaration set (spec.md
// §4.1, item 1): sorts in declaration order, each sort's ground element
// names, and each predicate's ordered argument-sort list. Functions and
// individuals are folded into Predicates by their boundary parser (see
// pkg/ingest) before a Signature is built, so the core only ever sees
// relations.
type Signature struct {
	Sorts        []string
	SortElements map[string][]string // each slice is sorted lexicographically
	Predicates   map[string][]string // predicate name -> ordered arg sorts
}

// NewSignature builds a Signature from unordered maps, sorting each sort's
// element list lexicographically as spec.md §4.2 requires for permutation
// construction.
func NewSignature(sorts []string, sortElements map[string]map[string]struct{}, predicates map[string][]string) *Signature {
	sig := &Signature{
		Sorts:        append([]string(nil), sorts...),
		SortElements: make(map[string][]string, len(sortElements)),
		Predicates:   predicates,
	}
	for sort, elems := range sortElements {
		list := make([]string, 0, len(elems))
		for e := range elems {
			list = append(list, e)
		}
		sort2 := list
		sortStrings(sort2)
		sig.SortElements[sort] = sort2
	}
	return sig
}

func sortStrings(xs []string) { sort.Strings(xs) }

// ArgSort returns the declared sort of args[i] for predicate pred, and
// whether pred/i are valid.
func (s *Signature) ArgSort(pred string, i int) (string, bool) {
	sorts, ok := s.Predicates[pred]
	if !ok || i < 0 || i >= len(sorts) {
		return "", false
	}
	return sorts[i], true
}
