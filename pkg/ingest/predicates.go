package ingest

import (
	"strings"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

// ResolvePredicateSuffix implements the duck-typed predicate resolution
// original_source/py-qsm/input_parser.py's add_predicate_instance applies
// when a cube-file atom name doesn't exactly match a declared predicate:
// it is matched against every declared predicate name by ".name" suffix
// (e.g. a cube header naming "round.le" resolves to declared predicate
// "le" when no "round.le" predicate was declared but "le" was). The first
// declared predicate whose name is a dotted suffix of want is returned.
func ResolvePredicateSuffix(declared []string, want string) (string, bool) {
	for _, name := range declared {
		if name == want {
			return name, true
		}
	}
	for _, name := range declared {
		if strings.HasSuffix(want, "."+name) {
			return name, true
		}
	}
	return "", false
}

// PredicateResolver wraps ResolvePredicateSuffix with a consumable pool of
// declared names: original_source/py-qsm/input_parser.py's
// add_predicate_instance deletes a matched declaration from its dict on
// first use (del self.predicates[pname]), so a name is rebound to exactly
// one PLA column and a later reference to the same bare name fails fast
// instead of silently re-resolving.
type PredicateResolver struct {
	remaining []string
}

// NewPredicateResolver creates a resolver over declared, which is not
// mutated.
func NewPredicateResolver(declared []string) *PredicateResolver {
	return &PredicateResolver{remaining: append([]string(nil), declared...)}
}

// Resolve matches want against the remaining pool and, on success,
// removes the matched declared name from the pool before returning it.
func (r *PredicateResolver) Resolve(want string) (string, bool) {
	resolved, ok := ResolvePredicateSuffix(r.remaining, want)
	if !ok {
		return "", false
	}
	for i, name := range r.remaining {
		if name == resolved {
			r.remaining = append(r.remaining[:i], r.remaining[i+1:]...)
			break
		}
	}
	return resolved, true
}

// StripMembers removes every atom whose predicate is named in
// memberPredicates when withMembers is false. It does not decide by itself
// which predicates are member predicates: cmd/qsm passes every declared
// predicate whose name starts with "member".
//
// withMembers inverts its own name relative to validate_input's
// with_members flag there, which actually means "strip member
// predicates" when true; here it means "keep member predicates" to read
// naturally at the call site, and the stripping logic is inverted
// accordingly.
func StripMembers(atoms []qsm.Atom, memberPredicates map[string]struct{}, withMembers bool) []qsm.Atom {
	if withMembers {
		return atoms
	}
	out := make([]qsm.Atom, 0, len(atoms))
	for _, a := range atoms {
		if _, isMember := memberPredicates[a.Pred]; isMember {
			continue
		}
		out = append(out, a)
	}
	return out
}
