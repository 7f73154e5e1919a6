package ingest

import (
	"github.com/gitrdm/goqsm/pkg/qsm"
)

// Input is everything pkg/qsm needs to run a minimization: the grounded
// atom list (fixing bit positions), the signature (for symmetry), and the
// interned, deduplicated reachable-state cube set.
type Input struct {
	Sig     *qsm.Signature
	Atoms   []qsm.Atom
	Cubes   []*qsm.Cube
	Factory *qsm.CubeFactory
}

// LoadOptions controls boundary-parsing behavior not implied by the file
// formats themselves.
type LoadOptions struct {
	// WithMembers, when false (the default), drops member-predicate atoms
	// from both the grounded atom list and every cube's literal at that
	// position before building cubes (see StripMembers).
	WithMembers bool
	// MemberPredicates names which declared predicates are member
	// predicates, for StripMembers.
	MemberPredicates map[string]struct{}
}

// BuildInput reconciles a PLAFile's atom-name header against a
// ProtocolSpec's grounded atoms (duck-typed suffix resolution per
// ResolvePredicateSuffix) and interns every cube line into the shared
// CubeFactory.
func BuildInput(spec *ProtocolSpec, pla *PLAFile, opts LoadOptions) (*Input, error) {
	declaredNames := make([]string, len(spec.Atoms))
	for i, a := range spec.Atoms {
		declaredNames[i] = a.String()
	}

	// Map each PLA header column to its resolved position in spec.Atoms.
	// Each declared name is consumed on first match (PredicateResolver),
	// so a PLA file that references the same declared predicate twice --
	// once aliased, once bare -- fails fast on the second reference
	// instead of silently resolving both to the same atom.
	resolver := NewPredicateResolver(declaredNames)
	colToAtom := make([]int, len(pla.Atoms))
	for i, want := range pla.Atoms {
		resolved, ok := resolver.Resolve(want)
		if !ok {
			return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "PLA column %q matches no declared atom", want)
		}
		idx := -1
		for j, n := range declaredNames {
			if n == resolved {
				idx = j
				break
			}
		}
		colToAtom[i] = idx
	}

	atoms := spec.Atoms
	if !opts.WithMembers {
		atoms = StripMembers(atoms, opts.MemberPredicates, false)
	}
	keepIdx := make(map[int]int, len(atoms)) // original spec.Atoms index -> new atoms index
	for newIdx, a := range atoms {
		for origIdx, orig := range spec.Atoms {
			if orig.Equal(a) {
				keepIdx[origIdx] = newIdx
				break
			}
		}
	}

	factory := qsm.NewCubeFactory(uint(len(atoms)), 1)
	var cubes []*qsm.Cube
	for _, rawCube := range pla.Cubes {
		lits := make([]byte, len(atoms))
		for i := range lits {
			lits[i] = qsm.CareDash
		}
		for col, b := range rawCube {
			atomIdx := colToAtom[col]
			newIdx, kept := keepIdx[atomIdx]
			if !kept {
				continue
			}
			lits[newIdx] = b
		}
		cube, isNew := factory.Intern(lits)
		if isNew {
			cubes = append(cubes, cube)
		}
	}

	return &Input{Sig: spec.Sig, Atoms: atoms, Cubes: cubes, Factory: factory}, nil
}
