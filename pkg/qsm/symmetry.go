package qsm

import (
	"sort"
	"strings"
)

// Quorum sort/superset-sort name candidates (spec.md §4.2). At most one
// quorum sort is supported; when the signature declares several
// superset-sort candidates, the last one in quorumSupersetSorts is used,
// matching the observed behavior of the prototype this system is derived
// from (nothing breaks out of that scan — see DESIGN.md).
var (
	quorumSortNames     = []string{"quorum", "nset", "nodeset"}
	quorumSupersetSorts = []string{"node", "acceptor"}
)

// Symmetry holds a built permutation table and, if the signature declared
// a quorum sort, the majority-subset <-> quorum-element bijection used to
// remap quorum-typed atom arguments during permutation construction.
type Symmetry struct {
	atoms     []Atom
	atomIndex map[string]int
	rows      [][]int // rows[p][i] = index atom i maps to under permutation p

	quorumSort     string
	supersetSort   string
	hasQuorum      bool
	quorumNames    []string // sorted quorum-sort domain; quorumNames[i] <-> majorities[i]
	majorities     [][]string
	majorityIndex  map[string]int
	supersetSorted []string
}

// Len returns the number of rows (group elements) in the permutation
// table.
func (s *Symmetry) Len() int { return len(s.rows) }

// BuildSymmetry constructs the permutation table for sig/atoms. When
// symmetric is false the table has a single identity row, per spec.md
// §4.2 ("the only action applied to any cube is the id permutation").
func BuildSymmetry(sig *Signature, atoms []Atom, symmetric bool) (*Symmetry, error) {
	s := &Symmetry{atoms: atoms, atomIndex: indexAtoms(atoms), majorityIndex: map[string]int{}}

	if err := s.setupQuorum(sig); err != nil {
		return nil, err
	}

	if !symmetric {
		row := make([]int, len(atoms))
		for i := range row {
			row[i] = i
		}
		s.rows = [][]int{row}
		return s, nil
	}

	sortNames := make([]string, 0, len(sig.Sorts))
	for _, name := range sig.Sorts {
		if s.hasQuorum && name == s.quorumSort {
			continue
		}
		sortNames = append(sortNames, name)
	}

	domains := make([][]string, len(sortNames))
	perms := make([][][]int, len(sortNames))
	supersetSortIdx := -1
	for i, name := range sortNames {
		domains[i] = sig.SortElements[name]
		perms[i] = allPermutations(len(domains[i]))
		if s.hasQuorum && name == s.supersetSort {
			supersetSortIdx = i
		}
	}

	combo := make([]int, len(sortNames)) // combo[i] indexes perms[i]
	var walk func(pos int) error
	walk = func(pos int) error {
		if pos == len(sortNames) {
			return s.addRow(sortNames, domains, perms, combo, supersetSortIdx)
		}
		for p := range perms[pos] {
			combo[pos] = p
			if err := walk(pos + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if len(sortNames) == 0 {
		if err := s.addRow(sortNames, domains, perms, combo, supersetSortIdx); err != nil {
			return nil, err
		}
	} else if err := walk(0); err != nil {
		return nil, err
	}
	return s, nil
}

func indexAtoms(atoms []Atom) map[string]int {
	idx := make(map[string]int, len(atoms))
	for i, a := range atoms {
		idx[atomKey(a)] = i
	}
	return idx
}

func atomKey(a Atom) string { return a.Pred + "(" + strings.Join(a.Args, ",") + ")" }

func (s *Symmetry) addRow(sortNames []string, domains [][]string, perms [][][]int, combo []int, supersetSortIdx int) error {
	var permutedQuorum []int
	if s.hasQuorum {
		ssPerm := perms[supersetSortIdx][combo[supersetSortIdx]]
		permutedQuorum = make([]int, len(s.majorities))
		for i, majority := range s.majorities {
			permuted := make([]string, len(majority))
			for j, m := range majority {
				ssPos := indexOf(s.supersetSorted, m)
				permPos := ssPerm[ssPos]
				permuted[j] = s.supersetSorted[permPos]
			}
			sort.Strings(permuted)
			newIdx, ok := s.majorityIndex[strings.Join(permuted, ",")]
			if !ok {
				return fatalf(CategorySymmetryMisconfiguration, "permuted majority %v has no quorum element", permuted)
			}
			permutedQuorum[i] = newIdx
		}
	}

	row := make([]int, len(s.atoms))
	for i, a := range s.atoms {
		permutedArgs := make([]string, len(a.Args))
		for argIdx, arg := range a.Args {
			if s.hasQuorum {
				// A quorum-sort argument is detected by membership in
				// quorumNames, since sorts are declared with disjoint element
				// sets and argIdx's declared sort is not threaded through here.
				if j := indexOf(s.quorumNames, arg); j >= 0 {
					permutedArgs[argIdx] = s.quorumNames[permutedQuorum[j]]
					continue
				}
			}
			sortIdx, elemIdx := -1, -1
			for si := range sortNames {
				if k := indexOf(domains[si], arg); k >= 0 {
					sortIdx, elemIdx = si, k
					break
				}
			}
			if sortIdx == -1 {
				permutedArgs[argIdx] = arg
				continue
			}
			perm := perms[sortIdx][combo[sortIdx]]
			permutedArgs[argIdx] = domains[sortIdx][perm[elemIdx]]
		}
		permuted := Atom{Pred: a.Pred, Args: permutedArgs}
		j, ok := s.atomIndex[atomKey(permuted)]
		if !ok {
			return fatalf(CategoryMalformedInput, "permuted atom %s has no matching declared atom", permuted)
		}
		row[i] = j
	}
	s.rows = append(s.rows, row)
	return nil
}

func indexOf(xs []string, v string) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

// allPermutations returns every permutation of {0,...,n-1}.
func allPermutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	var out [][]int
	var perm func(k int)
	perm = func(k int) {
		if k == n {
			out = append(out, append([]int(nil), base...))
			return
		}
		for i := k; i < n; i++ {
			base[k], base[i] = base[i], base[k]
			perm(k + 1)
			base[k], base[i] = base[i], base[k]
		}
	}
	perm(0)
	return out
}

func (s *Symmetry) setupQuorum(sig *Signature) error {
	supersetSort := ""
	for _, name := range quorumSupersetSorts {
		if indexOf(sig.Sorts, name) >= 0 {
			supersetSort = name // last match wins, matches py-qsm's un-broken loop
		}
	}

	quorumSort := ""
	for _, name := range quorumSortNames {
		if indexOf(sig.Sorts, name) >= 0 {
			if quorumSort != "" {
				return fatalf(CategorySymmetryMisconfiguration, "maximum one quorum sort is supported, found %q and %q", quorumSort, name)
			}
			quorumSort = name
		}
	}
	if quorumSort == "" {
		return nil
	}
	if supersetSort == "" {
		return fatalf(CategorySymmetryMisconfiguration, "quorum sort %q declared but no superset sort (%v) is declared", quorumSort, quorumSupersetSorts)
	}

	s.quorumSort = quorumSort
	s.supersetSort = supersetSort
	s.hasQuorum = true

	superset := append([]string(nil), sig.SortElements[supersetSort]...)
	sort.Strings(superset)
	s.supersetSorted = superset
	k := len(superset)
	majoritySize := k/2 + 1

	quorumDomain := append([]string(nil), sig.SortElements[quorumSort]...)
	sort.Strings(quorumDomain)
	s.quorumNames = quorumDomain

	combos := combinations(superset, majoritySize)
	if len(combos) != len(quorumDomain) {
		return fatalf(CategoryMalformedInput, "quorum sort %q has %d elements, expected C(%d,%d)=%d majority subsets", quorumSort, len(quorumDomain), k, majoritySize, len(combos))
	}
	s.majorities = combos
	for i, combo := range combos {
		s.majorityIndex[strings.Join(combo, ",")] = i
	}
	return nil
}

// combinations returns every size-subset of xs (already sorted),
// in lexicographic order, each subset itself sorted.
func combinations(xs []string, size int) [][]string {
	var out [][]string
	n := len(xs)
	if size > n {
		return out
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]string, size)
		for i, v := range idx {
			combo[i] = xs[v]
		}
		out = append(out, combo)

		i := size - 1
		for i >= 0 && idx[i] == n-size+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// Orbit expands cube (a {0,1,-} byte string) into every distinct cube
// reachable by a table row, preserving first-occurrence order so row 0
// (always identity) yields the representative first (spec.md §4.2).
func (s *Symmetry) Orbit(cube []byte) [][]byte {
	seen := make(map[string]struct{}, s.Len())
	out := make([][]byte, 0, s.Len())
	for _, row := range s.rows {
		next := make([]byte, len(cube))
		for i, j := range row {
			next[i] = cube[j]
		}
		key := string(next)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, next)
	}
	return out
}

// ValidateClosure checks that the given (possibly don't-care) cube
// strings are closed under the symmetry group: every concrete expansion
// of every don't-care cube must have its full orbit present in the set
// (spec.md §4.2, "Optional: symmetry validation").
func (s *Symmetry) ValidateClosure(cubeStrs []string) error {
	full := make(map[string]struct{})
	for _, cs := range cubeStrs {
		for _, expansion := range expandDontCares([]byte(cs)) {
			full[string(expansion)] = struct{}{}
		}
	}
	for _, cs := range cubeStrs {
		bases := [][]byte{[]byte(cs)}
		if strings.ContainsRune(cs, CareDash) {
			bases = expandDontCares([]byte(cs))
		}
		for _, base := range bases {
			for _, member := range s.Orbit(base) {
				if _, ok := full[string(member)]; !ok {
					return fatalf(CategoryMalformedInput, "symmetric variant %s of %s is missing from the cube set", member, cs)
				}
			}
		}
	}
	return nil
}

func expandDontCares(cube []byte) [][]byte {
	out := [][]byte{append([]byte(nil), cube...)}
	for i, b := range cube {
		if b != CareDash {
			continue
		}
		var next [][]byte
		for _, c := range out {
			c0 := append([]byte(nil), c...)
			c0[i] = '0'
			c1 := append([]byte(nil), c...)
			c1[i] = '1'
			next = append(next, c0, c1)
		}
		out = next
	}
	return out
}
