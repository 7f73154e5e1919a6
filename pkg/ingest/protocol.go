package ingest

import (
	"bufio"
	"io"
	"strings"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

// ProtocolSpec is the declared signature plus the ground atom list derived
// from it: every sort's elements, instantiated against every relation's
// argument-sort list (spec.md §4.1 item 1, "protocol spec DSL").
//
// The accepted line-oriented syntax, one declaration per line:
//
//	type <sort> = { e1, e2, ... }
//	relation <name>(<sort1>, <sort2>, ...)
//	individual <name> : <sort>
//	function <name>(<sort1>, ...) : <sort>
//
// Functions and individuals are folded into zero/one-argument predicates
// per atom.go's doc comment: an individual becomes a nullary atom name,
// a function becomes a relation over its argument sorts plus its result
// sort as a final argument (original_source/py-qsm/input_parser.py's
// DeclarationCollector does the same folding ahead of grounding).
type ProtocolSpec struct {
	Sig   *qsm.Signature
	Atoms []qsm.Atom
}

type relationDecl struct {
	name  string
	sorts []string
}

// ParseProtocol reads a protocol specification and grounds every declared
// relation (and function/individual, folded to relations) against its
// argument sorts' elements.
func ParseProtocol(r io.Reader) (*ProtocolSpec, error) {
	sc := bufio.NewScanner(r)
	sorts := []string{}
	elements := map[string]map[string]struct{}{}
	var relations []relationDecl

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "type "):
			name, elems, err := parseTypeDecl(line)
			if err != nil {
				return nil, err
			}
			sorts = append(sorts, name)
			elements[name] = elems
		case strings.HasPrefix(line, "relation "):
			decl, err := parseRelationDecl(line[len("relation "):])
			if err != nil {
				return nil, err
			}
			relations = append(relations, decl)
		case strings.HasPrefix(line, "individual "):
			decl, err := parseIndividualDecl(line[len("individual "):])
			if err != nil {
				return nil, err
			}
			relations = append(relations, relationDecl{name: decl.name})
		case strings.HasPrefix(line, "function "):
			decl, err := parseFunctionDecl(line[len("function "):])
			if err != nil {
				return nil, err
			}
			relations = append(relations, decl)
		default:
			return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "unrecognized protocol declaration %q", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	predicates := make(map[string][]string, len(relations))
	for _, rel := range relations {
		predicates[rel.name] = rel.sorts
	}
	sig := qsm.NewSignature(sorts, elements, predicates)

	var atoms []qsm.Atom
	for _, rel := range relations {
		ground, err := groundRelation(sig, rel)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, ground...)
	}
	return &ProtocolSpec{Sig: sig, Atoms: atoms}, nil
}

func parseTypeDecl(line string) (string, map[string]struct{}, error) {
	rest := strings.TrimSpace(line[len("type "):])
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) != 2 {
		return "", nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed type declaration %q", line)
	}
	name := strings.TrimSpace(parts[0])
	body := strings.TrimSpace(parts[1])
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")
	elems := map[string]struct{}{}
	for _, e := range strings.Split(body, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			elems[e] = struct{}{}
		}
	}
	return name, elems, nil
}

func parseRelationDecl(rest string) (relationDecl, error) {
	open := strings.Index(rest, "(")
	close := strings.LastIndex(rest, ")")
	if open < 0 || close < open {
		return relationDecl{}, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed relation declaration %q", rest)
	}
	name := strings.TrimSpace(rest[:open])
	args := splitArgs(rest[open+1 : close])
	return relationDecl{name: name, sorts: args}, nil
}

func parseIndividualDecl(rest string) (relationDecl, error) {
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return relationDecl{}, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed individual declaration %q", rest)
	}
	return relationDecl{name: strings.TrimSpace(parts[0])}, nil
}

func parseFunctionDecl(rest string) (relationDecl, error) {
	colon := strings.LastIndex(rest, ":")
	if colon < 0 {
		return relationDecl{}, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed function declaration %q", rest)
	}
	head := rest[:colon]
	resultSort := strings.TrimSpace(rest[colon+1:])
	open := strings.Index(head, "(")
	close := strings.LastIndex(head, ")")
	if open < 0 || close < open {
		return relationDecl{}, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed function declaration %q", rest)
	}
	name := strings.TrimSpace(head[:open])
	args := splitArgs(head[open+1 : close])
	args = append(args, resultSort)
	return relationDecl{name: name, sorts: args}, nil
}

func splitArgs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func groundRelation(sig *qsm.Signature, rel relationDecl) ([]qsm.Atom, error) {
	if len(rel.sorts) == 0 {
		return []qsm.Atom{{Pred: rel.name}}, nil
	}
	domains := make([][]string, len(rel.sorts))
	for i, sortName := range rel.sorts {
		elems, ok := sig.SortElements[sortName]
		if !ok {
			return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "relation %q references undeclared sort %q", rel.name, sortName)
		}
		domains[i] = elems
	}
	var atoms []qsm.Atom
	args := make([]string, len(domains))
	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(domains) {
			atoms = append(atoms, qsm.Atom{Pred: rel.name, Args: append([]string(nil), args...)})
			return
		}
		for _, e := range domains[pos] {
			args[pos] = e
			walk(pos + 1)
		}
	}
	walk(0)
	return atoms, nil
}
