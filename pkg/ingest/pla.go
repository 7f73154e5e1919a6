// Package ingest parses the boundary file formats the core (pkg/qsm)
// never sees directly: PLA cube files, the protocol specification DSL,
// and quantified-cost weighting files (original_source/py-qsm/
// input_parser.py, Lark-grammar-driven there; hand-rolled line scanning
// here, since no grammar-parsing library appears anywhere in the
// retrieved example pack -- see DESIGN.md).
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

// PLAFile is the parsed content of a .pla cube file: its declared atom
// names (the ".ilb" line, one per whitespace-separated field) and its
// cube lines, already length-validated against the atom count.
type PLAFile struct {
	Atoms []string
	Cubes [][]byte
}

// ParsePLA reads a PLA file in the espresso-adjacent dialect
// original_source/py-qsm/input_parser.py's pla_grammar accepts:
// ".i N", ".o 1", ".ilb a b c", ".ob out", ".p P", cube lines of the form
// "<n chars of 0/1/-><space><0 or 1>", and ".e" to terminate. Only a
// single output column (always must be "1", i.e. "this is a member of
// the on-set/reachable-state set") is supported (spec.md §4.1's
// "PLA cube file"); any other output value is a CategoryMalformedInput
// error.
func ParsePLA(r io.Reader) (*PLAFile, error) {
	sc := bufio.NewScanner(r)
	pf := &PLAFile{}
	n := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, ".i "):
			v, err := strconv.Atoi(strings.TrimSpace(line[3:]))
			if err != nil {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "bad .i line %q: %v", line, err)
			}
			n = v
		case strings.HasPrefix(line, ".o "):
			v := strings.TrimSpace(line[3:])
			if v != "1" {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "only single-output PLA files are supported, got .o %s", v)
			}
		case strings.HasPrefix(line, ".ilb "):
			fields := strings.Fields(line[5:])
			for i, f := range fields {
				fields[i] = stripBackticks(f)
			}
			pf.Atoms = fields
		case strings.HasPrefix(line, ".ob "):
			// Output column label; ignored. A missing or repeated .ob
			// line is not reported.
		case strings.HasPrefix(line, ".p "):
			// Product-term count hint; not load-bearing for parsing.
		case line == ".e":
			return pf, nil
		case strings.HasPrefix(line, "."):
			return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "unrecognized PLA directive %q", line)
		default:
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed cube line %q", line)
			}
			if n >= 0 && len(fields[0]) != n {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "cube line %q has %d literals, expected %d", line, len(fields[0]), n)
			}
			if fields[1] != "1" {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "non-1 output on cube line %q is not supported", line)
			}
			pf.Cubes = append(pf.Cubes, []byte(fields[0]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading PLA file: %w", err)
	}
	return pf, nil
}

// stripBackticks removes one leading and one trailing backtick from s if
// both are present, the "`pred(arg)`"-style quoting spec.md §6's ".ilb"
// grammar allows for atom names with parentheses in them.
func stripBackticks(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}
