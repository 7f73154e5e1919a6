package qsm

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Solution is the minimizer's final answer, ready for printout (spec.md
// §4.6).
type Solution struct {
	PLAName string
	Atoms   []Atom
	Cover   []*PIClass
}

// WriteOnlyPIs writes every PIClass in cover in the PIC-list format
// original_source/py-qsm/minimizer.py's --only-pis produces: a header
// naming the source PLA file and its atom list, then one cube line per
// class.
func (s *Solution) WriteOnlyPIs(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "// PIC list of %s\n", s.PLAName); err != nil {
		return err
	}
	names := make([]string, len(s.Atoms))
	for i, a := range s.Atoms {
		names[i] = a.String()
	}
	if _, err := fmt.Fprintf(w, "// PLA Header: %s\n", strings.Join(names, " ")); err != nil {
		return err
	}
	for _, pc := range s.Cover {
		if _, err := fmt.Fprintln(w, pc.Repr.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteClassInfo writes one row per class: "id;cost;care-literals;form",
// where form is the class's QuantifiedForm when the FIRST class in cover
// has one (a per-solution toggle, not per-class -- a faithful quirk of
// the prototype this replicates) and "none" otherwise.
func (s *Solution) WriteClassInfo(w io.Writer) error {
	hasQForm := len(s.Cover) > 0 && s.Cover[0].QuantifiedForm != ""
	for _, pc := range s.Cover {
		form := "none"
		if hasQForm {
			form = pc.QuantifiedForm
			if form == "" {
				form = "none"
			}
		}
		lits := make([]string, 0, pc.Repr.Len())
		for _, l := range pc.Repr.Care() {
			lits = append(lits, strconv.Itoa(l))
		}
		if _, err := fmt.Fprintf(w, "%d;%d;%s;%s\n", pc.ID, pc.Cost, strings.Join(lits, " "), form); err != nil {
			return err
		}
	}
	return nil
}

// WriteDIMACS dumps the solver's clause database in DIMACS CNF form, for
// debugging the encoding (spec.md §6, "--print-dimacs").
func WriteDIMACS(w io.Writer, numVars, numClauses int, clauses [][]int) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", numVars, numClauses); err != nil {
		return err
	}
	for _, cl := range clauses {
		parts := make([]string, len(cl)+1)
		for i, l := range cl {
			parts[i] = strconv.Itoa(l)
		}
		parts[len(cl)] = "0"
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteSolution writes the default solution printout (spec.md §6): one
// "invariant [pi<id>] <quantified_form>" line per cover class, in cover
// order, stopping at (and not printing) the first class with no
// quantified form -- a partial quantified invariant is not a usable
// one, so the printout ends there rather than emitting "none" rows.
func (s *Solution) WriteSolution(w io.Writer) error {
	for _, pc := range s.Cover {
		if pc.QuantifiedForm == "" {
			break
		}
		if _, err := fmt.Fprintf(w, "invariant [pi%d] %s\n", pc.ID, pc.QuantifiedForm); err != nil {
			return err
		}
	}
	return nil
}

// EmitArtifacts writes the PIC-list and classinfo outputs concurrently
// when both are requested, since they are independent read-only passes
// over the same finished Solution (spec.md §6's optional-artifact
// emission; only this boundary concern uses concurrency -- the core
// solve stays single-threaded per spec.md §5).
func (s *Solution) EmitArtifacts(ctx context.Context, onlyPIs, classInfo io.Writer) error {
	g, _ := errgroup.WithContext(ctx)
	if onlyPIs != nil {
		g.Go(func() error { return s.WriteOnlyPIs(onlyPIs) })
	}
	if classInfo != nil {
		g.Go(func() error { return s.WriteClassInfo(classInfo) })
	}
	return g.Wait()
}
