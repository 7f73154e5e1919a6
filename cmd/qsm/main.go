// Command qsm computes a minimum-cost, symmetry-aware quantified
// invariant for a protocol specification and a reachable-state PLA cube
// file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gitrdm/goqsm/internal/satsolver"
	"github.com/gitrdm/goqsm/pkg/ingest"
	"github.com/gitrdm/goqsm/pkg/qsm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("qsm", flag.ContinueOnError)
	var (
		protocolPath  = fs.String("protocol", "", "path to the protocol specification DSL file")
		plaPath       = fs.String("pla", "", "path to the reachable-state PLA cube file")
		qcostPath     = fs.String("pi-weights", "", "optional quantified-cost weighting file")
		onlyPIs       = fs.Bool("only-pis", false, "emit the PIC-list of the minimum cover instead of a solution summary")
		printClass    = fs.Bool("print-classinfo", false, "emit the classinfo table for the minimum cover")
		allSolutions  = fs.Bool("all-solutions", false, "enumerate every minimum-cost cover instead of just one")
		preferConsts  = fs.Bool("prefer-consts", false, "when choosing the next class to decide, break coverage ties in favor of classes whose care atoms are all nullary")
		printDIMACS   = fs.Bool("print-dimacs", false, "dump the cover-table SAT instance in DIMACS form before solving")
		checkSolution = fs.Bool("check-solution", false, "compare every emitted minimum-cost cover against the first one found")
		verifySymm    = fs.Bool("verify-symmetry", false, "validate that the input cube set is closed under the domain symmetry group before solving")
		withMembers   = fs.Bool("with-members", false, "keep member predicates instead of stripping them")
		verbose       = fs.Bool("verbose", false, "enable debug-level logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *protocolPath == "" || *plaPath == "" {
		fmt.Fprintln(os.Stderr, "qsm: -protocol and -pla are required")
		return 2
	}

	input, atoms, err := load(*protocolPath, *plaPath, *withMembers)
	if err != nil {
		return reportErr(logger, err)
	}

	if *verifySymm {
		sym, err := qsm.BuildSymmetry(input.Sig, atoms, true)
		if err != nil {
			return reportErr(logger, err)
		}
		cubeStrs := make([]string, len(input.Cubes))
		for i, c := range input.Cubes {
			cubeStrs[i] = c.String()
		}
		if err := sym.ValidateClosure(cubeStrs); err != nil {
			return reportErr(logger, err)
		}
	}

	sym, err := qsm.BuildSymmetry(input.Sig, atoms, true)
	if err != nil {
		return reportErr(logger, err)
	}

	enumSolver := satsolver.NewGiniSolver(1)
	enumerator := qsm.NewEnumerator(enumSolver, sym, uint(len(atoms)), input.Cubes, logger)
	classes := enumerator.EnumerateAll(input.Factory, atoms)

	if *qcostPath != "" {
		f, err := os.Open(*qcostPath)
		if err != nil {
			return reportErr(logger, qsm.FatalErrorf(qsm.CategoryMalformedInput, "opening qcost file: %v", err))
		}
		table, err := ingest.ParseQCostFile(f)
		f.Close()
		if err != nil {
			return reportErr(logger, err)
		}
		table.ApplyTo(classes)
	}

	coverSolver := satsolver.NewGiniSolver(1)
	ct := qsm.NewCoverTable(coverSolver, classes, input.Cubes)

	if *printDIMACS {
		if err := qsm.WriteDIMACS(os.Stdout, coverSolver.NumVars(), len(coverSolver.Clauses()), coverSolver.Clauses()); err != nil {
			return reportErr(logger, qsm.FatalErrorf(qsm.CategoryMalformedInput, "writing output: %v", err))
		}
	}

	minimizer := qsm.NewMinimizer(ct, classes, *preferConsts, logger)
	cover := minimizer.Solve()

	var all [][]*qsm.PIClass
	if *allSolutions || *checkSolution {
		cost := 0
		for _, pc := range cover {
			cost += pc.Cost
		}
		all = minimizer.SolveAllAtCost(cost)
	}
	if *allSolutions {
		logger.Info().Int("count", len(all)).Msg("minimum-cost covers found")
	}
	if *checkSolution && len(all) > 1 {
		for i, candidate := range all[1:] {
			if !qsm.CompareSolutions(all[0], candidate) {
				logger.Warn().Int("index", i+1).Msg("minimum-cost cover differs from the first one found")
			}
		}
	}

	sol := &qsm.Solution{PLAName: *plaPath, Atoms: atoms, Cover: cover}
	switch {
	case *onlyPIs:
		if err := sol.WriteOnlyPIs(os.Stdout); err != nil {
			return reportErr(logger, qsm.FatalErrorf(qsm.CategoryMalformedInput, "writing output: %v", err))
		}
	case *printClass:
		if err := sol.WriteClassInfo(os.Stdout); err != nil {
			return reportErr(logger, qsm.FatalErrorf(qsm.CategoryMalformedInput, "writing output: %v", err))
		}
	default:
		if err := sol.WriteSolution(os.Stdout); err != nil {
			return reportErr(logger, qsm.FatalErrorf(qsm.CategoryMalformedInput, "writing output: %v", err))
		}
	}
	return 0
}

func load(protocolPath, plaPath string, withMembers bool) (*ingest.Input, []qsm.Atom, error) {
	pf, err := os.Open(protocolPath)
	if err != nil {
		return nil, nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "opening protocol file: %v", err)
	}
	defer pf.Close()
	spec, err := ingest.ParseProtocol(pf)
	if err != nil {
		return nil, nil, err
	}

	plf, err := os.Open(plaPath)
	if err != nil {
		return nil, nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "opening PLA file: %v", err)
	}
	defer plf.Close()
	pla, err := ingest.ParsePLA(plf)
	if err != nil {
		return nil, nil, err
	}

	memberPreds := map[string]struct{}{}
	for name := range spec.Sig.Predicates {
		if len(name) >= len("member") && name[:len("member")] == "member" {
			memberPreds[name] = struct{}{}
		}
	}
	input, err := ingest.BuildInput(spec, pla, ingest.LoadOptions{WithMembers: withMembers, MemberPredicates: memberPreds})
	if err != nil {
		return nil, nil, err
	}
	return input, input.Atoms, nil
}

// reportErr maps a *qsm.FatalError's category to a distinct process exit
// code per spec.md §7's error taxonomy; any other error is treated as an
// unexpected internal failure.
func reportErr(logger zerolog.Logger, err error) int {
	if fe, ok := err.(*qsm.FatalError); ok {
		logger.Error().Str("category", fe.Category.String()).Msg(fe.Message)
		switch fe.Category {
		case qsm.CategoryMalformedInput:
			return 10
		case qsm.CategorySymmetryMisconfiguration:
			return 11
		case qsm.CategorySATOracle:
			return 12
		}
	}
	logger.Error().Err(err).Msg("unexpected failure")
	return 1
}
