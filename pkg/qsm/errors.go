package qsm

import "fmt"

// ErrorCategory classifies a FatalError per spec.md §7's taxonomy.
// cmd/qsm maps each category to a distinct nonzero process exit code.
type ErrorCategory int

const (
	// CategoryMalformedInput covers undefined predicates, arity
	// mismatches, bad cube lengths, non-1 outputs, a bad quorum element
	// count.
	CategoryMalformedInput ErrorCategory = iota + 1
	// CategorySymmetryMisconfiguration covers multiple quorum sorts or
	// a missing superset sort.
	CategorySymmetryMisconfiguration
	// CategorySATOracle covers a SAT backend returning an inconsistent
	// or unexpected result; treated as a solver bug, not recoverable.
	CategorySATOracle
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryMalformedInput:
		return "malformed-input"
	case CategorySymmetryMisconfiguration:
		return "symmetry-misconfiguration"
	case CategorySATOracle:
		return "sat-oracle-failure"
	default:
		return "unknown"
	}
}

// FatalError is a terminal condition the core cannot recover from locally
// (spec.md §7): the caller is expected to surface Error() as a diagnostic
// and stop, not retry.
type FatalError struct {
	Category ErrorCategory
	Message  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func fatalf(cat ErrorCategory, format string, args ...any) *FatalError {
	return &FatalError{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// FatalErrorf builds a *FatalError for callers outside this package, such
// as pkg/ingest's boundary parsers, that need to report malformed-input
// or symmetry-misconfiguration conditions using the same taxonomy.
func FatalErrorf(cat ErrorCategory, format string, args ...any) *FatalError {
	return fatalf(cat, format, args...)
}
