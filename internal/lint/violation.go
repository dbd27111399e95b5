package lint

import (
	"sort"
)

// Violation is a detection bound to its rule and final severity, ready
// for rendering or fixing.
type Violation struct {
	Detection

	Rule     string
	Severity Severity
	Fix      *Fix   // optional machine-applicable fix
	Path     string // owning file, "" when the span resolves nowhere
}

// SortViolations orders violations by (file, primary span start, rule id)
// so output is deterministic across runs and worker counts.
func SortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := &vs[i], &vs[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.Rule < b.Rule
	})
}

// HasErrors reports whether any violation carries error severity.
func HasErrors(vs []Violation) bool {
	for i := range vs {
		if vs[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// CountBySeverity tallies violations per severity level.
func CountBySeverity(vs []Violation) (errors, warnings, hints int) {
	for i := range vs {
		switch vs[i].Severity {
		case SevError:
			errors++
		case SevWarn:
			warnings++
		case SevHint:
			hints++
		}
	}
	return errors, warnings, hints
}
