// Package testkit holds structural checks shared by tests and fuzz
// harnesses: span sanity over parsed trees and over reported
// violations.
package testkit

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// CheckSpanInvariants walks every expression reachable from root and
// verifies its spans address real bytes:
// 1) spans are well formed (Start <= End)
// 2) non-empty spans resolve to exactly one file in the set
// 3) operator spans obey the same rules as expression spans
func CheckSpanInvariants(ws *ast.WorkingSet, root ast.BlockID) error {
	if ws == nil {
		return fmt.Errorf("nil working set")
	}
	b := ws.Block(root)
	if b == nil {
		return fmt.Errorf("root block %d not found", root)
	}
	if err := checkSpan(ws.Files, b.Span, "root block"); err != nil {
		return err
	}

	var fail error
	ast.WalkExprs(ws, root, func(e *ast.Expr) bool {
		if err := checkSpan(ws.Files, e.Span, fmt.Sprintf("%v expr", e.Kind)); err != nil {
			fail = err
			return false
		}
		if err := checkSpan(ws.Files, e.OpSpan, fmt.Sprintf("%v operator", e.Kind)); err != nil {
			fail = err
			return false
		}
		return true
	})
	return fail
}

// CheckViolationSpans verifies that every reported violation names a
// rule, carries a known severity, and points into the file set.
func CheckViolationSpans(fs *source.FileSet, vs []lint.Violation) error {
	for i := range vs {
		v := &vs[i]
		if v.Rule == "" {
			return fmt.Errorf("violation %d has no rule id", i)
		}
		if v.Severity < lint.SevHint || v.Severity > lint.SevError {
			return fmt.Errorf("violation %d (%s) has severity %d", i, v.Rule, v.Severity)
		}
		if err := checkSpan(fs, v.Span, fmt.Sprintf("violation %s", v.Rule)); err != nil {
			return err
		}
		for _, l := range v.Labels {
			if err := checkSpan(fs, l.Span, fmt.Sprintf("label of %s", v.Rule)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkSpan(fs *source.FileSet, sp source.Span, what string) error {
	if sp.End < sp.Start {
		return fmt.Errorf("%s: inverted span %v", what, sp)
	}
	if sp.Len() == 0 {
		return nil
	}
	if _, ok := fs.FileFor(sp); !ok {
		return fmt.Errorf("%s: span %v outside every file", what, sp)
	}
	return nil
}
