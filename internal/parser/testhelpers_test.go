package parser

import (
	"strings"
	"testing"

	"nulint/internal/ast"
	"nulint/internal/source"
)

// parseScript parses src as a standalone file and returns the working
// set plus the top-level block.
func parseScript(t *testing.T, src string) (*ast.WorkingSet, *ast.Block) {
	t.Helper()
	ws := ast.NewWorkingSet(source.NewFileSet())
	id := ws.Files.Add("main.nu", []byte(src), 0)
	block := New(ws, nil).ParseFile(ws.Files.Get(id))
	return ws, ws.Block(block)
}

func errorSummary(ws *ast.WorkingSet) string {
	if len(ws.ParseErrors) == 0 {
		return "<none>"
	}
	msgs := make([]string, len(ws.ParseErrors))
	for i, e := range ws.ParseErrors {
		msgs[i] = e.Msg
	}
	return strings.Join(msgs, "; ")
}

func requireClean(t *testing.T, ws *ast.WorkingSet) {
	t.Helper()
	if len(ws.ParseErrors) != 0 {
		t.Fatalf("unexpected parse errors: %s", errorSummary(ws))
	}
}

// onlyExpr asserts the block holds exactly one pipeline with one
// element and returns its expression.
func onlyExpr(t *testing.T, b *ast.Block) *ast.Expr {
	t.Helper()
	if len(b.Pipelines) != 1 {
		t.Fatalf("expected 1 pipeline, got %d", len(b.Pipelines))
	}
	if n := len(b.Pipelines[0].Elements); n != 1 {
		t.Fatalf("expected 1 element, got %d", n)
	}
	return b.Pipelines[0].Elements[0].Expr
}

// parseOnly is the common case: parse cleanly, return the single
// expression.
func parseOnly(t *testing.T, src string) (*ast.WorkingSet, *ast.Expr) {
	t.Helper()
	ws, block := parseScript(t, src)
	requireClean(t, ws)
	return ws, onlyExpr(t, block)
}

// callName resolves the command name of a call expression.
func callName(t *testing.T, ws *ast.WorkingSet, e *ast.Expr) string {
	t.Helper()
	if e.Kind != ast.ExprCall {
		t.Fatalf("expected call, got %v", e.Kind)
	}
	return ws.DeclName(e.Call.Decl)
}
