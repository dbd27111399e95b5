package parser

import (
	"strings"
	"testing"

	"nulint/internal/ast"
)

func declSig(t *testing.T, ws *ast.WorkingSet, name string) *ast.Signature {
	t.Helper()
	id, ok := ws.FindDecl(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	return &ws.Decl(id).Sig
}

func TestParseSignature_Positionals(t *testing.T) {
	ws, _ := parseScript(t, "def f [a: int, b?: string, ...rest: path] { $a }")
	requireClean(t, ws)
	sig := declSig(t, ws, "f")

	if len(sig.RequiredPositional) != 1 {
		t.Fatalf("required: got %d, want 1", len(sig.RequiredPositional))
	}
	if a := sig.RequiredPositional[0]; a.Name != "a" || a.Shape != ast.TyInt {
		t.Errorf("required: got %q/%v, want a/int", a.Name, a.Shape)
	}
	if len(sig.OptionalPositional) != 1 {
		t.Fatalf("optional: got %d, want 1", len(sig.OptionalPositional))
	}
	if b := sig.OptionalPositional[0]; b.Name != "b" || b.Shape != ast.TyString {
		t.Errorf("optional: got %q/%v, want b/string", b.Name, b.Shape)
	}
	if sig.RestPositional == nil {
		t.Fatal("expected rest positional")
	}
	if r := sig.RestPositional; r.Name != "rest" || r.Shape != ast.TyFilepath {
		t.Errorf("rest: got %q/%v, want rest/path", r.Name, r.Shape)
	}
}

func TestParseSignature_DefaultMakesOptional(t *testing.T) {
	ws, _ := parseScript(t, "def f [x = 5] { $x }")
	requireClean(t, ws)
	sig := declSig(t, ws, "f")
	if len(sig.RequiredPositional) != 0 || len(sig.OptionalPositional) != 1 {
		t.Fatalf("got %d required / %d optional, want 0/1",
			len(sig.RequiredPositional), len(sig.OptionalPositional))
	}
}

func TestParseSignature_Flags(t *testing.T) {
	ws, _ := parseScript(t, "def f [--all (-a), --level: int, --name (-n): string = \"x\", -z] { 1 }")
	requireClean(t, ws)
	sig := declSig(t, ws, "f")

	if len(sig.Named) != 4 {
		t.Fatalf("flags: got %d, want 4", len(sig.Named))
	}

	all := sig.FindFlag("all")
	if all == nil || all.Short != 'a' || all.Arg != ast.TyNothing {
		t.Errorf("all: got %+v, want switch with -a", all)
	}
	level := sig.FindFlag("level")
	if level == nil || level.Short != 0 || level.Arg != ast.TyInt {
		t.Errorf("level: got %+v, want int flag", level)
	}
	name := sig.FindFlag("name")
	if name == nil || name.Short != 'n' || name.Arg != ast.TyString {
		t.Errorf("name: got %+v, want string flag with -n", name)
	}
	if z := sig.FindFlag("z"); z == nil {
		t.Error("short-only -z must resolve by its letter")
	}
}

func TestParseSignature_GluedShortSpelling(t *testing.T) {
	ws, _ := parseScript(t, "def f [--verbose(-v)] { 1 }")
	requireClean(t, ws)
	sig := declSig(t, ws, "f")
	v := sig.FindFlag("verbose")
	if v == nil || v.Short != 'v' {
		t.Errorf("got %+v, want verbose with -v", v)
	}
}

func TestParseSignature_FlagDescriptions(t *testing.T) {
	src := `def f [
    --all (-a)      # include hidden entries
    --force         # skip confirmation
] { 1 }`
	ws, _ := parseScript(t, src)
	requireClean(t, ws)
	sig := declSig(t, ws, "f")
	if got := sig.FindFlag("all").Desc; got != "include hidden entries" {
		t.Errorf("all desc: got %q", got)
	}
	if got := sig.FindFlag("force").Desc; got != "skip confirmation" {
		t.Errorf("force desc: got %q", got)
	}
}

func TestParseSignature_ParamsResolveInBody(t *testing.T) {
	ws, _ := parseScript(t, "def add [x: int, y: int] { $x + $y }")
	requireClean(t, ws)
	id, _ := ws.FindDecl("add")
	body := ws.Block(ws.Decl(id).Body)
	sum := body.Pipelines[0].Elements[0].Expr
	if sum.Kind != ast.ExprBinaryOp || sum.Lhs.Kind != ast.ExprVar || sum.Rhs.Kind != ast.ExprVar {
		t.Fatalf("body: got %v, want $x + $y", sum.Kind)
	}
}

func TestParseSignature_RestResolvesInBody(t *testing.T) {
	ws, _ := parseScript(t, "def f [...args] { $args }")
	requireClean(t, ws)
}

func TestParseSignature_FlagVariableNames(t *testing.T) {
	// Dashes become underscores in the body variable.
	ws, _ := parseScript(t, "def f [--dry-run] { $dry_run }")
	requireClean(t, ws)
}

func TestParseSignature_ParameterizedTypes(t *testing.T) {
	ws, _ := parseScript(t, "def f [xs: list<string>, ys: list<int>] { $xs }")
	requireClean(t, ws)
	sig := declSig(t, ws, "f")
	for i, arg := range sig.RequiredPositional {
		if arg.Shape != ast.TyList {
			t.Errorf("positional %d: got %v, want list", i, arg.Shape)
		}
	}
}

func TestParseSignature_MalformedFlag(t *testing.T) {
	ws, _ := parseScript(t, "def f [-xy] { 1 }")
	if sum := errorSummary(ws); !strings.Contains(sum, "malformed flag") {
		t.Errorf("errors %q must mention the malformed flag", sum)
	}
}
