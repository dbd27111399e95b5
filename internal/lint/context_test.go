package lint

import (
	"strings"
	"testing"

	"nulint/internal/ast"
	"nulint/internal/parser"
	"nulint/internal/source"
)

// lintContext parses src as main.nu and wraps it for rule consumption.
func lintContext(t *testing.T, src string) *Context {
	t.Helper()
	ws := ast.NewWorkingSet(source.NewFileSet())
	id := ws.Files.Add("main.nu", []byte(src), 0)
	f := ws.Files.Get(id)
	root := parser.New(ws, nil).ParseFile(f)
	return NewContext(ws, root, f, nil)
}

// spanOf locates the first occurrence of needle in the file content and
// returns its global span.
func spanOf(t *testing.T, c *Context, needle string) source.Span {
	t.Helper()
	idx := strings.Index(string(c.File.Content), needle)
	if idx < 0 {
		t.Fatalf("%q not found in source", needle)
	}
	start := c.File.Base + uint32(idx)
	return source.NewSpan(start, start+uint32(len(needle)))
}

func TestContext_Path(t *testing.T) {
	c := lintContext(t, "ls\n")
	if c.Path() != "main.nu" {
		t.Errorf("got %q", c.Path())
	}

	ws := ast.NewWorkingSet(source.NewFileSet())
	id := ws.Files.AddVirtual("<stdin>", []byte("ls\n"))
	f := ws.Files.Get(id)
	root := parser.New(ws, nil).ParseFile(f)
	if got := NewContext(ws, root, f, nil).Path(); got != "" {
		t.Errorf("virtual path: got %q, want empty", got)
	}
}

func TestContext_SpanText(t *testing.T) {
	c := lintContext(t, "ls -la\n")
	if got := c.SpanText(spanOf(t, c, "-la")); got != "-la" {
		t.Errorf("got %q", got)
	}
}

func TestContext_Detect(t *testing.T) {
	c := lintContext(t, "ls\npwd\nls -a\n")
	ds := c.Detect(func(e *ast.Expr) *Detection {
		if call := e.AsCall(); call != nil && call.Name(c.WS) == "ls" {
			d := NewDetection(call.Head, "found ls")
			return &d
		}
		return nil
	})
	if len(ds) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(ds))
	}
	for _, d := range ds {
		if c.SpanText(d.Span) != "ls" {
			t.Errorf("span text: %q", c.SpanText(d.Span))
		}
	}
}

func TestContext_CollectFunctionDefinitions(t *testing.T) {
	c := lintContext(t, "def greet [] { echo hi }\ndef farewell [] { echo bye }\n")
	defs := c.CollectFunctionDefinitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "greet" || defs[1].Name != "farewell" {
		t.Errorf("names: %s, %s", defs[0].Name, defs[1].Name)
	}
	for _, def := range defs {
		if !def.Body.IsValid() {
			t.Errorf("%s: missing body", def.Name)
		}
		if got := c.SpanText(def.NameSpan); got != def.Name {
			t.Errorf("%s: name span text %q", def.Name, got)
		}
	}
}

func TestContext_CollectCommandSpans(t *testing.T) {
	c := lintContext(t, "ls\nls -a | get name\npwd\n")
	spans := c.CollectCommandSpans("ls", "get")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	want := []string{"ls", "ls", "get"}
	for i, sp := range spans {
		if got := c.SpanText(sp); got != want[i] {
			t.Errorf("span %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestContext_ExpandSpanToStatement(t *testing.T) {
	c := lintContext(t, "let x = 5\nls | where size > 100\npwd\n")

	got := c.ExpandSpanToStatement(spanOf(t, c, "where"))
	if text := c.SpanText(got); text != "ls | where size > 100\n" {
		t.Errorf("expanded text: %q", text)
	}

	got = c.ExpandSpanToStatement(spanOf(t, c, "5"))
	if text := c.SpanText(got); text != "let x = 5\n" {
		t.Errorf("expanded text: %q", text)
	}
}

func TestContext_ExpandSpanToStatement_InnerBlock(t *testing.T) {
	c := lintContext(t, "def f [] {\n  ls | get name\n}\n")

	got := c.ExpandSpanToStatement(spanOf(t, c, "get"))
	if text := c.SpanText(got); text != "  ls | get name\n" {
		t.Errorf("expanded text: %q", text)
	}
}
