package lint

import (
	"nulint/internal/ast"
	"nulint/internal/source"
)

// Context is the read-only bundle a rule sees for one file: the parsed
// root block, the working set that owns it, the owning file, and the
// run configuration. One context is built per file per run and shared by
// every rule, so nothing on it may mutate.
type Context struct {
	Root   ast.BlockID
	WS     *ast.WorkingSet
	File   *source.File
	Config *Config
}

// NewContext bundles the parse result for rule consumption.
func NewContext(ws *ast.WorkingSet, root ast.BlockID, file *source.File, cfg *Config) *Context {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Context{Root: root, WS: ws, File: file, Config: cfg}
}

// Path returns the linted file's path, "" for virtual input.
func (c *Context) Path() string {
	if c.File == nil || c.File.Virtual() {
		return ""
	}
	return c.File.Path
}

// SpanText extracts the source text under a global span.
func (c *Context) SpanText(sp source.Span) string {
	return c.WS.Text(sp)
}

// ExprText extracts the source text of an expression as written.
func (c *Context) ExprText(e *ast.Expr) string {
	if e == nil {
		return ""
	}
	return c.WS.Text(e.Span)
}

// Detect walks every expression under the root and collects the
// detections the predicate reports.
func (c *Context) Detect(pred func(*ast.Expr) *Detection) []Detection {
	return ast.FlatMap(c.WS, c.Root, func(e *ast.Expr) []Detection {
		if d := pred(e); d != nil {
			return []Detection{*d}
		}
		return nil
	})
}

// DetectWithFixData is Detect for fixable rules: the predicate also
// returns the fix input to carry alongside each detection.
func (c *Context) DetectWithFixData(pred func(*ast.Expr) (*Detection, FixInput)) []DetectionWithFix {
	return ast.FlatMap(c.WS, c.Root, func(e *ast.Expr) []DetectionWithFix {
		d, input := pred(e)
		if d == nil {
			return nil
		}
		return []DetectionWithFix{{Detection: *d, Input: input}}
	})
}

// TraverseWithParent visits every expression under the root together
// with its parent; pipeline roots see a nil parent.
func (c *Context) TraverseWithParent(visit func(e, parent *ast.Expr)) {
	ast.TraverseWithParent(c.WS, c.Root, visit)
}

// FunctionDef is one user-defined command: its name, declaration, body,
// and the span of the name at the definition site.
type FunctionDef struct {
	Name     string
	Decl     ast.DeclID
	Body     ast.BlockID
	NameSpan source.Span
}

// CollectFunctionDefinitions returns every user-defined command in
// declaration order.
func (c *Context) CollectFunctionDefinitions() []FunctionDef {
	var out []FunctionDef
	decls := c.WS.Decls()
	for i := range decls {
		d := &decls[i]
		if d.Builtin || !d.Body.IsValid() {
			continue
		}
		id := ast.DeclID(i + 1) // arena ids are 1-based
		out = append(out, FunctionDef{
			Name:     c.WS.DeclName(id),
			Decl:     id,
			Body:     d.Body,
			NameSpan: d.NameSpan,
		})
	}
	return out
}

// CollectCommandSpans returns the head spans of every call to one of
// the named commands, in traversal order.
func (c *Context) CollectCommandSpans(names ...string) []source.Span {
	lookup := make(map[string]bool, len(names))
	for _, n := range names {
		lookup[n] = true
	}
	return ast.FlatMap(c.WS, c.Root, func(e *ast.Expr) []source.Span {
		if call := e.AsCall(); call != nil && lookup[call.Name(c.WS)] {
			return []source.Span{call.Head}
		}
		return nil
	})
}

// ExpandSpanToStatement grows a span to cover the whole statement
// containing it: the smallest enclosing pipeline, extended to full
// lines including the trailing line break. Used by fixes that remove
// statements outright.
func (c *Context) ExpandSpanToStatement(sp source.Span) source.Span {
	stmt := sp
	bestLen := ^uint32(0)
	for id := uint32(1); id <= c.WS.NumBlocks(); id++ {
		b := c.WS.Block(ast.BlockID(id))
		for pi := range b.Pipelines {
			pspan := b.Pipelines[pi].Span()
			if pspan.Contains(sp) && pspan.Len() < bestLen {
				stmt = pspan
				bestLen = pspan.Len()
			}
		}
	}
	return c.expandToLines(stmt)
}

// expandToLines widens a global span to line boundaries in its owning
// file, swallowing the final line break so removal leaves no blank line.
func (c *Context) expandToLines(sp source.Span) source.Span {
	f, ok := c.WS.Files.FileFor(sp)
	if !ok {
		return sp
	}
	startLine, endLine, ok := resolveLines(c.WS.Files, sp)
	if !ok {
		return sp
	}
	first, ok := f.LineSpan(startLine)
	if !ok {
		return sp
	}
	last, ok := f.LineSpan(endLine)
	if !ok {
		return sp
	}
	end := last.End
	if int(end) < len(f.Content) && f.Content[end] == '\n' {
		end++
	}
	return source.NewSpan(f.Base+first.Start, f.Base+end)
}

func resolveLines(files *source.FileSet, sp source.Span) (startLine, endLine uint32, ok bool) {
	start, end, ok := files.Resolve(sp)
	if !ok {
		return 0, 0, false
	}
	endLine = end.Line
	// A span ending at column 1 stops before that line starts.
	if end.Line > start.Line && end.Col == 1 {
		endLine = end.Line - 1
	}
	return start.Line, endLine, true
}
