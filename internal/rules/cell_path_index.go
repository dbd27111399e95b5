package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// uncheckedCellPathIndex flags integer path members without the `?`
// marker. An index past the end of the list raises; `0?` yields nothing
// and lets the pipeline carry on. With explicit_optional_access set,
// named members are held to the same standard.
type uncheckedCellPathIndex struct{}

func (uncheckedCellPathIndex) Info() lint.Info {
	return lint.Info{
		ID:    "unchecked_cell_path_index",
		Short: "cell-path index without optional marker",
		Long: "List lengths are runtime facts, so `$xs.0` is a hard error " +
			"waiting for an empty list. The optional form `$xs.0?` " +
			"evaluates to nothing instead.",
		Level: lint.SevWarn,
		Tags:  []string{"safety"},
	}
}

// optionalMark inserts `?` after one path member.
type optionalMark struct {
	at uint32
}

func (r uncheckedCellPathIndex) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (uncheckedCellPathIndex) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	strict := ctx.Config.ExplicitOptionalAccess
	var out []lint.DetectionWithFix
	ctx.TraverseWithParent(func(e, parent *ast.Expr) {
		var members []ast.PathMember
		switch e.Kind {
		case ast.ExprCellPath, ast.ExprFullCellPath:
			members = e.Path
		default:
			return
		}
		if len(members) == 0 || isAssignmentTarget(parent, e) || underOptionalGet(ctx.WS, parent) {
			return
		}
		if name := pathHeadVar(ctx.WS, e); name == "env" || name == "nu" {
			return
		}
		getArg := underGetCall(ctx.WS, parent)
		for i := range members {
			m := &members[i]
			if m.Optional {
				continue
			}
			// Named members under a plain `get` belong to the record
			// access rule, whose -o fix covers the whole call.
			if m.Kind != ast.PathInt && (!strict || getArg) {
				continue
			}
			text := ctx.SpanText(m.Span)
			msg := fmt.Sprintf("index %s raises when the collection is shorter", text)
			if m.Kind != ast.PathInt {
				msg = fmt.Sprintf("member %s raises when it is absent", text)
			}
			d := lint.NewDetection(m.Span, msg).
				WithPrimary("unchecked member").
				WithHelp(fmt.Sprintf("write %s? to get nothing instead of an error", text))
			out = append(out, lint.DetectionWithFix{
				Detection: d,
				Input:     optionalMark{at: m.Span.End},
			})
		}
	})
	return out
}

func (uncheckedCellPathIndex) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	mark, ok := input.(optionalMark)
	if !ok {
		return nil
	}
	return lint.NewFix("mark the member optional",
		lint.Replacement{Span: source.NewSpan(mark.at, mark.at), NewText: "?"})
}

// isAssignmentTarget reports whether e is the left side of an
// assignment; optional markers are not valid there.
func isAssignmentTarget(parent, e *ast.Expr) bool {
	return parent != nil && parent.Kind == ast.ExprBinaryOp &&
		parent.Op.IsAssignment() && parent.Lhs == e
}

// underGetCall reports whether the path is an argument of a `get`.
func underGetCall(ws *ast.WorkingSet, parent *ast.Expr) bool {
	if parent == nil {
		return false
	}
	call := parent.AsCall()
	return call != nil && call.IsCommand(ws, "get")
}

// underOptionalGet reports whether the path is an argument of a `get`
// that already passes the optional flag.
func underOptionalGet(ws *ast.WorkingSet, parent *ast.Expr) bool {
	if parent == nil {
		return false
	}
	call := parent.AsCall()
	return call != nil && call.IsCommand(ws, "get") && call.IsGetOptional(ws)
}

// pathHeadVar names the variable heading a full cell path, or "".
func pathHeadVar(ws *ast.WorkingSet, e *ast.Expr) string {
	if e.Kind != ast.ExprFullCellPath || e.Head == nil {
		return ""
	}
	id, ok := e.Head.ExtractDirectVar()
	if !ok {
		return ""
	}
	return ws.VarName(id)
}
