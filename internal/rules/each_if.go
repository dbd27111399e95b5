package rules

import (
	"sort"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// eachIfToWhere recognises `each { |x| if <cond> { $x } }` as a filter
// and rewrites it to `where`. The rewrite is declined when the condition
// uses the loop variable in a way a row condition cannot express.
type eachIfToWhere struct{}

func (eachIfToWhere) Info() lint.Info {
	return lint.Info{
		ID:    "each_if_to_where",
		Short: "each with a single if is a filter",
		Long: "A closure that keeps the row when a condition holds and " +
			"yields nothing otherwise reimplements `where`. The built-in " +
			"filter skips the closure machinery and reads as intent.",
		Level: lint.SevWarn,
	}
}

// whereRewrite replaces the whole each call with a where stage.
type whereRewrite struct {
	span source.Span
	cond string
}

func (r eachIfToWhere) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (eachIfToWhere) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		call := e.AsCall()
		if call == nil || !call.IsCommand(ctx.WS, "each") {
			return nil, nil
		}
		if len(call.PositionalArgs()) != 1 || hasNamedArgs(call) {
			return nil, nil
		}
		loopVar, ok := call.LoopVarFromEach(ctx.WS)
		if !ok {
			return nil, nil
		}
		closure := call.FirstPositionalArg()
		blockID, ok := closure.ExtractBlockID()
		if !ok {
			return nil, nil
		}
		body := ctx.WS.Block(blockID)
		if body == nil {
			return nil, nil
		}
		ifCall, ok := body.SingleIfCall(ctx.WS)
		if !ok || ifCall.ElseBranch() != nil {
			return nil, nil
		}
		cond := ifCall.PositionalArg(0)
		then := ifCall.PositionalArg(1)
		if cond == nil || then == nil || !then.HasBlock() {
			return nil, nil
		}
		if !blockReturnsVar(ctx.WS, then.Block, loopVar) {
			return nil, nil
		}

		d := lint.NewDetection(call.Span, "each with a single if keeps or drops rows; that is where").
			WithPrimary("filter in disguise").
			WithLabel("condition decides the row", cond.Span)

		condText, rewritable := rowConditionText(ctx, cond, loopVar)
		if !rewritable {
			d = d.WithHelp("rewrite by hand; the condition uses the loop variable as a whole value")
			return &d, nil
		}
		d = d.WithHelp("rewrite as `where " + condText + "`")
		return &d, whereRewrite{span: call.Span, cond: condText}
	})
}

func (eachIfToWhere) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	rw, ok := input.(whereRewrite)
	if !ok {
		return nil
	}
	return lint.Replace("filter with where", rw.span, "where "+rw.cond)
}

// rowConditionText rewrites the condition for row-condition position by
// stripping `$x.` prefixes off the loop variable's cell paths. It fails
// when the condition reads the variable without a member access, because
// `where` has no name for the whole row in that spelling.
func rowConditionText(ctx *lint.Context, cond *ast.Expr, loopVar ast.VarID) (string, bool) {
	var cuts []source.Span
	lossy := false
	ctx.TraverseWithParent(func(e, parent *ast.Expr) {
		if !cond.Span.Contains(e.Span) {
			return
		}
		switch e.Kind {
		case ast.ExprVar:
			if e.Var != loopVar {
				return
			}
			under := parent != nil && parent.Kind == ast.ExprFullCellPath &&
				len(parent.Path) > 0 && parent.Head == e
			if !under {
				lossy = true
			}
		case ast.ExprFullCellPath:
			if len(e.Path) > 0 && e.Head != nil && e.Head.MatchesVar(loopVar) {
				cuts = append(cuts, source.NewSpan(e.Head.Span.Start, e.Path[0].Span.Start))
			}
		}
	})
	if lossy {
		return "", false
	}
	return spliceOut(ctx, cond.Span, cuts), true
}

// blockReturnsVar reports whether the block body is exactly the given
// variable and nothing else.
func blockReturnsVar(ws *ast.WorkingSet, id ast.BlockID, v ast.VarID) bool {
	b := ws.Block(id)
	if b == nil || len(b.Pipelines) != 1 {
		return false
	}
	p := &b.Pipelines[0]
	return len(p.Elements) == 1 && p.Elements[0].Expr.MatchesVar(v)
}

// spliceOut returns the text under sp with the cut sub-spans removed.
func spliceOut(ctx *lint.Context, sp source.Span, cuts []source.Span) string {
	text := ctx.SpanText(sp)
	if len(cuts) == 0 {
		return text
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Start < cuts[j].Start })
	var b strings.Builder
	pos := sp.Start
	for _, c := range cuts {
		b.WriteString(text[pos-sp.Start : c.Start-sp.Start])
		pos = c.End
	}
	b.WriteString(text[pos-sp.Start:])
	return b.String()
}

// hasNamedArgs reports whether the call carries any flag arguments.
func hasNamedArgs(c *ast.Call) bool {
	for i := range c.Args {
		if c.Args[i].Kind == ast.ArgNamed {
			return true
		}
	}
	return false
}
