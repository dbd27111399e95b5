package rules

import (
	"fmt"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// chainedAppend folds runs of `append` stages into one spread list.
// Every stage copies the accumulated list, so a chain of them is
// quadratic for no reason.
type chainedAppend struct{}

func (chainedAppend) Info() lint.Info {
	return lint.Info{
		ID:    "chained_append",
		Short: "consecutive appends rebuild the list per stage",
		Long: "Each `append` materialises a fresh list from its input. " +
			"Several in a row copy the same elements over and over; a " +
			"single spread list assembles the result in one pass.",
		Level: lint.SevWarn,
	}
}

// spreadList replaces the head and the append run with one literal.
type spreadList struct {
	span source.Span
	text string
}

func (r chainedAppend) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (chainedAppend) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ast.DetectInPipelines(ctx.WS, ctx.Root, func(p *ast.Pipeline) []lint.DetectionWithFix {
		var out []lint.DetectionWithFix
		for _, cl := range p.FindCommandClusters(ctx.WS, "append", ast.ClusterConfig{}) {
			d := lint.NewDetection(cl.Span,
				fmt.Sprintf("%d chained appends copy the list at every stage", len(cl.Calls))).
				WithPrimary("append chain").
				WithHelp("assemble the result as one spread list: [...$xs, ...[a], ...[b]]")
			out = append(out, lint.DetectionWithFix{
				Detection: d,
				Input:     spreadListInput(ctx, p, cl),
			})
		}
		return out
	})
}

func (chainedAppend) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	sl, ok := input.(spreadList)
	if !ok {
		return nil
	}
	return lint.Replace("assemble one spread list", sl.span, sl.text)
}

// spreadListInput builds the fix input for one append run, or nil when
// the rewrite cannot be shown safe: the run must follow a list-typed
// element and every appended value must be a literal.
func spreadListInput(ctx *lint.Context, p *ast.Pipeline, cl ast.CommandCluster) lint.FixInput {
	first := cl.Indexes[0]
	if first == 0 {
		return nil
	}
	head := p.Elements[first-1].Expr
	if head == nil || !head.IsLikelyPure() || head.InferOutputType(ctx.WS) != ast.TyList {
		return nil
	}

	parts := []string{"..." + ctx.ExprText(head)}
	for _, call := range cl.Calls {
		if len(call.Args) != 1 {
			return nil
		}
		arg := call.Args[0]
		if arg.Kind != ast.ArgPositional && arg.Kind != ast.ArgUnknown {
			return nil
		}
		val := arg.Expr
		switch {
		case val == nil:
			return nil
		case val.Kind == ast.ExprList:
			parts = append(parts, "..."+ctx.ExprText(val))
		case val.IsLiteral():
			parts = append(parts, "...["+ctx.ExprText(val)+"]")
		default:
			return nil
		}
	}
	return spreadList{
		span: source.NewSpan(head.Span.Start, cl.Span.End),
		text: "[" + strings.Join(parts, ", ") + "]",
	}
}
