package rules

import (
	"fmt"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// uselessStringInterp flags interpolations that interpolate nothing: no
// parenthesized parts at all, or a single part that is already a string.
type uselessStringInterp struct{}

func (uselessStringInterp) Info() lint.Info {
	return lint.Info{
		ID:    "useless_string_interpolation",
		Short: "interpolation without any interpolation",
		Long: "`$\"...\"` earns its dollar sign by splicing expressions " +
			"into text. Without any, it is a plain string with extra " +
			"syntax; wrapping a lone string expression, it is the " +
			"expression itself.",
		Level: lint.SevHint,
		Tags:  []string{"pedantic"},
	}
}

// interpUnwrap replaces the interpolation span with plainer text.
type interpUnwrap struct {
	span source.Span
	text string
}

func (r uselessStringInterp) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (uselessStringInterp) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		if e.Kind != ast.ExprStringInterp {
			return nil, nil
		}
		src := ctx.ExprText(e)
		if spellingOf(src) != spellInterp {
			return nil, nil
		}

		if !hasSubexprPart(e) {
			d := lint.NewDetection(e.Span, "interpolation without expressions is a plain string").
				WithPrimary("nothing to interpolate").
				WithHelp("drop the leading $")
			if strings.HasPrefix(src, `$"`) && strings.Contains(src, `\(`) {
				// `\(` is an interpolation-only escape; the plain string
				// would reject it.
				return &d, nil
			}
			return &d, interpUnwrap{span: e.Span, text: src[1:]}
		}

		if len(e.List) != 1 {
			return nil, nil
		}
		inner, ok := solePipelineExpr(ctx.WS, e.List[0])
		if !ok || inner.InferOutputType(ctx.WS) != ast.TyString {
			return nil, nil
		}
		text := ctx.SpanText(e.List[0].Span)
		if _, isVar := inner.ExtractDirectVar(); isVar {
			text = ctx.ExprText(inner)
		}
		d := lint.NewDetection(e.Span,
			fmt.Sprintf("interpolation wraps %s without adding text", ctx.ExprText(inner))).
			WithPrimary("redundant wrapper").
			WithHelp("use the expression directly")
		return &d, interpUnwrap{span: e.Span, text: text}
	})
}

func (uselessStringInterp) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	uw, ok := input.(interpUnwrap)
	if !ok {
		return nil
	}
	return lint.Replace("unwrap the interpolation", uw.span, uw.text)
}

func hasSubexprPart(e *ast.Expr) bool {
	for _, part := range e.List {
		if part.Kind == ast.ExprSubexpression {
			return true
		}
	}
	return false
}

// solePipelineExpr unwraps a subexpression holding exactly one pipeline
// with exactly one element.
func solePipelineExpr(ws *ast.WorkingSet, part *ast.Expr) (*ast.Expr, bool) {
	if part == nil || part.Kind != ast.ExprSubexpression {
		return nil, false
	}
	b := ws.Block(part.Block)
	if b == nil || len(b.Pipelines) != 1 || len(b.Pipelines[0].Elements) != 1 {
		return nil, false
	}
	inner := b.Pipelines[0].Elements[0].Expr
	if inner == nil {
		return nil, false
	}
	return inner, true
}
