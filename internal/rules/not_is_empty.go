package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// notIsEmpty flags `not (... | is-empty)` and offers the complementary
// command instead. The mirrored negation of `is-not-empty` folds back
// the same way.
type notIsEmpty struct{}

func (notIsEmpty) Info() lint.Info {
	return lint.Info{
		ID:    "not_is_empty_to_is_not_empty",
		Short: "negated emptiness check spells its own inverse",
		Long: "is-empty and is-not-empty are a complementary pair. Negating " +
			"one with `not` hides the question being asked; the other " +
			"command states it directly.",
		Level: lint.SevWarn,
	}
}

// negatedPair carries the spans the fix rewrites: the `not` prefix to
// drop and the command head to respell.
type negatedPair struct {
	prefix      source.Span
	head        source.Span
	counterpart string
}

func (r notIsEmpty) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (notIsEmpty) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		call, ok := negatedEmptinessCall(ctx.WS, e)
		if !ok {
			return nil, nil
		}
		name := call.Name(ctx.WS)
		counterpart := "is-not-empty"
		if name == "is-not-empty" {
			counterpart = "is-empty"
		}
		notSpan := source.NewSpan(e.Span.Start, e.Span.Start+3)
		d := lint.NewDetection(notSpan,
			fmt.Sprintf("negation of %s has a name: %s", name, counterpart)).
			WithPrimary("this negation").
			WithLabel("inverted check", call.Head).
			WithHelp(fmt.Sprintf("replace `not (... | %s)` with `(... | %s)`", name, counterpart))
		return &d, negatedPair{
			prefix:      source.NewSpan(e.Span.Start, e.Inner.Span.Start),
			head:        call.Head,
			counterpart: counterpart,
		}
	})
}

func (notIsEmpty) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	p, ok := input.(negatedPair)
	if !ok {
		return nil
	}
	return lint.NewFix("drop the negation and use "+p.counterpart,
		lint.Replacement{Span: p.prefix},
		lint.Replacement{Span: p.head, NewText: p.counterpart},
	)
}

// negatedEmptinessCall matches `not ( ... )` where the subexpression is a
// single pipeline ending in is-empty or is-not-empty.
func negatedEmptinessCall(ws *ast.WorkingSet, e *ast.Expr) (*ast.Call, bool) {
	if e.Kind != ast.ExprUnaryNot || e.Inner == nil || e.Inner.Kind != ast.ExprSubexpression {
		return nil, false
	}
	b := ws.Block(e.Inner.Block)
	if b == nil || len(b.Pipelines) != 1 {
		return nil, false
	}
	last := b.Pipelines[0].LastElement()
	if last == nil {
		return nil, false
	}
	call := last.Expr.AsCall()
	if call == nil {
		return nil, false
	}
	switch call.Name(ws) {
	case "is-empty", "is-not-empty":
		return call, true
	}
	return nil, false
}
