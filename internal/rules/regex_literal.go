package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// regexMatchOnLiteral flags `=~` and `!~` against patterns that carry no
// regex metacharacters. The regex engine is overhead for a plain
// substring test.
type regexMatchOnLiteral struct{}

func (regexMatchOnLiteral) Info() lint.Info {
	return lint.Info{
		ID:    "regex_match_on_literal",
		Short: "regex operator with a plain-text pattern",
		Long: "`=~` compiles its right side as a regular expression. When " +
			"the pattern has no metacharacters the match degenerates to a " +
			"substring test, which `str contains` states without the " +
			"compile step.",
		Level: lint.SevWarn,
	}
}

// containsRewrite replaces the whole comparison with a str contains
// pipeline.
type containsRewrite struct {
	span source.Span
	text string
}

func (r regexMatchOnLiteral) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (regexMatchOnLiteral) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		if e.Kind != ast.ExprBinaryOp {
			return nil, nil
		}
		if e.Op != ast.OpRegexMatch && e.Op != ast.OpNotRegexMatch {
			return nil, nil
		}
		pat := e.Rhs
		if pat == nil || !pat.IsStringish() || containsRegexSpecialChars(pat.Str) {
			return nil, nil
		}
		patText := ctx.ExprText(pat)
		rewrite := fmt.Sprintf("(%s | str contains %s)", ctx.ExprText(e.Lhs), patText)
		if e.Op == ast.OpNotRegexMatch {
			rewrite = "not " + rewrite
		}
		d := lint.NewDetection(e.OpSpan,
			fmt.Sprintf("pattern %s has no regex metacharacters", patText)).
			WithPrimary("regex operator").
			WithLabel("matches as plain text", pat.Span).
			WithHelp("use str contains for substring tests")
		return &d, containsRewrite{span: e.Span, text: rewrite}
	})
}

func (regexMatchOnLiteral) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	cr, ok := input.(containsRewrite)
	if !ok {
		return nil
	}
	return lint.Replace("test with str contains", cr.span, cr.text)
}
