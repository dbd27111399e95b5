package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// compoundAssignment folds `$x = $x + 1` style updates into the
// compound operator Nushell already has for them.
type compoundAssignment struct{}

func (compoundAssignment) Info() lint.Info {
	return lint.Info{
		ID:    "compound_assignment",
		Short: "assignment recomputes its own target",
		Long: "An assignment whose right side starts from the assigned " +
			"variable is an update in disguise. The compound operators " +
			"(+=, -=, *=, /=, ++=) say so without repeating the variable.",
		Level: lint.SevWarn,
	}
}

// compoundFold is the fix input: the span from the `=` through the start
// of the final operand, and the operator that replaces it.
type compoundFold struct {
	span source.Span
	op   string
}

func (r compoundAssignment) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (compoundAssignment) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		if e.Kind != ast.ExprBinaryOp || e.Op != ast.OpAssign {
			return nil, nil
		}
		rhs := e.Rhs
		if rhs == nil || rhs.Kind != ast.ExprBinaryOp {
			return nil, nil
		}
		compound := rhs.Op.CompoundAssign()
		if compound == ast.OpInvalid {
			return nil, nil
		}
		target, ok := e.Lhs.ExtractDirectVar()
		if !ok || !rhs.Lhs.MatchesVar(target) {
			return nil, nil
		}
		name := ctx.ExprText(e.Lhs)
		d := lint.NewDetection(e.Lhs.Span,
			fmt.Sprintf("%s is read back just to be reassigned", name)).
			WithPrimary("updated variable").
			WithLabel("recomputed from itself", rhs.Lhs.Span).
			WithHelp(fmt.Sprintf("write `%s %s %s`", name, compound, ctx.ExprText(rhs.Rhs)))
		return &d, compoundFold{
			span: source.NewSpan(e.OpSpan.Start, rhs.Rhs.Span.Start),
			op:   compound.String(),
		}
	})
}

func (compoundAssignment) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	fold, ok := input.(compoundFold)
	if !ok {
		return nil
	}
	return lint.NewFix("use the compound operator",
		lint.Replacement{Span: fold.span, NewText: fold.op + " "})
}
