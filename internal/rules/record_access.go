package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// unsafeDynamicRecordAccess flags `get` with a computed key and no
// optional flag. A key held in a variable can always be absent at
// runtime; `get -o` turns the hard error into null. With
// explicit_optional_access set, literal string keys are held to the
// same standard.
type unsafeDynamicRecordAccess struct{}

func (unsafeDynamicRecordAccess) Info() lint.Info {
	return lint.Info{
		ID:    "unsafe_dynamic_record_access",
		Short: "get with a dynamic key and no optional flag",
		Long: "A key that arrives in a variable is not checked against the " +
			"record until runtime, so a plain `get` turns every missing key " +
			"into an error. `get -o` yields null for absent keys and lets " +
			"the pipeline decide what missing means.",
		Level: lint.SevWarn,
		Tags:  []string{"safety"},
	}
}

// optionalFlagInsert records where the fix adds ` -o`.
type optionalFlagInsert struct {
	at uint32
}

func (r unsafeDynamicRecordAccess) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (unsafeDynamicRecordAccess) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		call := e.AsCall()
		if call == nil || !call.IsCommand(ctx.WS, "get") || call.IsGetOptional(ctx.WS) {
			return nil, nil
		}
		key := call.FirstPositionalArg()
		if key == nil {
			return nil, nil
		}
		dynamic := key.ContainsVariables(ctx.WS)
		if !dynamic && !ctx.Config.ExplicitOptionalAccess {
			return nil, nil
		}
		if !dynamic && hasIntPathMember(key) {
			// Integer indexing is the index rule's business.
			return nil, nil
		}
		msg := fmt.Sprintf("dynamic key %s raises when the record lacks it", ctx.ExprText(key))
		if !dynamic {
			msg = fmt.Sprintf("key %s raises when the record lacks it", ctx.ExprText(key))
		}
		d := lint.NewDetection(call.Head, msg).
			WithPrimary("unchecked access").
			WithLabel("key computed here", key.Span).
			WithHelp("pass -o to get null for missing keys instead of an error")
		return &d, optionalFlagInsert{at: call.Head.End}
	})
}

func (unsafeDynamicRecordAccess) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	ins, ok := input.(optionalFlagInsert)
	if !ok {
		return nil
	}
	return lint.NewFix("make the access optional with -o",
		lint.Replacement{Span: source.NewSpan(ins.at, ins.at), NewText: " -o"})
}

// hasIntPathMember reports whether the expression is a cell path with an
// integer member anywhere along it.
func hasIntPathMember(e *ast.Expr) bool {
	var members []ast.PathMember
	switch e.Kind {
	case ast.ExprCellPath:
		members = e.Path
	case ast.ExprFullCellPath:
		members = e.Path
	default:
		return false
	}
	for _, m := range members {
		if m.Kind == ast.PathInt {
			return true
		}
	}
	return false
}
