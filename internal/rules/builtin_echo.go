package rules

import (
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// useBuiltinEcho replaces external echo invocations with the builtin.
// The external forks a process to produce text the shell already knows
// how to yield; arguments pass through unchanged.
type useBuiltinEcho struct{}

func (useBuiltinEcho) Info() lint.Info {
	return lint.Info{
		ID:    "use_builtin_echo",
		Short: "external echo shadows the builtin",
		Long: "`^echo` runs /bin/echo and hands back flat text. The echo " +
			"builtin returns its arguments as values, keeps structure, " +
			"and costs no process.",
		Level: lint.SevWarn,
	}
}

// headSwap respells the external head as the builtin name.
type headSwap struct {
	span source.Span
}

func (r useBuiltinEcho) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (useBuiltinEcho) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ctx.DetectWithFixData(func(e *ast.Expr) (*lint.Detection, lint.FixInput) {
		ext := e.AsExternalCall()
		if ext == nil {
			return nil, nil
		}
		name, ok := externalName(ext)
		if !ok || (name != "echo" && !strings.HasSuffix(name, "/echo")) {
			return nil, nil
		}
		head := source.NewSpan(e.Span.Start, ext.Head.Span.End)
		d := lint.NewDetection(head, "external echo forks a process for what the builtin does in place").
			WithPrimary("external invocation").
			WithHelp("drop the caret; the echo builtin passes the same arguments through as values")
		if hasFlagArgs(ext) {
			// Flags like -n belong to /bin/echo; the builtin would treat
			// them as data.
			d = d.WithHelp("this invocation passes flags; rewrite by hand with print")
			return &d, nil
		}
		return &d, headSwap{span: head}
	})
}

func (useBuiltinEcho) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	swap, ok := input.(headSwap)
	if !ok {
		return nil
	}
	return lint.Replace("use the echo builtin", swap.span, "echo")
}

// hasFlagArgs reports whether any argument is a bare word starting with
// a dash.
func hasFlagArgs(ext *ast.ExternalCall) bool {
	for _, a := range ext.Args {
		if a.Expr != nil && a.Expr.IsStringish() && strings.HasPrefix(a.Expr.Str, "-") {
			return true
		}
	}
	return false
}
