package rules

import (
	"fmt"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/effects"
	"nulint/internal/lint"
)

// dangerousExternal reports external invocations whose command and
// argument shape the effect tables class as dangerous: recursive
// removals, disk writers, and their relatives.
type dangerousExternal struct{}

func (dangerousExternal) Info() lint.Info {
	return lint.Info{
		ID:    "dangerous_external_command",
		Short: "external invocation can destroy data",
		Long: "Some commands have no undo. When the argument shape matches " +
			"a destructive mode, the call deserves a second look " +
			"before it ships in a script.",
		Level: lint.SevError,
		Tags:  []string{"safety"},
	}
}

func (dangerousExternal) Detect(ctx *lint.Context) []lint.Detection {
	return ctx.Detect(func(e *ast.Expr) *lint.Detection {
		ext := e.AsExternalCall()
		if ext == nil {
			return nil
		}
		name, ok := externalName(ext)
		if !ok || !effects.HasExternalSideEffect(ctx.WS, name, ext.Args, effects.Dangerous) {
			return nil
		}
		msg := fmt.Sprintf("this %s invocation can destroy data irrecoverably", name)
		if reasons := commonEffects(ctx.WS, name, ext.Args); reasons != "" {
			msg = fmt.Sprintf("this %s invocation can destroy data irrecoverably (%s)", name, reasons)
		}
		d := lint.NewDetection(ext.Span, msg).
			WithPrimary("destructive call").
			WithHelp("double-check the target; prefer a dry-run flag or a guarded wrapper")
		return &d
	})
}

// commonEffects names the whole-command effects of the invocation, the
// data-flow ones filtered out.
func commonEffects(ws *ast.WorkingSet, name string, args []ast.ExternalArg) string {
	var names []string
	for _, eff := range effects.ActiveEffects(ws, name, args) {
		if eff.Common() {
			names = append(names, eff.String())
		}
	}
	return strings.Join(names, ", ")
}
