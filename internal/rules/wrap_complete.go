package rules

import (
	"fmt"
	"strings"

	"nulint/internal/ast"
	"nulint/internal/effects"
	"nulint/internal/lint"
)

// wrapExternalWithComplete flags external commands whose output feeds
// further pipeline stages with nothing capturing their exit status. A
// failing external then leaks error text into the data stream. The
// diagnostic stays silent only when a later `complete` stage visibly
// takes the output; anything subtler cannot be shown safe statically.
type wrapExternalWithComplete struct{}

func (wrapExternalWithComplete) Info() lint.Info {
	return lint.Info{
		ID:    "wrap_external_with_complete",
		Short: "external feeds the pipeline without exit-code capture",
		Long: "When an external command fails, its exit code vanishes " +
			"unless something records it; downstream stages happily parse " +
			"whatever landed on stdout. Piping through `complete` turns " +
			"the run into a record with exit_code, stdout, and stderr.",
		Level: lint.SevWarn,
		Tags:  []string{"safety"},
	}
}

func (wrapExternalWithComplete) Detect(ctx *lint.Context) []lint.Detection {
	return ast.DetectInPipelines(ctx.WS, ctx.Root, func(p *ast.Pipeline) []lint.Detection {
		var out []lint.Detection
		for i := range p.Elements {
			el := &p.Elements[i]
			ext := el.Expr.AsExternalCall()
			if ext == nil || i == len(p.Elements)-1 || el.Redirect != nil {
				continue
			}
			name, ok := externalName(ext)
			if !ok || effects.IsExternalCommandSafe(name) {
				continue
			}
			if guardedDownstream(ctx.WS, p, i) {
				continue
			}
			msg := fmt.Sprintf("%s can fail here and nothing would notice", name)
			if risky := riskyEffects(ctx.WS, name, ext.Args); risky != "" {
				msg = fmt.Sprintf("%s (%s) can fail here and nothing would notice", name, risky)
			}
			out = append(out, lint.NewDetection(ext.Span, msg).
				WithPrimary("unguarded external").
				WithLabel("consumes its output", p.Elements[i+1].Expr.Span).
				WithHelp(fmt.Sprintf("pipe through complete and branch on exit_code: ^%s ... | complete", name)))
		}
		return out
	})
}

// guardedDownstream reports whether a later stage visibly takes charge
// of the external's output: `complete` captures it, `ignore` declares it
// unwanted.
func guardedDownstream(ws *ast.WorkingSet, p *ast.Pipeline, after int) bool {
	for j := after + 1; j < len(p.Elements); j++ {
		call := p.Elements[j].Expr.AsCall()
		if call == nil {
			continue
		}
		switch call.Name(ws) {
		case "complete", "ignore":
			return true
		}
	}
	return false
}

// externalName resolves the command name of an external call; dynamic
// heads have none.
func externalName(ext *ast.ExternalCall) (string, bool) {
	if ext.Head == nil || !ext.Head.IsStringish() || ext.Head.Str == "" {
		return "", false
	}
	return ext.Head.Str, true
}

// riskyEffects names the active effects that make the invocation worth
// guarding, or "" when the tables carry none.
func riskyEffects(ws *ast.WorkingSet, name string, args []ast.ExternalArg) string {
	var names []string
	for _, eff := range effects.ActiveEffects(ws, name, args) {
		switch eff {
		case effects.StreamingOutput, effects.SlowStreamingOutput, effects.NoDataInStdout:
			continue
		}
		names = append(names, eff.String())
	}
	return strings.Join(names, ", ")
}
