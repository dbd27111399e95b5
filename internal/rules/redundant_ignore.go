package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/effects"
	"nulint/internal/lint"
)

// redundantIgnore flags `| ignore` after commands that never write to
// stdout. There is nothing to discard.
type redundantIgnore struct{}

func (redundantIgnore) Info() lint.Info {
	return lint.Info{
		ID:    "redundant_ignore",
		Short: "ignore after a command with no stdout",
		Long: "`ignore` exists to swallow output. Commands that only act " +
			"on the world and keep stdout silent leave it nothing to do.",
		Level: lint.SevWarn,
	}
}

func (redundantIgnore) Detect(ctx *lint.Context) []lint.Detection {
	return ast.DetectInPipelines(ctx.WS, ctx.Root, func(p *ast.Pipeline) []lint.Detection {
		el, ok := p.ElementBeforeIgnore(ctx.WS)
		if !ok || el.Redirect != nil {
			return nil
		}
		ext := el.Expr.AsExternalCall()
		if ext == nil {
			return nil
		}
		name, ok := externalName(ext)
		if !ok || !effects.HasExternalSideEffect(ctx.WS, name, ext.Args, effects.NoDataInStdout) {
			return nil
		}
		last := p.LastElement()
		return []lint.Detection{
			lint.NewDetection(last.Expr.Span,
				fmt.Sprintf("%s writes nothing to stdout; ignore has nothing to drop", name)).
				WithPrimary("redundant ignore").
				WithLabel("silent command", ext.Span).
				WithHelp("drop the | ignore stage"),
		}
	})
}
