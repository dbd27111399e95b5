package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// reverseFirstToLast collapses `reverse | first` into `last` and the
// mirrored pair into `first`. With a count argument the orders differ,
// so those instances are reported without a rewrite.
type reverseFirstToLast struct{}

func (reverseFirstToLast) Info() lint.Info {
	return lint.Info{
		ID:    "reverse_first_to_last",
		Short: "reverse feeding first is last",
		Long: "Reversing a stream just to take its head walks every row " +
			"to reach the other end. `last` (or `first`, for the mirrored " +
			"pair) reads from that end directly.",
		Level: lint.SevWarn,
	}
}

// stageMerge replaces both pipeline stages with one command.
type stageMerge struct {
	span source.Span
	text string
}

func (r reverseFirstToLast) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (reverseFirstToLast) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	return ast.DetectInPipelines(ctx.WS, ctx.Root, func(p *ast.Pipeline) []lint.DetectionWithFix {
		pairs := p.FindCommandPairs(ctx.WS,
			func(c *ast.Call) bool {
				return c.IsCommand(ctx.WS, "reverse") && len(c.Args) == 0
			},
			func(c *ast.Call) bool {
				return c.IsCommand(ctx.WS, "first") || c.IsCommand(ctx.WS, "last")
			})
		var out []lint.DetectionWithFix
		for _, pair := range pairs {
			taker := pair.Second.Name(ctx.WS)
			counterpart := "last"
			if taker == "last" {
				counterpart = "first"
			}
			end := "front"
			if taker == "last" {
				end = "back"
			}
			d := lint.NewDetection(pair.Span,
				fmt.Sprintf("reverse feeding %s is %s read from the other end", taker, counterpart)).
				WithPrimary("two stages for one read").
				WithLabel("walks the whole stream", pair.First.Span).
				WithLabel("then takes from the "+end, pair.Second.Span)

			if len(pair.Second.PositionalArgs()) > 0 {
				// `reverse | first n` yields the rows reversed; `last n`
				// keeps original order. Not the same stream.
				d = d.WithHelp(fmt.Sprintf("%s n takes the same rows in original order; keep reverse only if the reversed order matters", counterpart))
				out = append(out, lint.DetectionWithFix{Detection: d})
				continue
			}
			d = d.WithHelp("replace both stages with " + counterpart)
			out = append(out, lint.DetectionWithFix{
				Detection: d,
				Input:     stageMerge{span: pair.Span, text: counterpart},
			})
		}
		return out
	})
}

func (reverseFirstToLast) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	merge, ok := input.(stageMerge)
	if !ok {
		return nil
	}
	return lint.Replace("read from the other end with "+merge.text, merge.span, merge.text)
}
