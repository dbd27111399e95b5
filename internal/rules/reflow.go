package rules

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// reflowWidePipelines breaks single-line pipelines that overrun the
// configured column limit, one stage per line. pipeline_placement
// chooses whether continuation lines lead or trail with the pipe.
type reflowWidePipelines struct{}

func (reflowWidePipelines) Info() lint.Info {
	return lint.Info{
		ID:    "reflow_wide_pipelines",
		Short: "pipeline overruns the column limit",
		Long: "Long pipelines read best one stage per line. The limit and " +
			"the pipe placement come from max_pipeline_length and " +
			"pipeline_placement.",
		Level: lint.SevHint,
		Tags:  []string{"pedantic"},
	}
}

// reflowPlan replaces the pipeline with its broken-up spelling.
type reflowPlan struct {
	span source.Span
	text string
}

func (r reflowWidePipelines) Detect(ctx *lint.Context) []lint.Detection {
	return lint.Detections(r.DetectWithFix(ctx))
}

func (reflowWidePipelines) DetectWithFix(ctx *lint.Context) []lint.DetectionWithFix {
	max := ctx.Config.MaxPipelineLength
	if max <= 0 {
		return nil
	}
	return ast.DetectInPipelines(ctx.WS, ctx.Root, func(p *ast.Pipeline) []lint.DetectionWithFix {
		if len(p.Elements) < 2 || hasRedirects(p) {
			return nil
		}
		sp := p.Span()
		if strings.Contains(ctx.SpanText(sp), "\n") {
			return nil
		}
		files := ctx.WS.Files
		f, ok := files.FileFor(sp)
		if !ok {
			return nil
		}
		lineText := f.GetLine(files.LineAt(sp.Start))
		width := runewidth.StringWidth(lineText)
		if width <= max {
			return nil
		}

		d := lint.NewDetection(sp, fmt.Sprintf("line runs %d columns; the limit is %d", width, max)).
			WithPrimary("overlong pipeline").
			WithHelp(placementHelp(ctx.Config.PipelinePlacement))
		return []lint.DetectionWithFix{{
			Detection: d,
			Input: reflowPlan{
				span: sp,
				text: brokenPipeline(ctx, p, indentOf(lineText)),
			},
		}}
	})
}

func (reflowWidePipelines) Fix(ctx *lint.Context, input lint.FixInput) *lint.Fix {
	plan, ok := input.(reflowPlan)
	if !ok {
		return nil
	}
	return lint.Replace("one stage per line", plan.span, plan.text)
}

// brokenPipeline renders the pipeline one stage per line at the given
// indent, honouring the configured pipe placement.
func brokenPipeline(ctx *lint.Context, p *ast.Pipeline, indent string) string {
	texts := make([]string, len(p.Elements))
	for i := range p.Elements {
		texts[i] = ctx.ExprText(p.Elements[i].Expr)
	}
	if ctx.Config.PipelinePlacement == lint.PlacementEnd {
		return strings.Join(texts, " |\n"+indent)
	}
	return strings.Join(texts, "\n"+indent+"| ")
}

func placementHelp(pl lint.Placement) string {
	if pl == lint.PlacementEnd {
		return "break after each pipe so every continued line ends with |"
	}
	return "break before each pipe so every continuation line starts with |"
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func hasRedirects(p *ast.Pipeline) bool {
	for i := range p.Elements {
		if p.Elements[i].Redirect != nil {
			return true
		}
	}
	return false
}
