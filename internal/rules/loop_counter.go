package rules

import (
	"fmt"

	"nulint/internal/ast"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// loopCounter finds mutable variables that count loop iterations by
// hand. `enumerate` carries an index alongside every item and needs no
// mutation.
type loopCounter struct{}

func (loopCounter) Info() lint.Info {
	return lint.Info{
		ID:    "manual_loop_counter",
		Short: "loop counts its iterations by hand",
		Long: "A `mut` counter bumped once per iteration duplicates what " +
			"`enumerate` provides. The pipeline form keeps the index and " +
			"the item together and drops the mutable state.",
		Level: lint.SevHint,
		Tags:  []string{"pedantic"},
	}
}

// loopBody pairs a loop's body block with the loop head for labelling.
type loopBody struct {
	block ast.BlockID
	head  source.Span
}

func (loopCounter) Detect(ctx *lint.Context) []lint.Detection {
	var bodies []loopBody
	ctx.TraverseWithParent(func(e, _ *ast.Expr) {
		call := e.AsCall()
		if call == nil {
			return
		}
		// while and loop stay out: a hand-kept counter is often their
		// termination condition, and enumerate has no input to offer.
		switch call.Name(ctx.WS) {
		case "for", "each", "par-each":
		default:
			return
		}
		for _, arg := range call.PositionalArgs() {
			if id, ok := arg.ExtractBlockID(); ok {
				bodies = append(bodies, loopBody{block: id, head: call.Head})
			}
		}
	})

	var out []lint.Detection
	for _, body := range bodies {
		b := ctx.WS.Block(body.block)
		if b == nil {
			continue
		}
		for _, el := range b.AllElements() {
			inc := el.Expr
			if inc == nil || inc.Kind != ast.ExprBinaryOp || !inc.Op.IsAssignment() {
				continue
			}
			id, ok := inc.Lhs.ExtractDirectVar()
			if !ok {
				continue
			}
			v := ctx.WS.Variable(id)
			if v == nil || !v.Mutable || v.DeclSpan.Start >= b.Span.Start {
				continue
			}
			name := ctx.WS.VarName(id)
			if !inc.IsCounterIncrement(ctx.WS, name) {
				continue
			}
			out = append(out, lint.NewDetection(inc.Span,
				fmt.Sprintf("$%s counts iterations by hand", name)).
				WithPrimary("manual counter").
				WithLabel("inside this loop", body.head).
				WithHelp("pipe the input through enumerate and read .index instead"))
		}
	}
	return out
}
