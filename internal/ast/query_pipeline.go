package ast

import (
	"nulint/internal/source"
)

// CommandPair is two adjacent pipeline elements whose calls matched a
// pair of predicates. Span covers both calls.
type CommandPair struct {
	First       *Call
	Second      *Call
	FirstIndex  int
	SecondIndex int
	Span        source.Span
}

// ClusterConfig tunes FindCommandClusters. MaxGap is how many
// non-matching elements may sit between two members of one run.
// AllowedGap, when non-empty, restricts gap elements to calls of the
// listed commands; any other element breaks the run.
type ClusterConfig struct {
	MaxGap     int
	AllowedGap []string
}

// CommandCluster is one maximal run of calls to the same command.
type CommandCluster struct {
	Calls   []*Call
	Indexes []int
	Span    source.Span // first member through last member
}

// FindCommandPairs returns every adjacent (i, i+1) element pair where the
// first call satisfies first and the second call satisfies second.
func (p *Pipeline) FindCommandPairs(ws *WorkingSet, first, second func(*Call) bool) []CommandPair {
	var out []CommandPair
	for i := 0; i+1 < len(p.Elements); i++ {
		a := p.Elements[i].Expr.AsCall()
		b := p.Elements[i+1].Expr.AsCall()
		if a == nil || b == nil {
			continue
		}
		if !first(a) || !second(b) {
			continue
		}
		out = append(out, CommandPair{
			First:       a,
			Second:      b,
			FirstIndex:  i,
			SecondIndex: i + 1,
			Span:        a.Span.Cover(b.Span),
		})
	}
	return out
}

// FindCommandClusters returns the maximal runs of calls to name along the
// pipeline. A run keeps growing while the next member is within
// cfg.MaxGap elements and every element in the gap is an allowed one.
// Runs of fewer than two members are not reported.
func (p *Pipeline) FindCommandClusters(ws *WorkingSet, name string, cfg ClusterConfig) []CommandCluster {
	gapAllowed := func(el *PipelineElement) bool {
		if len(cfg.AllowedGap) == 0 {
			return true
		}
		call := el.Expr.AsCall()
		if call == nil {
			return false
		}
		got := call.Name(ws)
		for _, allowed := range cfg.AllowedGap {
			if got == allowed {
				return true
			}
		}
		return false
	}

	var out []CommandCluster
	var current CommandCluster
	gap := 0

	flush := func() {
		if len(current.Calls) >= 2 {
			out = append(out, current)
		}
		current = CommandCluster{}
		gap = 0
	}

	for i := range p.Elements {
		el := &p.Elements[i]
		call := el.Expr.AsCall()
		if call != nil && call.Name(ws) == name {
			if len(current.Calls) == 0 {
				current.Span = call.Span
			} else {
				current.Span = current.Span.Cover(call.Span)
			}
			current.Calls = append(current.Calls, call)
			current.Indexes = append(current.Indexes, i)
			gap = 0
			continue
		}
		if len(current.Calls) == 0 {
			continue
		}
		gap++
		if gap > cfg.MaxGap || !gapAllowed(el) {
			flush()
		}
	}
	flush()
	return out
}

// ContainsCallTo reports whether any element of this pipeline calls the
// named command, scanning inside element expressions but not into
// closures or blocks (those run in their own pipelines).
func (p *Pipeline) ContainsCallTo(ws *WorkingSet, name string) bool {
	for i := range p.Elements {
		if exprCallsShallow(ws, p.Elements[i].Expr, name) {
			return true
		}
	}
	return false
}

func exprCallsShallow(ws *WorkingSet, e *Expr, name string) bool {
	if e == nil {
		return false
	}
	if call := e.AsCall(); call != nil && call.IsCommand(ws, name) {
		return true
	}
	switch e.Kind {
	case ExprBinaryOp:
		return exprCallsShallow(ws, e.Lhs, name) || exprCallsShallow(ws, e.Rhs, name)
	case ExprUnaryNot, ExprSpread, ExprKeyword:
		return exprCallsShallow(ws, e.Inner, name)
	case ExprStringInterp, ExprList:
		for _, item := range e.List {
			if exprCallsShallow(ws, item, name) {
				return true
			}
		}
	case ExprFullCellPath:
		return exprCallsShallow(ws, e.Head, name)
	case ExprCall:
		for i := range e.Call.Args {
			if exprCallsShallow(ws, e.Call.Args[i].Expr, name) {
				return true
			}
		}
	case ExprSubexpression:
		// A subexpression runs inline with the element, so look through it.
		if b := ws.Block(e.Block); b != nil {
			for pi := range b.Pipelines {
				if b.Pipelines[pi].ContainsCallTo(ws, name) {
					return true
				}
			}
		}
	}
	return false
}

// ElementBeforeIgnore returns the element feeding a trailing `ignore`.
func (p *Pipeline) ElementBeforeIgnore(ws *WorkingSet) (*PipelineElement, bool) {
	n := len(p.Elements)
	if n < 2 {
		return nil, false
	}
	last := p.Elements[n-1].Expr.AsCall()
	if last == nil || !last.IsCommand(ws, "ignore") {
		return nil, false
	}
	return &p.Elements[n-2], true
}

// LastElement returns the final element of the pipeline, or nil.
func (p *Pipeline) LastElement() *PipelineElement {
	if len(p.Elements) == 0 {
		return nil
	}
	return &p.Elements[len(p.Elements)-1]
}

// FirstCall returns the call heading the first element, or nil.
func (p *Pipeline) FirstCall() *Call {
	if len(p.Elements) == 0 {
		return nil
	}
	return p.Elements[0].Expr.AsCall()
}
