package ast

// mutatingCommands are builtins whose invocation observably changes the
// world; their presence makes a block unsafe to drop or restructure.
var mutatingCommands = map[string]bool{
	"save": true, "rm": true, "mv": true, "cp": true, "mkdir": true,
	"touch": true, "cd": true, "print": true, "source": true, "exit": true,
}

// HasSideEffects reports whether the block contains an external call, an
// assignment, or a call to a mutating builtin, anywhere in its nested
// blocks.
func (b *Block) HasSideEffects(ws *WorkingSet) bool {
	found := false
	walkBlock(ws, b, func(e, _ *Expr) (bool, bool) {
		switch {
		case e.Kind == ExprExternalCall:
			found = true
		case e.Kind == ExprBinaryOp && e.Op.IsAssignment():
			found = true
		case e.Kind == ExprCall && e.Call != nil:
			if mutatingCommands[e.Call.Name(ws)] {
				found = true
			}
		}
		return found, false
	})
	return found
}

// IsEmptyListBlock reports whether the block is nothing but a `[]`
// literal.
func (b *Block) IsEmptyListBlock() bool {
	if len(b.Pipelines) != 1 || len(b.Pipelines[0].Elements) != 1 {
		return false
	}
	return b.Pipelines[0].Elements[0].Expr.IsEmptyList()
}

// AllElements returns every pipeline element of the block itself, in
// order, without descending into nested blocks.
func (b *Block) AllElements() []*PipelineElement {
	var out []*PipelineElement
	for pi := range b.Pipelines {
		p := &b.Pipelines[pi]
		for ei := range p.Elements {
			out = append(out, &p.Elements[ei])
		}
	}
	return out
}

// AnyElement reports whether any direct element satisfies pred.
func (b *Block) AnyElement(pred func(*PipelineElement) bool) bool {
	for pi := range b.Pipelines {
		p := &b.Pipelines[pi]
		for ei := range p.Elements {
			if pred(&p.Elements[ei]) {
				return true
			}
		}
	}
	return false
}

// ContainsVariables reports whether any variable is read anywhere in the
// block, nested blocks included.
func (b *Block) ContainsVariables(ws *WorkingSet) bool {
	found := false
	walkBlock(ws, b, func(e, _ *Expr) (bool, bool) {
		if e.Kind == ExprVar {
			found = true
			return true, false
		}
		return false, false
	})
	return found
}

// SingleIfCall returns the sole if call when the block body is exactly
// one pipeline holding exactly one if invocation.
func (b *Block) SingleIfCall(ws *WorkingSet) (*Call, bool) {
	if len(b.Pipelines) != 1 || len(b.Pipelines[0].Elements) != 1 {
		return nil, false
	}
	call := b.Pipelines[0].Elements[0].Expr.AsCall()
	if call == nil || !call.IsCommand(ws, "if") {
		return nil, false
	}
	return call, true
}

// ContainsCallInSinglePipeline reports whether the block holds exactly
// one pipeline and that pipeline calls the named command.
func (b *Block) ContainsCallInSinglePipeline(ws *WorkingSet, name string) bool {
	if len(b.Pipelines) != 1 {
		return false
	}
	return b.Pipelines[0].ContainsCallTo(ws, name)
}

// CollectUserFunctionCalls returns every call to a user-defined command
// reachable from the block, in traversal order.
func (b *Block) CollectUserFunctionCalls(ws *WorkingSet) []*Call {
	var out []*Call
	walkBlock(ws, b, func(e, _ *Expr) (bool, bool) {
		if call := e.AsCall(); call != nil {
			if d := ws.Decl(call.Decl); d != nil && !d.Builtin {
				out = append(out, call)
			}
		}
		return false, false
	})
	return out
}

// ScriptUserFunctionCalls returns the user-function calls the block's
// statements make directly, without entering the bodies that definition
// statements introduce. A definition's body only runs when something
// calls it, so it is not a use site on its own.
func (b *Block) ScriptUserFunctionCalls(ws *WorkingSet) []*Call {
	var out []*Call
	walkBlock(ws, b, func(e, _ *Expr) (bool, bool) {
		call := e.AsCall()
		if call == nil {
			return false, false
		}
		if call.DefinedDecl.IsValid() {
			return false, true
		}
		if d := ws.Decl(call.Decl); d != nil && !d.Builtin {
			out = append(out, call)
		}
		return false, false
	})
	return out
}

// TransitivelyCalledFunctions returns the subset of available function
// names reachable from the block through user-function call chains.
func (b *Block) TransitivelyCalledFunctions(ws *WorkingSet, available map[string]BlockID) map[string]struct{} {
	seen := make(map[string]struct{})
	var visit func(*Block)
	visit = func(blk *Block) {
		for _, call := range blk.CollectUserFunctionCalls(ws) {
			name := call.Name(ws)
			bodyID, known := available[name]
			if !known {
				continue
			}
			if _, done := seen[name]; done {
				continue
			}
			seen[name] = struct{}{}
			if body := ws.Block(bodyID); body != nil {
				visit(body)
			}
		}
	}
	visit(b)
	return seen
}

// EachPipeline applies fn to every pipeline reachable from the block:
// the block's own pipelines first, then pipelines of nested blocks in
// traversal order.
func EachPipeline(ws *WorkingSet, b *Block, fn func(*Pipeline)) {
	if b == nil {
		return
	}
	for pi := range b.Pipelines {
		fn(&b.Pipelines[pi])
	}
	walkBlock(ws, b, func(e, _ *Expr) (bool, bool) {
		if e.HasBlock() {
			nested := ws.Block(e.Block)
			if nested != nil {
				for pi := range nested.Pipelines {
					fn(&nested.Pipelines[pi])
				}
			}
		}
		return false, false
	})
}

// DetectInPipelines runs the per-pipeline predicate over every pipeline
// reachable from the block and concatenates the observations.
func DetectInPipelines[T any](ws *WorkingSet, id BlockID, fn func(*Pipeline) []T) []T {
	var out []T
	EachPipeline(ws, ws.Block(id), func(p *Pipeline) {
		out = append(out, fn(p)...)
	})
	return out
}
