package ast

// WalkAction controls FindMap's descent at each visited expression.
type WalkAction uint8

const (
	// WalkContinue keeps descending into the node's children.
	WalkContinue WalkAction = iota
	// WalkStop prunes this subtree; the walk continues elsewhere.
	WalkStop
	// WalkFound ends the whole walk with the predicate's value.
	WalkFound
)

// walk drives a depth-first pre-order visit over every expression
// reachable from the block, descending into nested blocks through the
// working set. visit receives the node and its parent expression (nil at
// pipeline roots) and returns (abort, prune): abort ends the whole walk,
// prune skips the node's children. Termination is guaranteed because
// blocks reference each other by id and the parser never creates a block
// that reaches itself.
func walk(ws *WorkingSet, id BlockID, visit func(e, parent *Expr) (abort, prune bool)) bool {
	return walkBlock(ws, ws.Block(id), visit)
}

func walkBlock(ws *WorkingSet, b *Block, visit func(e, parent *Expr) (abort, prune bool)) bool {
	if b == nil {
		return false
	}
	for pi := range b.Pipelines {
		p := &b.Pipelines[pi]
		for ei := range p.Elements {
			el := &p.Elements[ei]
			if walkExpr(ws, el.Expr, nil, visit) {
				return true
			}
			if r := el.Redirect; r != nil {
				if r.Out != nil && walkExpr(ws, r.Out.File, nil, visit) {
					return true
				}
				if r.Err != nil && walkExpr(ws, r.Err.File, nil, visit) {
					return true
				}
			}
		}
	}
	return false
}

func walkExpr(ws *WorkingSet, e, parent *Expr, visit func(e, parent *Expr) (abort, prune bool)) bool {
	if e == nil {
		return false
	}
	abort, prune := visit(e, parent)
	if abort {
		return true
	}
	if prune {
		return false
	}

	step := func(child *Expr) bool {
		return walkExpr(ws, child, e, visit)
	}

	switch e.Kind {
	case ExprBinaryOp:
		if step(e.Lhs) || step(e.Rhs) {
			return true
		}
	case ExprUnaryNot, ExprSpread, ExprKeyword, ExprValueWithUnit, ExprVarDecl:
		if step(e.Inner) {
			return true
		}
	case ExprRange:
		if step(e.From) || step(e.Step) || step(e.To) {
			return true
		}
	case ExprStringInterp, ExprList:
		for _, item := range e.List {
			if step(item) {
				return true
			}
		}
	case ExprRecord:
		for _, f := range e.Record {
			if step(f.Key) || step(f.Val) {
				return true
			}
		}
	case ExprFullCellPath:
		if step(e.Head) {
			return true
		}
	case ExprCall:
		if e.Call != nil {
			for i := range e.Call.Args {
				if step(e.Call.Args[i].Expr) {
					return true
				}
			}
		}
	case ExprExternalCall:
		if e.Extern != nil {
			if step(e.Extern.Head) {
				return true
			}
			for i := range e.Extern.Args {
				if step(e.Extern.Args[i].Expr) {
					return true
				}
			}
		}
	case ExprMatchBlock:
		for _, arm := range e.Arms {
			if step(arm.Pattern) || step(arm.Guard) || step(arm.Body) {
				return true
			}
		}
	case ExprBlock, ExprClosure, ExprSubexpression, ExprRowCondition:
		if e.Block.IsValid() && walk(ws, e.Block, visit) {
			return true
		}
	}
	return false
}

// FlatMap runs a depth-first pre-order walk from the block; at every
// expression pred contributes zero or more observations, appended in
// visit order.
func FlatMap[T any](ws *WorkingSet, id BlockID, pred func(*Expr) []T) []T {
	var out []T
	walk(ws, id, func(e, _ *Expr) (bool, bool) {
		out = append(out, pred(e)...)
		return false, false
	})
	return out
}

// FindMap walks depth-first until pred answers WalkFound, returning its
// value. WalkStop prunes the current subtree without ending the walk.
func FindMap[T any](ws *WorkingSet, id BlockID, pred func(*Expr) (T, WalkAction)) (T, bool) {
	var result T
	found := false
	walk(ws, id, func(e, _ *Expr) (bool, bool) {
		v, act := pred(e)
		switch act {
		case WalkFound:
			result = v
			found = true
			return true, false
		case WalkStop:
			return false, true
		default:
			return false, false
		}
	})
	return result, found
}

// TraverseWithParent is the same walk with the parent expression exposed;
// pipeline roots see a nil parent. Rules use it to tell value position
// from command position.
func TraverseWithParent(ws *WorkingSet, id BlockID, visit func(e, parent *Expr)) {
	walk(ws, id, func(e, parent *Expr) (bool, bool) {
		visit(e, parent)
		return false, false
	})
}

// WalkExprs visits every expression reachable from the block. Returning
// false from visit prunes that node's children.
func WalkExprs(ws *WorkingSet, id BlockID, visit func(*Expr) bool) {
	walk(ws, id, func(e, _ *Expr) (bool, bool) {
		return false, !visit(e)
	})
}

// CountNodes returns the number of expressions reachable from the block.
// The fix-convergence bound in the engine derives from it.
func CountNodes(ws *WorkingSet, id BlockID) int {
	n := 0
	WalkExprs(ws, id, func(*Expr) bool {
		n++
		return true
	})
	return n
}
