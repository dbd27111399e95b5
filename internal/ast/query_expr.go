package ast

// Capability accessors rules use instead of matching parser variants
// directly. Everything here is read-only over the working set.

// AsCall returns the call payload for ExprCall nodes, nil otherwise.
func (e *Expr) AsCall() *Call {
	if e == nil || e.Kind != ExprCall {
		return nil
	}
	return e.Call
}

// AsExternalCall returns the payload for ExprExternalCall nodes.
func (e *Expr) AsExternalCall() *ExternalCall {
	if e == nil || e.Kind != ExprExternalCall {
		return nil
	}
	return e.Extern
}

// IsEmptyList reports whether the node is a `[]` literal.
func (e *Expr) IsEmptyList() bool {
	return e != nil && e.Kind == ExprList && len(e.List) == 0
}

// IsLikelyPure reports whether evaluating the node cannot observably
// change the world: literals, variable reads, cell paths, operators over
// pure operands. Calls, external calls, and block-carrying nodes count as
// impure; that errs toward keeping diagnostics quiet rather than wrong.
func (e *Expr) IsLikelyPure() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ExprGarbage, ExprCall, ExprExternalCall,
		ExprBlock, ExprClosure, ExprSubexpression, ExprRowCondition, ExprMatchBlock:
		return false
	case ExprVar, ExprVarDecl:
		return true
	case ExprBinaryOp:
		return !e.Op.IsAssignment() && e.Lhs.IsLikelyPure() && e.Rhs.IsLikelyPure()
	case ExprUnaryNot, ExprSpread, ExprKeyword, ExprValueWithUnit:
		return e.Inner == nil || e.Inner.IsLikelyPure()
	case ExprRange:
		for _, part := range []*Expr{e.From, e.Step, e.To} {
			if part != nil && !part.IsLikelyPure() {
				return false
			}
		}
		return true
	case ExprStringInterp, ExprList:
		for _, item := range e.List {
			if !item.IsLikelyPure() {
				return false
			}
		}
		return true
	case ExprRecord:
		for _, f := range e.Record {
			if f.Key != nil && !f.Key.IsLikelyPure() {
				return false
			}
			if f.Val != nil && !f.Val.IsLikelyPure() {
				return false
			}
		}
		return true
	case ExprCellPath:
		return true
	case ExprFullCellPath:
		return e.Head == nil || e.Head.IsLikelyPure()
	default:
		return e.IsLiteral()
	}
}

// ContainsVariables reports whether any variable reference occurs in the
// subtree, descending into nested blocks.
func (e *Expr) ContainsVariables(ws *WorkingSet) bool {
	found := false
	walkExpr(ws, e, nil, func(n, _ *Expr) (bool, bool) {
		if n.Kind == ExprVar {
			found = true
			return true, false
		}
		return false, false
	})
	return found
}

// ExtractVariableName returns the bare name (no `$` sigil) when the node
// is a plain variable reference or declaration.
func (e *Expr) ExtractVariableName(ws *WorkingSet) (string, bool) {
	if e == nil {
		return "", false
	}
	switch e.Kind {
	case ExprVar, ExprVarDecl:
		name := ws.VarName(e.Var)
		return name, name != ""
	case ExprFullCellPath:
		if len(e.Path) == 0 && e.Head != nil {
			return e.Head.ExtractVariableName(ws)
		}
	}
	return "", false
}

// ExtractDirectVar returns the variable id for a plain `$x` reference.
func (e *Expr) ExtractDirectVar() (VarID, bool) {
	if e == nil {
		return NoVarID, false
	}
	if e.Kind == ExprVar {
		return e.Var, true
	}
	if e.Kind == ExprFullCellPath && len(e.Path) == 0 && e.Head != nil {
		return e.Head.ExtractDirectVar()
	}
	return NoVarID, false
}

// MatchesVar reports whether the node reads exactly the given variable.
func (e *Expr) MatchesVar(id VarID) bool {
	got, ok := e.ExtractDirectVar()
	return ok && got == id
}

// ExtractBlockID returns the referenced block for block-carrying nodes.
func (e *Expr) ExtractBlockID() (BlockID, bool) {
	if e != nil && e.HasBlock() {
		return e.Block, true
	}
	return NoBlockID, false
}

// ExtractIntValue returns the integer behind the node: a bare int literal
// or the magnitude of a unit literal like `100kb`.
func (e *Expr) ExtractIntValue() (int64, bool) {
	if e == nil {
		return 0, false
	}
	switch e.Kind {
	case ExprInt:
		return e.Int, true
	case ExprValueWithUnit:
		if e.Inner != nil && e.Inner.Kind == ExprInt {
			return e.Inner.Int, true
		}
	}
	return 0, false
}

// InferOutputType resolves the node's static output type, chasing call
// declarations and variable declarations where the node itself carries
// TyAny.
func (e *Expr) InferOutputType(ws *WorkingSet) Type {
	if e == nil {
		return TyAny
	}
	if e.Ty != TyAny {
		return e.Ty
	}
	switch e.Kind {
	case ExprCall:
		if e.Call != nil {
			if d := ws.Decl(e.Call.Decl); d != nil {
				return d.OutputType
			}
		}
	case ExprVar:
		if v := ws.Variable(e.Var); v != nil {
			return v.Ty
		}
	case ExprBinaryOp:
		if e.Op.IsComparison() || e.Op == OpAnd || e.Op == OpOr || e.Op == OpXor {
			return TyBool
		}
	case ExprUnaryNot:
		return TyBool
	case ExprSubexpression:
		if b := ws.Block(e.Block); b != nil && len(b.Pipelines) > 0 {
			p := &b.Pipelines[len(b.Pipelines)-1]
			if len(p.Elements) > 0 {
				return p.Elements[len(p.Elements)-1].Expr.InferOutputType(ws)
			}
		}
	}
	return TyAny
}

// IsExternalCallWithVariable reports whether the node is an external call
// whose head or arguments read the given variable.
func (e *Expr) IsExternalCallWithVariable(ws *WorkingSet, id VarID) bool {
	ext := e.AsExternalCall()
	if ext == nil {
		return false
	}
	if ext.Head != nil && ext.Head.RefersToVar(ws, id) {
		return true
	}
	for i := range ext.Args {
		if ext.Args[i].Expr != nil && ext.Args[i].Expr.RefersToVar(ws, id) {
			return true
		}
	}
	return false
}

// RefersToVar reports whether the subtree reads the variable id,
// descending into nested blocks.
func (e *Expr) RefersToVar(ws *WorkingSet, id VarID) bool {
	found := false
	walkExpr(ws, e, nil, func(n, _ *Expr) (bool, bool) {
		if n.Kind == ExprVar && n.Var == id {
			found = true
			return true, false
		}
		return false, false
	})
	return found
}

// RefersToVariable reports whether the subtree reads a variable with the
// given bare name.
func (e *Expr) RefersToVariable(ws *WorkingSet, name string) bool {
	found := false
	walkExpr(ws, e, nil, func(n, _ *Expr) (bool, bool) {
		if n.Kind == ExprVar && ws.VarName(n.Var) == name {
			found = true
			return true, false
		}
		return false, false
	})
	return found
}

// IsCounterIncrement reports whether the node bumps the named variable by
// a constant: `$name += n` or `$name = $name + n`.
func (e *Expr) IsCounterIncrement(ws *WorkingSet, name string) bool {
	if e == nil || e.Kind != ExprBinaryOp {
		return false
	}
	lhsName, ok := e.Lhs.ExtractVariableName(ws)
	if !ok || lhsName != name {
		return false
	}
	switch e.Op {
	case OpAddAssign:
		_, isInt := e.Rhs.ExtractIntValue()
		return isInt
	case OpAssign:
		rhs := e.Rhs
		if rhs == nil || rhs.Kind != ExprBinaryOp || rhs.Op != OpAdd {
			return false
		}
		rhsVar, ok := rhs.Lhs.ExtractVariableName(ws)
		if !ok || rhsVar != name {
			return false
		}
		_, isInt := rhs.Rhs.ExtractIntValue()
		return isInt
	default:
		return false
	}
}
