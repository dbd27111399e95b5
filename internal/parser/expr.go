package parser

import (
	"nulint/internal/ast"
	"nulint/internal/token"
)

// parseMathExpression parses parts[from:] as one expression with
// precedence climbing and returns the expression plus the index after
// the last consumed part. Operators are whole items; anything that is
// not an operator ends the expression and is left for the caller.
func (p *Parser) parseMathExpression(parts []token.Token, from, minPrec int) (*ast.Expr, int) {
	lhs, i := p.parseMathOperand(parts, from)
	for i < len(parts) {
		opTok := parts[i]
		op, ok := ast.OperatorFromText(p.tokText(opTok))
		if !ok {
			break
		}
		prec := op.Precedence()
		if prec < minPrec {
			break
		}
		nextMin := prec + 1
		if op == ast.OpPow || op.IsAssignment() {
			nextMin = prec
		}
		rhs, next := p.parseMathExpression(parts, i+1, nextMin)
		lhs = &ast.Expr{
			Kind:   ast.ExprBinaryOp,
			Lhs:    lhs,
			Op:     op,
			OpSpan: opTok.Span,
			Rhs:    rhs,
			Span:   lhs.Span.Cover(rhs.Span),
			Ty:     binaryOpType(op, lhs, rhs),
		}
		i = next
	}
	return lhs, i
}

// parseMathOperand parses one operand, handling the `not` prefix.
func (p *Parser) parseMathOperand(parts []token.Token, from int) (*ast.Expr, int) {
	if from >= len(parts) {
		end := coverParts(parts)
		return p.garbage(spanOf(end.End, end.End), "incomplete expression"), from
	}
	tok := parts[from]
	if p.tokText(tok) == "not" {
		inner, next := p.parseMathOperand(parts, from+1)
		return &ast.Expr{
			Kind:  ast.ExprUnaryNot,
			Inner: inner,
			Span:  tok.Span.Cover(inner.Span),
			Ty:    ast.TyBool,
		}, next
	}
	return p.parseValue(tok, ast.TyAny), from + 1
}

// binaryOpType settles the static type of an operator application.
func binaryOpType(op ast.Operator, lhs, rhs *ast.Expr) ast.Type {
	switch {
	case op.IsComparison():
		return ast.TyBool
	case op == ast.OpAnd || op == ast.OpOr || op == ast.OpXor:
		return ast.TyBool
	case op.IsAssignment():
		return ast.TyNothing
	case op == ast.OpConcat:
		if lhs.Ty == ast.TyList || rhs.Ty == ast.TyList {
			return ast.TyList
		}
		return ast.TyString
	default:
		// Arithmetic keeps the operands' type when they agree and
		// falls back to number when mixing int and float.
		if lhs.Ty == rhs.Ty {
			return lhs.Ty
		}
		if lhs.Ty.IsNumeric() && rhs.Ty.IsNumeric() {
			return ast.TyNumber
		}
		return ast.TyAny
	}
}
