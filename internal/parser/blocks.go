package parser

import (
	"nulint/internal/ast"
	"nulint/internal/source"
	"nulint/internal/token"
)

// parseTokens parses a lexed token run into a block and stores it.
func (p *Parser) parseTokens(toks []token.Token, sig ast.Signature, span source.Span) ast.BlockID {
	lb := p.liteParse(toks)
	blk := ast.Block{Sig: sig, Span: span}
	for i := range lb.pipelines {
		pl := p.buildPipeline(&lb.pipelines[i])
		if len(pl.Elements) > 0 {
			blk.Pipelines = append(blk.Pipelines, pl)
		}
	}
	return p.ws.AddBlock(blk)
}

// buildPipeline turns one lite pipeline into an ast pipeline. Variable
// declarations and assignments swallow the rest of their pipeline: in
// `let x = ls | length` the pipe belongs to the value, not to the let.
func (p *Parser) buildPipeline(lp *litePipeline) ast.Pipeline {
	var out ast.Pipeline

	if len(lp.commands) > 0 {
		head := p.partText(&lp.commands[0], 0)
		switch head {
		case "let", "mut", "const":
			expr := p.parseLet(&lp.commands[0], lp.commands[1:])
			out.Elements = append(out.Elements, ast.PipelineElement{Expr: expr})
			return out
		}
	}

	for ci := range lp.commands {
		cmd := &lp.commands[ci]
		expr := p.parseElement(cmd)

		// An assignment folds every later element into its right side.
		if ci == 0 && expr != nil && expr.Kind == ast.ExprBinaryOp &&
			expr.Op.IsAssignment() && len(lp.commands) > 1 {
			expr.Rhs = p.foldPipelineTail(expr.Rhs, lp.commands[1:])
			expr.Span = expr.Span.Cover(expr.Rhs.Span)
			out.Elements = append(out.Elements, ast.PipelineElement{Expr: expr})
			return out
		}

		el := ast.PipelineElement{Expr: expr}
		el.Redirect = p.buildRedirection(cmd)
		if ci+1 < len(lp.commands) {
			markPipeConnection(&el, lp.commands[ci+1].conn)
		}
		out.Elements = append(out.Elements, el)
	}
	return out
}

// foldPipelineTail wraps first and the remaining commands into one
// subexpression block, preserving the pipeline the value came from.
func (p *Parser) foldPipelineTail(first *ast.Expr, rest []liteCommand) *ast.Expr {
	var inner ast.Pipeline
	inner.Elements = append(inner.Elements, ast.PipelineElement{Expr: first})
	for ci := range rest {
		cmd := &rest[ci]
		el := ast.PipelineElement{Expr: p.parseElement(cmd)}
		el.Redirect = p.buildRedirection(cmd)
		inner.Elements = append(inner.Elements, el)
	}
	span := inner.Span()
	id := p.ws.AddBlock(ast.Block{Pipelines: []ast.Pipeline{inner}, Span: span})
	return &ast.Expr{Kind: ast.ExprSubexpression, Block: id, Span: span}
}

// buildRedirection converts a command's collected file redirections.
func (p *Parser) buildRedirection(cmd *liteCommand) *ast.Redirection {
	if len(cmd.redirects) == 0 {
		return nil
	}
	r := &ast.Redirection{}
	for _, lr := range cmd.redirects {
		dest := &ast.RedirectDest{
			File:   p.parseValue(lr.target, ast.TyString),
			Append: lr.op.Kind == token.OutGreaterGreater || lr.op.Kind == token.ErrGreaterGreater || lr.op.Kind == token.OutErrGreaterGreater,
			Span:   lr.op.Span.Cover(lr.target.Span),
		}
		switch lr.op.Kind {
		case token.OutGreater, token.OutGreaterGreater:
			dest.Target = ast.RedirectStdout
			r.Out = dest
		case token.ErrGreater, token.ErrGreaterGreater:
			dest.Target = ast.RedirectStderr
			r.Err = dest
		case token.OutErrGreater, token.OutErrGreaterGreater:
			dest.Target = ast.RedirectBoth
			r.Out = dest
		}
	}
	return r
}

// markPipeConnection records that the element's stderr (or both
// streams) pipe onward when the next command attached with e>| or
// o+e>|.
func markPipeConnection(el *ast.PipelineElement, conn token.Kind) {
	switch conn {
	case token.ErrGreaterPipe:
		if el.Redirect == nil {
			el.Redirect = &ast.Redirection{}
		}
		el.Redirect.Err = &ast.RedirectDest{Target: ast.RedirectStderr, Pipe: true}
	case token.OutErrGreaterPipe:
		if el.Redirect == nil {
			el.Redirect = &ast.Redirection{}
		}
		el.Redirect.Out = &ast.RedirectDest{Target: ast.RedirectBoth, Pipe: true}
	}
}

// partText returns the text of the i-th part of a command, or "".
func (p *Parser) partText(cmd *liteCommand, i int) string {
	if i >= len(cmd.parts) {
		return ""
	}
	return string(p.text(cmd.parts[i].Span))
}

// coverParts spans from the first through the last token of a command.
func coverParts(parts []token.Token) source.Span {
	if len(parts) == 0 {
		return source.Span{}
	}
	return parts[0].Span.Cover(parts[len(parts)-1].Span)
}

// parseElement interprets one lite command as a pipeline element.
func (p *Parser) parseElement(cmd *liteCommand) *ast.Expr {
	if len(cmd.parts) == 0 {
		// A command that was nothing but redirections.
		return &ast.Expr{Kind: ast.ExprGarbage}
	}
	head := cmd.parts[0]
	text := p.partText(cmd, 0)

	if head.Kind != token.Item {
		return p.garbage(head.Span, "unexpected %s", head.Kind)
	}

	switch text {
	case "def", "export", "extern", "module":
		return p.parseDef(cmd)
	case "let", "mut", "const":
		return p.parseLet(cmd, nil)
	case "if":
		expr, _ := p.parseIf(cmd.parts, 0)
		return expr
	case "match":
		return p.parseMatch(cmd)
	case "for":
		return p.parseFor(cmd)
	case "while":
		return p.parseWhile(cmd)
	case "loop":
		return p.parseLoop(cmd)
	case "source", "source-env":
		return p.parseSource(cmd)
	case "use":
		return p.parseUse(cmd)
	case "alias":
		return p.parseAlias(cmd)
	}

	if text != "" && text[0] == '^' {
		return p.parseExternalCall(cmd.parts, true)
	}
	if startsExpression(text) || isNumberLike(text) {
		return p.parseCommandExpression(cmd.parts)
	}

	if id, used, ok := p.resolveCallName(cmd.parts); ok {
		return p.parseInternalCall(id, cmd.parts, used)
	}
	return p.parseExternalCall(cmd.parts, false)
}

// startsExpression reports whether an item unambiguously begins a value
// rather than a command name. Digit-led items go through isNumberLike
// instead, so `7z` can still resolve as an external command.
func startsExpression(text string) bool {
	if text == "" {
		return false
	}
	switch text[0] {
	case '$', '"', '\'', '`', '(', '[', '{':
		return true
	}
	switch text {
	case "true", "false", "null", "not":
		return true
	}
	return false
}

// parseCommandExpression parses an expression-first element: a value or
// math expression filling the whole command, `$x + 1` or `[1 2] | ...`
// style heads included.
func (p *Parser) parseCommandExpression(parts []token.Token) *ast.Expr {
	expr, used := p.parseMathExpression(parts, 0, 0)
	if used < len(parts) {
		sp := coverParts(parts[used:])
		p.errorf(sp, "unexpected tokens after expression")
		expr = &ast.Expr{
			Kind: ast.ExprGarbage,
			Span: expr.Span.Cover(sp),
		}
	}
	return expr
}
