package parser

import (
	"strings"

	"nulint/internal/ast"
	"nulint/internal/source"
	"nulint/internal/token"
)

// rowConditionCommands take the rest of their element as one condition
// expression instead of discrete positional arguments.
var rowConditionCommands = map[string]bool{
	"where": true,
}

// resolveCallName finds the longest registered command name among the
// leading bareword parts. Multi-word names like `str replace` span
// several items; the longest match wins so `str` alone never shadows
// its subcommands.
func (p *Parser) resolveCallName(parts []token.Token) (ast.DeclID, int, bool) {
	limit := 3
	if len(parts) < limit {
		limit = len(parts)
	}
	words := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		text := p.tokText(parts[i])
		if !isBareword(text) {
			break
		}
		words = append(words, text)
	}
	for n := len(words); n >= 1; n-- {
		if id, ok := p.ws.FindDecl(strings.Join(words[:n], " ")); ok {
			return id, n, true
		}
	}
	return ast.NoDeclID, 0, false
}

func (p *Parser) tokText(t token.Token) string {
	return string(p.text(t.Span))
}

// isBareword reports whether an item can be part of a command name.
func isBareword(text string) bool {
	if text == "" {
		return false
	}
	b := text[0]
	if !(b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z') {
		return false
	}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '_' || c == '-' || c == '?' || c == '!':
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// parseInternalCall parses a resolved command call: flags by long or
// short name, positional values by declared shape, and spread
// arguments. used is how many leading parts the command name consumed.
func (p *Parser) parseInternalCall(id ast.DeclID, parts []token.Token, used int) *ast.Expr {
	decl := p.ws.Decl(id)
	head := coverParts(parts[:used])
	call := &ast.Call{Decl: id, Head: head, Span: coverParts(parts)}

	if rowConditionCommands[p.ws.DeclName(id)] && used < len(parts) {
		if rest := parts[used:]; !strings.HasPrefix(p.tokText(rest[0]), "{") {
			cond := p.parseRowCondition(rest)
			call.Args = append(call.Args, ast.Argument{Kind: ast.ArgPositional, Expr: cond})
			return &ast.Expr{Kind: ast.ExprCall, Call: call, Span: call.Span}
		}
	}

	pos := 0
	for i := used; i < len(parts); i++ {
		text := p.tokText(parts[i])
		switch {
		case strings.HasPrefix(text, "--") && len(text) > 2:
			i = p.parseLongFlag(call, decl, parts, i)
		case isShortFlag(text):
			i = p.parseShortFlag(call, decl, parts, i)
		case strings.HasPrefix(text, "...") && len(text) > 3:
			inner := p.parseSpreadItem(parts[i])
			call.Args = append(call.Args, ast.Argument{Kind: ast.ArgSpread, Expr: inner})
		default:
			shape := p.positionalShape(decl, pos)
			expr := p.parseValue(parts[i], shape)
			kind := ast.ArgPositional
			if decl != nil && pos >= decl.Sig.PositionalCount() && decl.Sig.RestPositional == nil {
				kind = ast.ArgUnknown
				p.errorf(parts[i].Span, "extra positional argument to %s", p.ws.DeclName(id))
			}
			call.Args = append(call.Args, ast.Argument{Kind: kind, Expr: expr})
			pos++
		}
	}
	return &ast.Expr{Kind: ast.ExprCall, Call: call, Span: call.Span}
}

// isShortFlag matches `-f` style items, leaving negative numbers and
// the lone `-` stdin placeholder alone.
func isShortFlag(text string) bool {
	if len(text) < 2 || text[0] != '-' || text[1] == '-' {
		return false
	}
	b := text[1]
	return !(b >= '0' && b <= '9' || b == '.')
}

// parseLongFlag handles `--name` and `--name=value`, consuming the next
// part as the value when the declared flag takes one.
func (p *Parser) parseLongFlag(call *ast.Call, decl *ast.Decl, parts []token.Token, i int) int {
	tok := parts[i]
	text := p.tokText(tok)
	name, inline, hasInline := strings.Cut(text[2:], "=")

	arg := ast.Argument{Kind: ast.ArgNamed, Name: name, NameSpan: tok.Span}
	var flag *ast.Flag
	if decl != nil {
		flag = decl.Sig.FindFlag(name)
	}
	if flag == nil {
		p.errorf(tok.Span, "unknown flag --%s", name)
	}

	switch {
	case hasInline:
		start := tok.Span.Start + uint32(len(text)-len(inline))
		valTok := token.Token{Kind: token.Item, Span: spanOf(start, tok.Span.End)}
		arg.Expr = p.parseValue(valTok, flagShape(flag))
	case flag != nil && flag.Arg != ast.TyNothing:
		if i+1 < len(parts) {
			i++
			arg.Expr = p.parseValue(parts[i], flag.Arg)
		} else {
			p.errorf(tok.Span, "flag --%s needs a value", name)
		}
	}
	call.Args = append(call.Args, arg)
	call.Span = call.Span.Cover(argSpan(&arg))
	return i
}

// parseShortFlag handles `-f`; a value follows only when the flag's
// long form declares one.
func (p *Parser) parseShortFlag(call *ast.Call, decl *ast.Decl, parts []token.Token, i int) int {
	tok := parts[i]
	text := p.tokText(tok)
	short := text[1:]

	arg := ast.Argument{Kind: ast.ArgNamed, Short: short, NameSpan: tok.Span}
	var flag *ast.Flag
	if decl != nil && len(short) == 1 {
		flag = decl.Sig.FindFlag(short)
	}
	if flag == nil {
		p.errorf(tok.Span, "unknown flag -%s", short)
	} else {
		arg.Name = flag.Long
		if flag.Arg != ast.TyNothing {
			if i+1 < len(parts) {
				i++
				arg.Expr = p.parseValue(parts[i], flag.Arg)
			} else {
				p.errorf(tok.Span, "flag -%s needs a value", short)
			}
		}
	}
	call.Args = append(call.Args, arg)
	call.Span = call.Span.Cover(argSpan(&arg))
	return i
}

func argSpan(a *ast.Argument) source.Span {
	return a.Span()
}

func flagShape(f *ast.Flag) ast.Type {
	if f == nil {
		return ast.TyAny
	}
	return f.Arg
}

func spanOf(start, end uint32) source.Span {
	return source.NewSpan(start, end)
}

// positionalShape returns the declared shape of the pos-th positional.
func (p *Parser) positionalShape(decl *ast.Decl, pos int) ast.Type {
	if decl == nil {
		return ast.TyAny
	}
	sig := &decl.Sig
	if pos < len(sig.RequiredPositional) {
		return sig.RequiredPositional[pos].Shape
	}
	pos -= len(sig.RequiredPositional)
	if pos < len(sig.OptionalPositional) {
		return sig.OptionalPositional[pos].Shape
	}
	if sig.RestPositional != nil {
		return sig.RestPositional.Shape
	}
	return ast.TyAny
}

// parseRowCondition parses the trailing parts of a `where` as one
// condition and wraps it in a block, the shape closures share.
func (p *Parser) parseRowCondition(parts []token.Token) *ast.Expr {
	span := coverParts(parts)
	p.pushScope()
	p.declareVar("it", ast.Variable{DeclSpan: span})
	cond, used := p.parseMathExpression(parts, 0, 0)
	if used < len(parts) {
		p.errorf(coverParts(parts[used:]), "unexpected tokens in condition")
	}
	p.popScope()

	id := p.ws.AddBlock(ast.Block{
		Pipelines: []ast.Pipeline{{Elements: []ast.PipelineElement{{Expr: cond}}}},
		Span:      span,
	})
	return &ast.Expr{Kind: ast.ExprRowCondition, Block: id, Span: span, Ty: ast.TyBool}
}

// parseExternalCall parses `^cmd args...` or an unresolved bareword
// head. Arguments stay coarse: strings, variables, and interpolations
// are parsed, everything else is kept as a bare string.
func (p *Parser) parseExternalCall(parts []token.Token, caret bool) *ast.Expr {
	headTok := parts[0]
	headText := p.tokText(headTok)
	span := coverParts(parts)

	var headExpr *ast.Expr
	if caret {
		trimmed := headText[1:]
		headSpan := spanOf(headTok.Span.Start+1, headTok.Span.End)
		if strings.HasPrefix(trimmed, "$") || strings.HasPrefix(trimmed, "\"") || strings.HasPrefix(trimmed, "'") {
			headExpr = p.parseValue(token.Token{Kind: token.Item, Span: headSpan}, ast.TyString)
		} else {
			headExpr = &ast.Expr{Kind: ast.ExprString, Str: trimmed, Span: headSpan, Ty: ast.TyString}
		}
	} else {
		headExpr = &ast.Expr{Kind: ast.ExprString, Str: headText, Span: headTok.Span, Ty: ast.TyString}
	}

	ext := &ast.ExternalCall{Head: headExpr, Span: span}
	for _, part := range parts[1:] {
		text := p.tokText(part)
		var arg ast.ExternalArg
		switch {
		case strings.HasPrefix(text, "..."):
			arg.Spread = true
			arg.Expr = p.parseSpreadItem(part)
		case strings.HasPrefix(text, "$") || strings.HasPrefix(text, "\"") ||
			strings.HasPrefix(text, "'") || strings.HasPrefix(text, "("):
			arg.Expr = p.parseValue(part, ast.TyAny)
		default:
			arg.Expr = &ast.Expr{Kind: ast.ExprString, Str: text, Span: part.Span, Ty: ast.TyString}
		}
		ext.Args = append(ext.Args, arg)
	}
	return &ast.Expr{Kind: ast.ExprExternalCall, Extern: ext, Span: span}
}

// parseSpreadItem parses the value behind a `...` prefix.
func (p *Parser) parseSpreadItem(tok token.Token) *ast.Expr {
	innerSpan := spanOf(tok.Span.Start+3, tok.Span.End)
	inner := p.parseValue(token.Token{Kind: token.Item, Span: innerSpan}, ast.TyAny)
	return &ast.Expr{Kind: ast.ExprSpread, Inner: inner, Span: tok.Span}
}
