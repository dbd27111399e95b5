package parser

import (
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lexer"
	"nulint/internal/source"
	"nulint/internal/token"
)

// keywordCall builds a call to one of the seeded keyword commands; nil
// arguments are dropped so error recovery stays quiet downstream.
func (p *Parser) keywordCall(name string, head, span source.Span, args ...*ast.Expr) *ast.Expr {
	id, _ := p.ws.FindDecl(name)
	call := &ast.Call{Decl: id, Head: head, Span: span}
	for _, a := range args {
		if a != nil {
			call.Args = append(call.Args, ast.Argument{Kind: ast.ArgPositional, Expr: a})
		}
	}
	return &ast.Expr{Kind: ast.ExprCall, Call: call, Span: span, Ty: ast.TyNothing}
}

// parseBodyItem parses a `{...}` item into a block carrying sig. The
// caller owns scoping, so signatures declared beforehand stay visible
// inside the body.
func (p *Parser) parseBodyItem(text string, sp source.Span, sig ast.Signature) ast.BlockID {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	inner := text[1:min(closeIdx, len(text))]
	toks, lexErr := lexer.Lex([]byte(inner), sp.Start+1, lexer.Blocks())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}
	span := spanOf(sp.Start, sp.Start+uint32(min(closeIdx+1, len(text))))
	return p.parseTokens(toks, sig, span)
}

// parseDef handles declaration statements: def, extern, module, and
// any of those (plus use, alias, and the variable keywords) behind an
// `export` prefix.
func (p *Parser) parseDef(cmd *liteCommand) *ast.Expr {
	i := 0
	if p.partText(cmd, 0) == "export" {
		i = 1
	}
	switch p.partText(cmd, i) {
	case "def":
		return p.parseDefAt(cmd, i)
	case "extern":
		return p.parseExternAt(cmd, i)
	case "module":
		return p.parseModuleAt(cmd, i)
	case "use":
		return p.parseUseAt(cmd, i)
	case "alias":
		return p.parseAliasAt(cmd, i)
	case "let", "mut", "const":
		return p.parseLetAt(cmd, nil, i)
	case "":
		return p.garbage(coverParts(cmd.parts), "missing declaration after export")
	default:
		return p.garbage(coverParts(cmd.parts), "cannot export %q", p.partText(cmd, i))
	}
}

func (p *Parser) parseDefAt(cmd *liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	defTok := parts[i]
	i++

	// def accepts switches such as --env before the name.
	for i < len(parts) && strings.HasPrefix(p.partText(cmd, i), "--") {
		i++
	}
	if i >= len(parts) {
		return p.garbage(span, "missing command name in def")
	}
	nameTok := parts[i]
	name := unquote(p.partText(cmd, i))
	i++

	p.pushScope()
	defer p.popScope()

	var sig ast.Signature
	if sigText := p.partText(cmd, i); strings.HasPrefix(sigText, "[") {
		sig = p.parseSignatureItem(parts[i])
		i++
	} else {
		p.errorf(nameTok.Span, "missing signature in def %s", name)
	}
	sig.Name = name

	// Skip the `: in -> out` annotation between signature and body,
	// remembering the declared output type.
	outTy := ast.TyAny
	for i < len(parts) && !strings.HasPrefix(p.partText(cmd, i), "{") {
		if txt := p.partText(cmd, i); txt != "->" && txt != ":" {
			outTy = typeFromName(txt)
		}
		i++
	}

	declID := p.ws.AddDecl(ast.Decl{
		Name:       p.ws.Names.Intern(name),
		Sig:        sig,
		OutputType: outTy,
		NameSpan:   nameTok.Span,
	})

	var bodyExpr *ast.Expr
	if i < len(parts) {
		bodyTok := parts[i]
		bodyID := p.parseBodyItem(p.tokText(bodyTok), bodyTok.Span, sig)
		p.ws.Decl(declID).Body = bodyID
		bodyExpr = &ast.Expr{Kind: ast.ExprBlock, Block: bodyID, Span: bodyTok.Span}
		if i+1 < len(parts) {
			p.errorf(coverParts(parts[i+1:]), "unexpected tokens after def body")
		}
	} else {
		p.errorf(span, "missing body in def %s", name)
	}

	nameExpr := &ast.Expr{Kind: ast.ExprString, Str: name, Span: nameTok.Span, Ty: ast.TyString}
	out := p.keywordCall("def", defTok.Span, span, nameExpr, bodyExpr)
	out.Call.DefinedDecl = declID
	return out
}

// parseExternAt registers an extern signature: a known command with no
// body, typically wrapping a program like `extern "git push" [...]`.
func (p *Parser) parseExternAt(cmd *liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kwTok := parts[i]
	if i+1 >= len(parts) {
		return p.garbage(span, "missing command name in extern")
	}
	nameTok := parts[i+1]
	name := unquote(p.partText(cmd, i+1))

	var sig ast.Signature
	if sigText := p.partText(cmd, i+2); strings.HasPrefix(sigText, "[") {
		p.pushScope()
		sig = p.parseSignatureItem(parts[i+2])
		p.popScope()
	} else {
		p.errorf(nameTok.Span, "missing signature in extern %s", name)
	}
	sig.Name = name

	p.ws.AddDecl(ast.Decl{
		Name:     p.ws.Names.Intern(name),
		Sig:      sig,
		NameSpan: nameTok.Span,
	})
	nameExpr := &ast.Expr{Kind: ast.ExprString, Str: name, Span: nameTok.Span, Ty: ast.TyString}
	return p.keywordCall("extern", kwTok.Span, span, nameExpr)
}

// parseModuleAt parses `module name { ... }`. Declarations inside the
// body register like any other; scripts under lint rarely lean on
// module namespacing, so names are not prefixed.
func (p *Parser) parseModuleAt(cmd *liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kwTok := parts[i]
	if i+1 >= len(parts) {
		return p.garbage(span, "missing module name")
	}
	nameTok := parts[i+1]
	name := unquote(p.partText(cmd, i+1))

	var bodyExpr *ast.Expr
	if bodyText := p.partText(cmd, i+2); strings.HasPrefix(bodyText, "{") {
		p.pushScope()
		id := p.parseBodyItem(bodyText, parts[i+2].Span, ast.Signature{})
		p.popScope()
		bodyExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: parts[i+2].Span}
	} else {
		p.errorf(nameTok.Span, "missing block in module %s", name)
	}

	nameExpr := &ast.Expr{Kind: ast.ExprString, Str: name, Span: nameTok.Span, Ty: ast.TyString}
	return p.keywordCall("module", kwTok.Span, span, nameExpr, bodyExpr)
}

// Reserved variable names that let/mut/const may not rebind.
var reservedVars = map[string]bool{"nu": true, "env": true, "in": true, "it": true}

// parseLet parses let, mut, and const statements. rest carries the
// later commands of the pipeline, which belong to the value: in
// `let x = ls | length` the pipe feeds the binding, not the let.
func (p *Parser) parseLet(cmd *liteCommand, rest []liteCommand) *ast.Expr {
	return p.parseLetAt(cmd, rest, 0)
}

func (p *Parser) parseLetAt(cmd *liteCommand, rest []liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kw := p.partText(cmd, i)
	if i+1 >= len(parts) {
		return p.garbage(span, "missing variable name after %s", kw)
	}
	nameTok := parts[i+1]
	name := strings.TrimPrefix(unquote(p.partText(cmd, i+1)), "$")
	if name == "" {
		return p.garbage(nameTok.Span, "missing variable name after %s", kw)
	}
	if reservedVars[name] {
		p.errorf(nameTok.Span, "$%s is a reserved variable name", name)
	}

	var inner *ast.Expr
	switch {
	case i+2 >= len(parts) || p.partText(cmd, i+2) != "=":
		p.errorf(nameTok.Span, "expected '=' after %s %s", kw, name)
	case i+3 >= len(parts):
		p.errorf(span, "missing value in %s %s", kw, name)
	default:
		valCmd := liteCommand{parts: parts[i+3:]}
		inner = p.parseElement(&valCmd)
		if len(rest) > 0 {
			inner = p.foldPipelineTail(inner, rest)
		}
	}

	v := ast.Variable{
		DeclSpan: nameTok.Span,
		Mutable:  kw == "mut",
		Const:    kw == "const",
	}
	if inner != nil {
		v.Ty = inner.Ty
	}
	id := p.declareVar(name, v)

	out := &ast.Expr{Kind: ast.ExprVarDecl, Var: id, Inner: inner, Span: span, Ty: ast.TyNothing}
	if inner != nil {
		out.Span = span.Cover(inner.Span)
	}
	return out
}

// parseIf parses an if chain starting at parts[from] and returns the
// call plus the index after the consumed tokens, so `else if` nests
// naturally.
func (p *Parser) parseIf(parts []token.Token, from int) (*ast.Expr, int) {
	ifTok := parts[from]
	i := from + 1

	condStart := i
	for i < len(parts) && !strings.HasPrefix(p.tokText(parts[i]), "{") {
		i++
	}
	var cond *ast.Expr
	if condStart == i {
		cond = p.garbage(ifTok.Span, "missing condition in if")
	} else {
		var used int
		cond, used = p.parseMathExpression(parts[condStart:i], 0, 0)
		if used < i-condStart {
			p.errorf(coverParts(parts[condStart+used:i]), "unexpected tokens in if condition")
		}
	}

	var thenExpr *ast.Expr
	if i < len(parts) {
		tok := parts[i]
		id := p.parseBraceBlock(p.tokText(tok), tok.Span, false)
		thenExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: tok.Span}
		i++
	} else {
		p.errorf(ifTok.Span.Cover(cond.Span), "missing block in if")
	}

	var elseArg *ast.Expr
	if i < len(parts) && p.tokText(parts[i]) == "else" {
		elseTok := parts[i]
		i++
		switch {
		case i < len(parts) && p.tokText(parts[i]) == "if":
			nested, next := p.parseIf(parts, i)
			i = next
			elseArg = &ast.Expr{
				Kind:  ast.ExprKeyword,
				Str:   "else",
				Inner: nested,
				Span:  elseTok.Span.Cover(nested.Span),
			}
		case i < len(parts) && strings.HasPrefix(p.tokText(parts[i]), "{"):
			tok := parts[i]
			id := p.parseBraceBlock(p.tokText(tok), tok.Span, false)
			inner := &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: tok.Span}
			elseArg = &ast.Expr{
				Kind:  ast.ExprKeyword,
				Str:   "else",
				Inner: inner,
				Span:  elseTok.Span.Cover(tok.Span),
			}
			i++
		default:
			p.errorf(elseTok.Span, "expected block or 'if' after else")
		}
	}

	span := parts[from].Span.Cover(parts[i-1].Span)
	return p.keywordCall("if", ifTok.Span, span, cond, thenExpr, elseArg), i
}

// matchArmOptions lexes match bodies: commas separate arms on one line,
// so they surface as single-byte items rather than gluing to values.
func matchArmOptions() lexer.Options {
	return lexer.Options{Special: []byte{','}, SkipComments: true}
}

func (p *Parser) parseMatch(cmd *liteCommand) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	matchTok := parts[0]

	i := 1
	condStart := i
	for i < len(parts) && !strings.HasPrefix(p.partText(cmd, i), "{") {
		i++
	}
	var value *ast.Expr
	if condStart == i {
		value = p.garbage(matchTok.Span, "missing value in match")
	} else {
		var used int
		value, used = p.parseMathExpression(parts[condStart:i], 0, 0)
		if used < i-condStart {
			p.errorf(coverParts(parts[condStart+used:i]), "unexpected tokens in match value")
		}
	}

	if i >= len(parts) {
		p.errorf(span, "missing match block")
		return p.keywordCall("match", matchTok.Span, span, value)
	}
	armsExpr := p.parseMatchArms(parts[i])
	if i+1 < len(parts) {
		p.errorf(coverParts(parts[i+1:]), "unexpected tokens after match block")
	}
	return p.keywordCall("match", matchTok.Span, span, value, armsExpr)
}

// parseMatchArms parses the `{ pattern => body, ... }` item of a match.
func (p *Parser) parseMatchArms(tok token.Token) *ast.Expr {
	text := p.tokText(tok)
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	inner := text[1:min(closeIdx, len(text))]
	toks, lexErr := lexer.Lex([]byte(inner), tok.Span.Start+1, matchArmOptions())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}

	out := &ast.Expr{Kind: ast.ExprMatchBlock, Span: tok.Span}
	start := 0
	for idx := 0; idx <= len(toks); idx++ {
		atEnd := idx == len(toks)
		if !atEnd {
			t := toks[idx]
			isBreak := t.Kind == token.Eol || t.Kind == token.Semicolon ||
				(t.Kind == token.Item && p.tokText(t) == ",")
			if !isBreak {
				continue
			}
		}
		group := toks[start:idx]
		start = idx + 1
		if arm, ok := p.parseMatchArm(group); ok {
			out.Arms = append(out.Arms, arm)
		}
	}
	return out
}

// parseMatchArm parses one arm's tokens. Patterns bind their `$vars`
// into a scope shared with the guard and body.
func (p *Parser) parseMatchArm(group []token.Token) (ast.MatchArm, bool) {
	if len(group) == 0 {
		return ast.MatchArm{}, false
	}
	arrow := -1
	for i, t := range group {
		if t.Kind == token.Item && p.tokText(t) == "=>" {
			arrow = i
			break
		}
	}
	if arrow < 0 {
		p.errorf(coverParts(group), "expected '=>' in match arm")
		return ast.MatchArm{}, false
	}
	patToks := group[:arrow]
	bodyToks := group[arrow+1:]
	if len(patToks) == 0 {
		p.errorf(group[arrow].Span, "missing pattern in match arm")
		return ast.MatchArm{}, false
	}

	p.pushScope()
	defer p.popScope()
	for _, t := range patToks {
		p.declarePatternBinds(p.tokText(t))
	}

	arm := ast.MatchArm{Span: coverParts(group)}
	arm.Pattern, arm.Guard = p.parseMatchPattern(patToks)

	switch {
	case len(bodyToks) == 0:
		p.errorf(group[arrow].Span, "missing body in match arm")
		return ast.MatchArm{}, false
	case hasPipeToken(bodyToks):
		id := p.parseTokens(bodyToks, ast.Signature{}, coverParts(bodyToks))
		arm.Body = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: coverParts(bodyToks)}
	default:
		arm.Body = p.parseElement(&liteCommand{parts: bodyToks})
	}
	return arm, true
}

func hasPipeToken(toks []token.Token) bool {
	for _, t := range toks {
		if t.Kind == token.Pipe || t.Kind == token.PipePipe {
			return true
		}
	}
	return false
}

// parseMatchPattern parses the pattern tokens, including or-patterns
// joined by `|` and an optional trailing `if guard`.
func (p *Parser) parseMatchPattern(toks []token.Token) (*ast.Expr, *ast.Expr) {
	var pattern *ast.Expr
	var guard *ast.Expr
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind == token.Item && p.tokText(t) == "if" {
			g, used := p.parseMathExpression(toks[i+1:], 0, 0)
			if used < len(toks)-i-1 {
				p.errorf(coverParts(toks[i+1+used:]), "unexpected tokens in match guard")
			}
			guard = g
			break
		}
		if t.Kind == token.Pipe {
			i++
			continue
		}
		alt := p.parseValue(t, ast.TyAny)
		if pattern == nil {
			pattern = alt
		} else {
			pattern = &ast.Expr{
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpOr,
				OpSpan: t.Span,
				Lhs:    pattern,
				Rhs:    alt,
				Span:   pattern.Span.Cover(alt.Span),
				Ty:     ast.TyAny,
			}
		}
		i++
	}
	if pattern == nil {
		pattern = p.garbage(coverParts(toks), "missing pattern in match arm")
	}
	return pattern, guard
}

// declarePatternBinds declares every `$name` occurring in a pattern
// item so nested binds inside records and lists resolve.
func (p *Parser) declarePatternBinds(text string) {
	var quote byte
	for i := 0; i < len(text); i++ {
		b := text[i]
		if quote != 0 {
			if b == '\\' && quote == '"' {
				i++
				continue
			}
			if b == quote {
				quote = 0
			}
			continue
		}
		switch {
		case b == '\'' || b == '"' || b == '`':
			quote = b
		case b == '$':
			start := i + 1
			for i+1 < len(text) && isVarNameByte(text[i+1]) {
				i++
			}
			name := text[start : i+1]
			if name == "" || reservedVars[name] {
				continue
			}
			if _, ok := p.scopes[len(p.scopes)-1][name]; !ok {
				p.declareVar(name, ast.Variable{})
			}
		}
	}
}

func (p *Parser) parseFor(cmd *liteCommand) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	forTok := parts[0]
	if len(parts) < 2 {
		return p.garbage(span, "missing variable name in for")
	}
	nameTok := parts[1]
	name := strings.TrimPrefix(p.partText(cmd, 1), "$")
	if p.partText(cmd, 2) != "in" {
		p.errorf(nameTok.Span, "expected 'in' after for %s", name)
	}

	i := 3
	iterStart := i
	for i < len(parts) && !strings.HasPrefix(p.partText(cmd, i), "{") {
		i++
	}
	var iter *ast.Expr
	if iterStart == i {
		iter = p.garbage(forTok.Span, "missing iterable in for")
	} else {
		var used int
		iter, used = p.parseMathExpression(parts[iterStart:i], 0, 0)
		if used < i-iterStart {
			p.errorf(coverParts(parts[iterStart+used:i]), "unexpected tokens in for iterable")
		}
	}

	p.pushScope()
	defer p.popScope()
	v := p.declareVar(name, ast.Variable{DeclSpan: nameTok.Span})
	varExpr := &ast.Expr{Kind: ast.ExprVar, Var: v, Span: nameTok.Span}

	var bodyExpr *ast.Expr
	if i < len(parts) {
		tok := parts[i]
		id := p.parseBodyItem(p.tokText(tok), tok.Span, ast.Signature{})
		bodyExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: tok.Span}
		if i+1 < len(parts) {
			p.errorf(coverParts(parts[i+1:]), "unexpected tokens after for body")
		}
	} else {
		p.errorf(span, "missing block in for")
	}
	return p.keywordCall("for", forTok.Span, span, varExpr, iter, bodyExpr)
}

func (p *Parser) parseWhile(cmd *liteCommand) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	whileTok := parts[0]

	i := 1
	condStart := i
	for i < len(parts) && !strings.HasPrefix(p.partText(cmd, i), "{") {
		i++
	}
	var cond *ast.Expr
	if condStart == i {
		cond = p.garbage(whileTok.Span, "missing condition in while")
	} else {
		var used int
		cond, used = p.parseMathExpression(parts[condStart:i], 0, 0)
		if used < i-condStart {
			p.errorf(coverParts(parts[condStart+used:i]), "unexpected tokens in while condition")
		}
	}

	var bodyExpr *ast.Expr
	if i < len(parts) {
		tok := parts[i]
		id := p.parseBraceBlock(p.tokText(tok), tok.Span, false)
		bodyExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: tok.Span}
		if i+1 < len(parts) {
			p.errorf(coverParts(parts[i+1:]), "unexpected tokens after while body")
		}
	} else {
		p.errorf(span, "missing block in while")
	}
	return p.keywordCall("while", whileTok.Span, span, cond, bodyExpr)
}

func (p *Parser) parseLoop(cmd *liteCommand) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	loopTok := parts[0]

	var bodyExpr *ast.Expr
	if bodyText := p.partText(cmd, 1); strings.HasPrefix(bodyText, "{") {
		tok := parts[1]
		id := p.parseBraceBlock(bodyText, tok.Span, false)
		bodyExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: tok.Span}
		if len(parts) > 2 {
			p.errorf(coverParts(parts[2:]), "unexpected tokens after loop body")
		}
	} else {
		p.errorf(span, "missing block in loop")
	}
	return p.keywordCall("loop", loopTok.Span, span, bodyExpr)
}

// parseSource parses `source file.nu` and `source-env file.nu`. When a
// loader is available the target is parsed in place, so its commands
// and definitions land in the same working set; cycles stop with an
// error at the repeating edge.
func (p *Parser) parseSource(cmd *liteCommand) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kw := p.partText(cmd, 0)
	if len(parts) < 2 {
		return p.garbage(span, "missing file path after %s", kw)
	}
	pathTok := parts[1]
	pathExpr := p.parseValue(pathTok, ast.TyFilepath)
	if len(parts) > 2 {
		p.errorf(coverParts(parts[2:]), "unexpected arguments to %s", kw)
	}

	raw := unquote(p.partText(cmd, 1))
	var blockExpr *ast.Expr
	if p.loader != nil && raw != "" && raw[0] != '$' {
		f, err := p.loader(p.file, raw)
		switch {
		case err != nil:
			p.errorf(pathTok.Span, "%s target not found: %s", kw, raw)
		case p.sourcing[f.Path]:
			p.errorf(pathTok.Span, "circular %s of %s", kw, raw)
		default:
			p.sourcing[f.Path] = true
			id := p.ParseFile(f)
			delete(p.sourcing, f.Path)
			blockExpr = &ast.Expr{Kind: ast.ExprBlock, Block: id, Span: pathTok.Span}
		}
	}
	return p.keywordCall(kw, parts[0].Span, span, pathExpr, blockExpr)
}

func (p *Parser) parseUse(cmd *liteCommand) *ast.Expr {
	return p.parseUseAt(cmd, 0)
}

// parseUseAt parses `use module [import names]`. A resolvable module
// file is parsed so its declarations register; unresolvable paths stay
// silent because module paths like std/log never exist on disk.
func (p *Parser) parseUseAt(cmd *liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kwTok := parts[i]
	if i+1 >= len(parts) {
		return p.garbage(span, "missing module path after use")
	}
	pathTok := parts[i+1]
	pathExpr := p.parseValue(pathTok, ast.TyFilepath)

	args := []*ast.Expr{pathExpr}
	for _, t := range parts[i+2:] {
		args = append(args, p.parseValue(t, ast.TyString))
	}

	raw := unquote(p.partText(cmd, i+1))
	if p.loader != nil && raw != "" && raw[0] != '$' {
		if f, err := p.loader(p.file, raw); err == nil && !p.sourcing[f.Path] {
			p.sourcing[f.Path] = true
			p.ParseFile(f)
			delete(p.sourcing, f.Path)
		}
	}
	return p.keywordCall("use", kwTok.Span, span, args...)
}

func (p *Parser) parseAlias(cmd *liteCommand) *ast.Expr {
	return p.parseAliasAt(cmd, 0)
}

// parseAliasAt parses `alias name = command ...`. The alias registers
// with a catch-all signature so later calls to it take any arguments
// without complaint.
func (p *Parser) parseAliasAt(cmd *liteCommand, i int) *ast.Expr {
	parts := cmd.parts
	span := coverParts(parts)
	kwTok := parts[i]
	if i+1 >= len(parts) {
		return p.garbage(span, "missing alias name")
	}
	nameTok := parts[i+1]
	name := unquote(p.partText(cmd, i+1))

	var replacement *ast.Expr
	switch {
	case i+2 >= len(parts) || p.partText(cmd, i+2) != "=":
		p.errorf(nameTok.Span, "expected '=' after alias %s", name)
	case i+3 >= len(parts):
		p.errorf(span, "missing expansion in alias %s", name)
	default:
		replacement = p.parseElement(&liteCommand{parts: parts[i+3:]})
	}

	p.ws.AddDecl(ast.Decl{
		Name: p.ws.Names.Intern(name),
		Sig: ast.Signature{
			Name:           name,
			RestPositional: &ast.PositionalArg{Name: "args", Shape: ast.TyAny},
		},
		NameSpan: nameTok.Span,
	})
	nameExpr := &ast.Expr{Kind: ast.ExprString, Str: name, Span: nameTok.Span, Ty: ast.TyString}
	return p.keywordCall("alias", kwTok.Span, span, nameExpr, replacement)
}

// typeFromName maps a written type annotation to a Type; parameterized
// spellings like list<int> collapse to their head.
func typeFromName(text string) ast.Type {
	if idx := strings.IndexByte(text, '<'); idx >= 0 {
		text = text[:idx]
	}
	switch text {
	case "nothing":
		return ast.TyNothing
	case "int":
		return ast.TyInt
	case "float":
		return ast.TyFloat
	case "number":
		return ast.TyNumber
	case "bool":
		return ast.TyBool
	case "string":
		return ast.TyString
	case "glob":
		return ast.TyGlob
	case "path", "directory":
		return ast.TyFilepath
	case "datetime", "date":
		return ast.TyDate
	case "duration":
		return ast.TyDuration
	case "filesize":
		return ast.TyFilesize
	case "binary":
		return ast.TyBinary
	case "range":
		return ast.TyRange
	case "list":
		return ast.TyList
	case "record":
		return ast.TyRecord
	case "table":
		return ast.TyTable
	case "closure", "block":
		return ast.TyClosure
	case "cell-path":
		return ast.TyCellPath
	case "error":
		return ast.TyError
	default:
		return ast.TyAny
	}
}
