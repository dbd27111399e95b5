package parser

import (
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lexer"
	"nulint/internal/source"
	"nulint/internal/token"
)

// parseValue classifies and parses one item as a value. hint is the
// declared shape of the position the item fills; it settles the cases
// the text alone cannot, like barewords that are cell paths.
func (p *Parser) parseValue(tok token.Token, hint ast.Type) *ast.Expr {
	sp := tok.Span
	text := string(p.text(sp))
	if text == "" {
		return &ast.Expr{Kind: ast.ExprGarbage, Span: sp}
	}
	if !p.enter(sp) {
		return &ast.Expr{Kind: ast.ExprGarbage, Span: sp}
	}
	defer p.leave()

	// Ranges first: `$a..10` and `(1 + 1)..5` would otherwise read as
	// a dollar or paren item and trip over the `..`.
	if rangeLike(text) {
		return p.parseRangeItem(text, sp)
	}

	switch text[0] {
	case '$':
		return p.parseDollar(text, sp)
	case '"', '\'', '`':
		return p.parseStringItem(text, sp, hint)
	case '(':
		return p.parseParenItem(text, sp)
	case '[':
		return p.parseListItem(text, sp)
	case '{':
		return p.parseBracesItem(text, sp)
	}

	switch text {
	case "true", "false":
		return &ast.Expr{Kind: ast.ExprBool, Bool: text == "true", Span: sp, Ty: ast.TyBool}
	case "null":
		return &ast.Expr{Kind: ast.ExprNothing, Span: sp, Ty: ast.TyNothing}
	}

	if strings.HasPrefix(text, "r#") {
		return p.parseRawString(text, sp)
	}
	if strings.HasPrefix(text, "0x[") || strings.HasPrefix(text, "0b[") || strings.HasPrefix(text, "0o[") {
		return p.parseBinaryLit(text, sp)
	}
	if isNumberLike(text) {
		if expr, ok := p.parseNumberLike(text, sp); ok {
			return expr
		}
	}

	switch hint {
	case ast.TyCellPath:
		return p.parseCellPathItem(text, sp)
	case ast.TyGlob:
		return &ast.Expr{Kind: ast.ExprGlobPattern, Str: text, Span: sp, Ty: ast.TyGlob}
	case ast.TyFilepath:
		return &ast.Expr{Kind: ast.ExprFilepath, Str: text, Span: sp, Ty: ast.TyFilepath}
	}

	// Bare word in value position reads as a string.
	return &ast.Expr{Kind: ast.ExprString, Str: text, Span: sp, Ty: ast.TyString}
}

// parseDollar parses `$name`, `$name.path`, and the `$"..."` and
// `$'...'` interpolation forms.
func (p *Parser) parseDollar(text string, sp source.Span) *ast.Expr {
	if len(text) > 1 && (text[1] == '"' || text[1] == '\'') {
		return p.parseInterpolation(text, sp)
	}

	nameEnd := 1
	for nameEnd < len(text) && isVarNameByte(text[nameEnd]) {
		nameEnd++
	}
	name := text[1:nameEnd]
	if name == "" {
		return p.garbage(sp, "expected variable name after '$'")
	}

	id, ok := p.lookupVar(name)
	if !ok {
		p.errorf(spanOf(sp.Start, sp.Start+uint32(nameEnd)), "variable not found: $%s", name)
		id = p.declareVar(name, ast.Variable{DeclSpan: sp})
	}
	varExpr := &ast.Expr{
		Kind: ast.ExprVar,
		Var:  id,
		Span: spanOf(sp.Start, sp.Start+uint32(nameEnd)),
	}
	if v := p.ws.Variable(id); v != nil {
		varExpr.Ty = v.Ty
	}

	if nameEnd == len(text) {
		return varExpr
	}
	members, ok := p.parsePathMembers(text[nameEnd:], sp.Start+uint32(nameEnd))
	if !ok {
		return p.garbage(sp, "malformed cell path")
	}
	return &ast.Expr{
		Kind: ast.ExprFullCellPath,
		Head: varExpr,
		Path: members,
		Span: sp,
	}
}

func isVarNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// parsePathMembers parses a `.a.0.b?` suffix. base is the global
// offset of the suffix's first byte.
func (p *Parser) parsePathMembers(text string, base uint32) ([]ast.PathMember, bool) {
	var members []ast.PathMember
	i := 0
	for i < len(text) {
		if text[i] != '.' {
			return members, false
		}
		i++
		start := i
		var raw string
		if i < len(text) && (text[i] == '"' || text[i] == '\'') {
			quote := text[i]
			i++
			for i < len(text) && text[i] != quote {
				i++
			}
			if i >= len(text) {
				return members, false
			}
			raw = text[start+1 : i]
			i++
		} else {
			for i < len(text) && text[i] != '.' && text[i] != '?' {
				i++
			}
			raw = text[start:i]
		}
		m := ast.PathMember{
			Name: raw,
			Span: spanOf(base+uint32(start), base+uint32(i)),
		}
		if i < len(text) && text[i] == '?' {
			m.Optional = true
			i++
			m.Span = spanOf(m.Span.Start, base+uint32(i))
		}
		if idx, ok := parseIndex(raw); ok {
			m.Kind = ast.PathInt
			m.Index = idx
		}
		if raw == "" {
			return members, false
		}
		members = append(members, m)
	}
	return members, true
}

func parseIndex(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}
	var n int64
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b < '0' || b > '9' {
			return 0, false
		}
		n = n*10 + int64(b-'0')
	}
	return n, true
}

// parseCellPathItem parses a bare cell path argument like `name.0`.
func (p *Parser) parseCellPathItem(text string, sp source.Span) *ast.Expr {
	members, ok := p.parsePathMembers("."+text, sp.Start-1)
	if !ok || len(members) == 0 {
		return p.garbage(sp, "malformed cell path")
	}
	// The synthetic dot shifted the first member's span start.
	members[0].Span = spanOf(sp.Start, members[0].Span.End)
	return &ast.Expr{Kind: ast.ExprCellPath, Path: members, Span: sp, Ty: ast.TyCellPath}
}

// parseParenItem parses `(...)` subexpressions, with an optional cell
// path hanging off the closing paren.
func (p *Parser) parseParenItem(text string, sp source.Span) *ast.Expr {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		// The lexer already reported the unclosed delimiter.
		closeIdx = len(text)
	}
	inner := text[1:min(closeIdx, len(text))]
	toks, lexErr := lexer.Lex([]byte(inner), sp.Start+1, lexer.Blocks())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}
	subEnd := sp.Start + uint32(min(closeIdx+1, len(text)))
	id := p.parseTokens(toks, ast.Signature{}, spanOf(sp.Start, subEnd))
	sub := &ast.Expr{
		Kind:  ast.ExprSubexpression,
		Block: id,
		Span:  spanOf(sp.Start, subEnd),
	}

	rest := text[min(closeIdx+1, len(text)):]
	if rest == "" {
		return sub
	}
	members, okPath := p.parsePathMembers(rest, subEnd)
	if !okPath {
		return p.garbage(sp, "malformed cell path")
	}
	return &ast.Expr{Kind: ast.ExprFullCellPath, Head: sub, Path: members, Span: sp}
}

// parseListItem parses `[...]`: a list literal, or a table literal when
// header and rows are separated by semicolons.
func (p *Parser) parseListItem(text string, sp source.Span) *ast.Expr {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	inner := text[1:min(closeIdx, len(text))]
	toks, lexErr := lexer.Lex([]byte(inner), sp.Start+1, lexer.Lists())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}

	list := &ast.Expr{Kind: ast.ExprList, Span: sp, Ty: ast.TyList}
	sawRows := false
	for _, t := range toks {
		switch t.Kind {
		case token.Semicolon:
			sawRows = true
		case token.Item:
			itemText := string(p.text(t.Span))
			if strings.HasPrefix(itemText, "...") && len(itemText) > 3 {
				list.List = append(list.List, p.parseSpreadItem(t))
			} else {
				list.List = append(list.List, p.parseValue(t, ast.TyAny))
			}
		case token.Pipe, token.PipePipe:
			p.errorf(t.Span, "unexpected %s in list", t.Kind)
		}
	}
	if sawRows {
		list.Ty = ast.TyTable
	}
	return list
}

// parseBracesItem parses `{...}` outside keyword positions: a record
// when the interior is `key: value` shaped or empty, a closure
// otherwise.
func (p *Parser) parseBracesItem(text string, sp source.Span) *ast.Expr {
	inner := braceInterior(text)
	trimmed := strings.TrimSpace(inner)
	switch {
	case strings.HasPrefix(trimmed, "|"):
		return p.parseClosureItem(text, sp)
	case trimmed == "" || p.looksLikeRecord(text, sp):
		return p.parseRecordItem(text, sp)
	default:
		return p.parseClosureItem(text, sp)
	}
}

// braceInterior strips the outer braces, tolerating an unclosed item.
func braceInterior(text string) string {
	close, ok := findClosing(text, 0)
	if !ok {
		return text[1:]
	}
	return text[1:close]
}

// looksLikeRecord re-lexes the interior in record mode and checks for
// the `key : ...` opening shape.
func (p *Parser) looksLikeRecord(text string, sp source.Span) bool {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	toks, _ := lexer.Lex([]byte(text[1:min(closeIdx, len(text))]), sp.Start+1, lexer.Records())
	if len(toks) < 2 {
		return false
	}
	first := string(p.text(toks[0].Span))
	second := string(p.text(toks[1].Span))
	if second == ":" {
		return true
	}
	// A record of nothing but spreads: `{...$base}`.
	return strings.HasPrefix(first, "...") && (len(toks) == 1 || second != ":")
}

// parseRecordItem parses `{key: value, ...}`.
func (p *Parser) parseRecordItem(text string, sp source.Span) *ast.Expr {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	toks, lexErr := lexer.Lex([]byte(text[1:min(closeIdx, len(text))]), sp.Start+1, lexer.Records())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}

	rec := &ast.Expr{Kind: ast.ExprRecord, Span: sp, Ty: ast.TyRecord}
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind != token.Item {
			i++
			continue
		}
		itemText := string(p.text(t.Span))
		if strings.HasPrefix(itemText, "...") && len(itemText) > 3 {
			rec.Record = append(rec.Record, ast.RecordField{
				Spread: true,
				Val:    p.parseSpreadItem(t),
			})
			i++
			continue
		}
		if i+2 >= len(toks) || string(p.text(toks[i+1].Span)) != ":" {
			p.errorf(t.Span, "expected ':' after record key")
			i++
			continue
		}
		key := p.parseRecordKey(t)
		val := p.parseValue(toks[i+2], ast.TyAny)
		rec.Record = append(rec.Record, ast.RecordField{Key: key, Val: val})
		i += 3
	}
	return rec
}

// parseRecordKey keeps bare and quoted keys as strings; anything else
// parses as a value.
func (p *Parser) parseRecordKey(t token.Token) *ast.Expr {
	text := string(p.text(t.Span))
	if text != "" && (text[0] == '$' || text[0] == '(') {
		return p.parseValue(t, ast.TyString)
	}
	return &ast.Expr{
		Kind: ast.ExprString,
		Str:  unquote(text),
		Span: t.Span,
		Ty:   ast.TyString,
	}
}

// parseClosureItem parses `{|params| body}` and `{ body }` items.
func (p *Parser) parseClosureItem(text string, sp source.Span) *ast.Expr {
	id := p.parseBraceBlock(text, sp, true)
	return &ast.Expr{Kind: ast.ExprClosure, Block: id, Span: sp, Ty: ast.TyClosure}
}

// parseBraceBlock parses the body of a `{...}` item into a block. When
// closure is set a leading `|params|` run declares the block's
// parameters; bodies always get their own variable scope.
func (p *Parser) parseBraceBlock(text string, sp source.Span, closure bool) ast.BlockID {
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	inner := text[1:closeIdx]
	innerBase := sp.Start + 1

	var sig ast.Signature
	p.pushScope()
	defer p.popScope()

	bodyOff := 0
	if closure {
		if params, paramStart, after, found := splitClosureParams(inner); found {
			sig = p.parseClosureParams(params, innerBase+uint32(paramStart))
			bodyOff = after
		}
	}

	toks, lexErr := lexer.Lex([]byte(inner[bodyOff:]), innerBase+uint32(bodyOff), lexer.Blocks())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}
	blockSpan := spanOf(sp.Start, sp.Start+uint32(min(closeIdx+1, len(text))))
	return p.parseTokens(toks, sig, blockSpan)
}

// splitClosureParams finds the `|params|` run opening a closure body.
// Returns the parameter text, its offset inside the interior, the
// body's offset, and whether a parameter list was present.
func splitClosureParams(inner string) (string, int, int, bool) {
	i := 0
	for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t' || inner[i] == '\n' || inner[i] == '\r') {
		i++
	}
	if i >= len(inner) || inner[i] != '|' {
		return "", 0, 0, false
	}
	start := i + 1
	end := strings.IndexByte(inner[start:], '|')
	if end < 0 {
		return "", 0, 0, false
	}
	return inner[start : start+end], start, start + end + 1, true
}

// parseClosureParams declares closure parameters in the current scope.
// base is the global offset of the parameter text.
func (p *Parser) parseClosureParams(params string, base uint32) ast.Signature {
	var sig ast.Signature
	i := 0
	skipType := false
	for i < len(params) {
		for i < len(params) && (params[i] == ' ' || params[i] == ',' || params[i] == '\t') {
			i++
		}
		start := i
		for i < len(params) && params[i] != ' ' && params[i] != ',' && params[i] != '\t' {
			i++
		}
		if start == i {
			continue
		}
		if skipType {
			skipType = false
			continue
		}
		raw := params[start:i]
		name := raw
		if colon := strings.IndexByte(name, ':'); colon >= 0 {
			// `x: int` splits after the colon; the next token is the
			// type, not another parameter.
			skipType = colon == len(name)-1
			name = name[:colon]
		}
		name = strings.TrimPrefix(name, "$")
		if name == "" {
			continue
		}
		span := spanOf(base+uint32(start), base+uint32(i))
		v := p.declareVar(name, ast.Variable{DeclSpan: span})
		sig.RequiredPositional = append(sig.RequiredPositional, ast.PositionalArg{
			Name: name,
			Var:  v,
			Span: span,
		})
	}
	return sig
}

// findClosing returns the index of the delimiter closing the one at
// open, honoring nesting and quotes.
func findClosing(text string, open int) (int, bool) {
	var closer byte
	switch text[open] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	case '{':
		closer = '}'
	default:
		return 0, false
	}
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
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
		switch b {
		case '\'', '"', '`':
			quote = b
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && b == closer {
				return i, true
			}
		}
	}
	return 0, false
}
