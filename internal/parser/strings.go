package parser

import (
	"strings"
	"unicode/utf8"

	"nulint/internal/ast"
	"nulint/internal/lexer"
	"nulint/internal/source"
)

// parseStringItem parses quoted strings. Double quotes process escapes,
// single quotes and backticks are literal. A quoted string in a path
// position stays a path; a quoted string in a glob position does NOT
// glob, which is the usual way to opt out of expansion.
func (p *Parser) parseStringItem(text string, sp source.Span, hint ast.Type) *ast.Expr {
	quote := text[0]
	closeIdx := findQuoteEnd(text, 0, quote)
	if closeIdx < 0 {
		// Unclosed; the lexer reported it. Take everything.
		closeIdx = len(text)
	}
	raw := text[1:min(closeIdx, len(text))]

	var val string
	if quote == '"' {
		val = p.unescapeDouble(raw, sp.Start+1)
	} else {
		val = raw
	}

	var head *ast.Expr
	if hint == ast.TyFilepath {
		head = &ast.Expr{Kind: ast.ExprFilepath, Str: val, Span: sp, Ty: ast.TyFilepath}
	} else {
		head = &ast.Expr{Kind: ast.ExprString, Str: val, Span: sp, Ty: ast.TyString}
	}

	rest := text[min(closeIdx+1, len(text)):]
	if rest == "" {
		return head
	}
	restBase := sp.Start + uint32(closeIdx) + 1
	members, ok := p.parsePathMembers(rest, restBase)
	if !ok {
		return p.garbage(sp, "malformed cell path")
	}
	head.Span = spanOf(sp.Start, restBase)
	return &ast.Expr{Kind: ast.ExprFullCellPath, Head: head, Path: members, Span: sp}
}

// findQuoteEnd locates the quote closing the one at open, or -1.
// Backslash escapes only count inside double quotes.
func findQuoteEnd(text string, open int, quote byte) int {
	for i := open + 1; i < len(text); i++ {
		if text[i] == '\\' && quote == '"' {
			i++
			continue
		}
		if text[i] == quote {
			return i
		}
	}
	return -1
}

// unescapeDouble resolves backslash escapes in double-quoted content.
// base is the global offset of the content's first byte, used to place
// errors for bad escapes.
func (p *Parser) unescapeDouble(raw string, base uint32) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte(7)
		case 'b':
			b.WriteByte(8)
		case 'f':
			b.WriteByte(12)
		case 'e':
			b.WriteByte(27)
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'', '/', '(', ')', '{', '}', '[', ']', '$', '^', '#', '|', '~', ';':
			b.WriteByte(raw[i])
		case 'u':
			r, width, ok := decodeUnicodeEscape(raw[i+1:])
			if !ok {
				p.errorf(spanOf(base+uint32(i-1), base+uint32(i+1)), "invalid unicode escape")
				b.WriteByte('u')
				continue
			}
			b.WriteRune(r)
			i += width
		default:
			p.errorf(spanOf(base+uint32(i-1), base+uint32(i+1)),
				"unsupported escape character '\\%c'", raw[i])
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// decodeUnicodeEscape reads the `{hex}` after `\u`. Returns the rune,
// the number of bytes consumed, and whether decoding succeeded.
func decodeUnicodeEscape(text string) (rune, int, bool) {
	if len(text) == 0 || text[0] != '{' {
		return 0, 0, false
	}
	end := strings.IndexByte(text, '}')
	if end < 0 || end == 1 || end > 7 {
		return 0, 0, false
	}
	var r rune
	for _, c := range text[1:end] {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, 0, false
		}
		r = r<<4 | d
	}
	if !utf8.ValidRune(r) {
		return 0, 0, false
	}
	return r, end + 1, true
}

// unquote strips one level of surrounding quotes without escape
// processing; used for record keys and declaration names.
func unquote(text string) string {
	if len(text) >= 2 {
		q := text[0]
		if (q == '"' || q == '\'' || q == '`') && text[len(text)-1] == q {
			return text[1 : len(text)-1]
		}
	}
	return text
}

// parseRawString parses `r#'...'#` literals. The number of hash marks
// may vary; the closing run must match the opening one.
func (p *Parser) parseRawString(text string, sp source.Span) *ast.Expr {
	hashes := 0
	for i := 1; i < len(text) && text[i] == '#'; i++ {
		hashes++
	}
	open := 1 + hashes
	if open >= len(text) || text[open] != '\'' {
		return p.garbage(sp, "malformed raw string")
	}
	suffix := "'" + strings.Repeat("#", hashes)
	if !strings.HasSuffix(text[open+1:], suffix) {
		return p.garbage(sp, "unclosed raw string")
	}
	content := text[open+1 : len(text)-len(suffix)]
	return &ast.Expr{Kind: ast.ExprRawString, Str: content, Span: sp, Ty: ast.TyString}
}

// parseBinaryLit parses `0x[...]`, `0b[...]`, and `0o[...]` binary
// literals. Hex content decodes to bytes; the other radixes keep their
// digit text, which is all downstream passes need.
func (p *Parser) parseBinaryLit(text string, sp source.Span) *ast.Expr {
	closeIdx, ok := findClosing(text, 2)
	if !ok {
		closeIdx = len(text)
	}
	content := text[3:min(closeIdx, len(text))]
	e := &ast.Expr{Kind: ast.ExprBinaryLit, Span: sp, Ty: ast.TyBinary}
	if text[1] != 'x' {
		e.Bytes = []byte(content)
		return e
	}
	var hi byte
	haveHi := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			continue
		default:
			p.errorf(spanOf(sp.Start+uint32(3+i), sp.Start+uint32(4+i)),
				"invalid hex digit %q in binary literal", c)
			continue
		}
		if haveHi {
			e.Bytes = append(e.Bytes, hi<<4|d)
			haveHi = false
		} else {
			hi = d
			haveHi = true
		}
	}
	if haveHi {
		p.errorf(sp, "binary literal has an odd number of hex digits")
	}
	return e
}

// parseInterpolation parses `$"..."` and `$'...'` strings. Literal runs
// and parenthesized subexpressions alternate as parts; double-quoted
// form also processes escapes, so `\(` is a literal paren.
func (p *Parser) parseInterpolation(text string, sp source.Span) *ast.Expr {
	quote := text[1]
	content := text[2:]
	if len(content) > 0 && content[len(content)-1] == quote {
		content = content[:len(content)-1]
	}
	base := sp.Start + 2

	interp := &ast.Expr{Kind: ast.ExprStringInterp, Span: sp, Ty: ast.TyString}
	runStart := 0
	flush := func(end int) {
		if end <= runStart {
			return
		}
		raw := content[runStart:end]
		val := raw
		if quote == '"' {
			val = p.unescapeDouble(raw, base+uint32(runStart))
		}
		interp.List = append(interp.List, &ast.Expr{
			Kind: ast.ExprString,
			Str:  val,
			Span: spanOf(base+uint32(runStart), base+uint32(end)),
			Ty:   ast.TyString,
		})
	}

	for i := 0; i < len(content); i++ {
		if content[i] == '\\' && quote == '"' {
			i++
			continue
		}
		if content[i] != '(' {
			continue
		}
		flush(i)
		closeIdx, ok := findClosing(content, i)
		if !ok {
			p.errorf(spanOf(base+uint32(i), base+uint32(len(content))),
				"unclosed '(' in string interpolation")
			closeIdx = len(content)
		}
		inner := content[i+1 : closeIdx]
		toks, lexErr := lexer.Lex([]byte(inner), base+uint32(i)+1, lexer.Blocks())
		if lexErr != nil {
			p.ws.AddParseError(lexErr.Msg, lexErr.Span)
		}
		partSpan := spanOf(base+uint32(i), base+uint32(min(closeIdx+1, len(content))))
		id := p.parseTokens(toks, ast.Signature{}, partSpan)
		interp.List = append(interp.List, &ast.Expr{
			Kind:  ast.ExprSubexpression,
			Block: id,
			Span:  partSpan,
		})
		i = closeIdx
		runStart = i + 1
	}
	flush(len(content))
	return interp
}
