package parser

import (
	"strings"

	"nulint/internal/ast"
	"nulint/internal/lexer"
	"nulint/internal/token"
)

// parseSignatureItem parses a `[...]` parameter list. Parameters and
// flags declare variables in the current scope, so the caller opens the
// body scope first. Per-flag doc comments become descriptions.
func (p *Parser) parseSignatureItem(tok token.Token) ast.Signature {
	text := p.tokText(tok)
	closeIdx, ok := findClosing(text, 0)
	if !ok {
		closeIdx = len(text)
	}
	inner := text[1:min(closeIdx, len(text))]
	toks, lexErr := lexer.Lex([]byte(inner), tok.Span.Start+1, lexer.Signatures())
	if lexErr != nil {
		p.ws.AddParseError(lexErr.Msg, lexErr.Span)
	}

	var sig ast.Signature
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == token.Comment:
			if n := len(sig.Named); n > 0 {
				sig.Named[n-1].Desc = commentText(p.tokText(t))
			}
			i++
		case t.Kind != token.Item:
			i++
		case p.tokText(t) == ",":
			i++
		case strings.HasPrefix(p.tokText(t), "-"):
			i = p.parseSigFlag(&sig, toks, i)
		default:
			i = p.parseSigPositional(&sig, toks, i)
		}
	}
	return sig
}

func commentText(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, "#"))
}

// parseSigPositional consumes one positional parameter: name, optional
// `?` marker, optional `: type`, optional `= default`.
func (p *Parser) parseSigPositional(sig *ast.Signature, toks []token.Token, i int) int {
	t := toks[i]
	name := p.tokText(t)
	i++

	rest := strings.HasPrefix(name, "...")
	name = strings.TrimPrefix(name, "...")
	optional := strings.HasSuffix(name, "?")
	name = strings.TrimSuffix(name, "?")
	name = strings.TrimPrefix(name, "$")
	if name == "" {
		p.errorf(t.Span, "missing parameter name")
		return i
	}

	arg := ast.PositionalArg{Name: name, Shape: ast.TyAny, Span: t.Span}
	if i < len(toks) && p.tokText(toks[i]) == ":" {
		i++
		if i < len(toks) {
			arg.Shape = typeFromName(p.tokText(toks[i]))
			i++
		} else {
			p.errorf(t.Span, "missing type for parameter %s", name)
		}
	}
	if i < len(toks) && p.tokText(toks[i]) == "=" {
		i++
		if i < len(toks) {
			p.parseValue(toks[i], arg.Shape)
			i++
		} else {
			p.errorf(t.Span, "missing default value for parameter %s", name)
		}
		optional = true
	}

	arg.Var = p.declareVar(name, ast.Variable{DeclSpan: t.Span, Ty: arg.Shape})
	switch {
	case rest:
		sig.RestPositional = &arg
	case optional:
		sig.OptionalPositional = append(sig.OptionalPositional, arg)
	default:
		sig.RequiredPositional = append(sig.RequiredPositional, arg)
	}
	return i
}

// parseSigFlag consumes one flag: `--long(-s): type = default` in any
// partial form, or a short-only `-s`.
func (p *Parser) parseSigFlag(sig *ast.Signature, toks []token.Token, i int) int {
	t := toks[i]
	text := p.tokText(t)
	i++

	flag := ast.Flag{Arg: ast.TyNothing}
	if strings.HasPrefix(text, "--") {
		long := text[2:]
		if idx := strings.IndexByte(long, '('); idx >= 0 {
			spec := long[idx:]
			long = long[:idx]
			if len(spec) >= 4 && spec[1] == '-' {
				flag.Short = rune(spec[2])
			}
		}
		flag.Long = long
		// The short spelling may follow as its own item: `--all (-a)`.
		if flag.Short == 0 && i < len(toks) {
			if spec := p.tokText(toks[i]); len(spec) == 4 &&
				strings.HasPrefix(spec, "(-") && spec[3] == ')' {
				flag.Short = rune(spec[2])
				i++
			}
		}
	} else if len(text) == 2 {
		flag.Short = rune(text[1])
	} else {
		p.errorf(t.Span, "malformed flag %s", text)
		return i
	}

	if i < len(toks) && p.tokText(toks[i]) == ":" {
		i++
		if i < len(toks) {
			flag.Arg = typeFromName(p.tokText(toks[i]))
			i++
		} else {
			p.errorf(t.Span, "missing type for flag --%s", flag.Long)
		}
	}
	if i < len(toks) && p.tokText(toks[i]) == "=" {
		i++
		if i < len(toks) {
			p.parseValue(toks[i], flag.Arg)
			i++
		} else {
			p.errorf(t.Span, "missing default value for flag --%s", flag.Long)
		}
	}

	varName := flag.Long
	if varName == "" {
		varName = string(flag.Short)
	}
	varName = strings.ReplaceAll(varName, "-", "_")
	ty := flag.Arg
	if ty == ast.TyNothing {
		ty = ast.TyBool
	}
	flag.Var = p.declareVar(varName, ast.Variable{DeclSpan: t.Span, Ty: ty})
	sig.Named = append(sig.Named, flag)
	return i
}
