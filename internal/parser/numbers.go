package parser

import (
	"strconv"
	"strings"
	"time"

	"nulint/internal/ast"
	"nulint/internal/source"
	"nulint/internal/token"
)

type numClass uint8

const (
	numNone numClass = iota
	numRange
	numInt
	numFloat
	numUnit
	numDate
)

// isNumberLike reports whether the item text is a numeric literal,
// duration, filesize, range, or date. It must be exact: items like
// `7z` start with a digit but name external commands, so a loose
// first-byte check is not enough.
func isNumberLike(text string) bool {
	return classifyNumber(text) != numNone
}

func classifyNumber(text string) numClass {
	if text == "" {
		return numNone
	}
	if rangeLike(text) {
		return numRange
	}
	if _, err := strconv.ParseInt(text, 0, 64); err == nil {
		return numInt
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		// ParseFloat admits spellings like `inf` and `NaN` that are
		// barewords in a script, so require a numeric lead byte.
		if c := text[0]; c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' {
			return numFloat
		}
		return numNone
	}
	if _, _, ok := splitUnitSuffix(text); ok {
		return numUnit
	}
	if dateLike(text) {
		return numDate
	}
	return numNone
}

// parseNumberLike parses the numeric item forms. The bool result is
// false when the text is not numeric after all, letting the caller
// fall back to bareword handling.
func (p *Parser) parseNumberLike(text string, sp source.Span) (*ast.Expr, bool) {
	switch classifyNumber(text) {
	case numRange:
		return p.parseRangeItem(text, sp), true
	case numInt:
		n, _ := strconv.ParseInt(text, 0, 64)
		return &ast.Expr{Kind: ast.ExprInt, Int: n, Span: sp, Ty: ast.TyInt}, true
	case numFloat:
		f, _ := strconv.ParseFloat(text, 64)
		return &ast.Expr{Kind: ast.ExprFloat, Float: f, Span: sp, Ty: ast.TyFloat}, true
	case numUnit:
		return p.parseUnitValue(text, sp), true
	case numDate:
		return p.parseDateItem(text, sp), true
	default:
		return nil, false
	}
}

// unitTypes maps unit suffixes (lowercased) to the value type they
// produce.
var unitTypes = map[string]ast.Type{
	"b":   ast.TyFilesize,
	"kb":  ast.TyFilesize,
	"mb":  ast.TyFilesize,
	"gb":  ast.TyFilesize,
	"tb":  ast.TyFilesize,
	"pb":  ast.TyFilesize,
	"eb":  ast.TyFilesize,
	"kib": ast.TyFilesize,
	"mib": ast.TyFilesize,
	"gib": ast.TyFilesize,
	"tib": ast.TyFilesize,
	"pib": ast.TyFilesize,
	"eib": ast.TyFilesize,

	"ns":  ast.TyDuration,
	"us":  ast.TyDuration,
	"µs":  ast.TyDuration,
	"ms":  ast.TyDuration,
	"sec": ast.TyDuration,
	"min": ast.TyDuration,
	"hr":  ast.TyDuration,
	"day": ast.TyDuration,
	"wk":  ast.TyDuration,
}

// splitUnitSuffix splits `10kb` style items into magnitude and unit.
func splitUnitSuffix(text string) (string, string, bool) {
	i := len(text)
	for i > 0 {
		b := text[i-1]
		if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80 {
			i--
			continue
		}
		break
	}
	if i == 0 || i == len(text) {
		return "", "", false
	}
	num, unit := text[:i], strings.ToLower(text[i:])
	if _, ok := unitTypes[unit]; !ok {
		return "", "", false
	}
	if _, err := strconv.ParseInt(num, 10, 64); err == nil {
		return num, unit, true
	}
	if _, err := strconv.ParseFloat(num, 64); err == nil {
		return num, unit, true
	}
	return "", "", false
}

func (p *Parser) parseUnitValue(text string, sp source.Span) *ast.Expr {
	num, unit, _ := splitUnitSuffix(text)
	inner := &ast.Expr{Span: spanOf(sp.Start, sp.Start+uint32(len(num)))}
	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		inner.Kind = ast.ExprInt
		inner.Int = n
		inner.Ty = ast.TyInt
	} else {
		f, _ := strconv.ParseFloat(num, 64)
		inner.Kind = ast.ExprFloat
		inner.Float = f
		inner.Ty = ast.TyFloat
	}
	return &ast.Expr{
		Kind:  ast.ExprValueWithUnit,
		Inner: inner,
		Str:   unit,
		Span:  sp,
		Ty:    unitTypes[unit],
	}
}

// rangeLike reports whether the item reads as a range literal. Each
// bound must look like a value a range can hold, which keeps barewords
// such as `a..b` and spread items out.
func rangeLike(text string) bool {
	if strings.HasPrefix(text, "...") {
		return false
	}
	segs, _, ok := splitRange(text)
	if !ok || len(segs) < 2 || len(segs) > 3 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			continue
		}
		switch s[0] {
		case '$', '(':
		case '+', '-', '.':
			if len(s) == 1 {
				return false
			}
		default:
			if s[0] < '0' || s[0] > '9' {
				return false
			}
		}
	}
	return true
}

// splitRange splits on top-level `..` runs and reports whether the end
// is inclusive (`..`, `..=`) or exclusive (`..<`).
func splitRange(text string) ([]string, bool, bool) {
	var segs []string
	incl := true
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		if quote != 0 {
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
		case '.':
			if depth == 0 && i+1 < len(text) && text[i+1] == '.' {
				segs = append(segs, text[start:i])
				i++
				if i+1 < len(text) && (text[i+1] == '<' || text[i+1] == '=') {
					incl = text[i+1] == '='
					i++
				}
				start = i + 1
			}
		}
	}
	if depth != 0 || quote != 0 {
		return nil, true, false
	}
	segs = append(segs, text[start:])
	return segs, incl, len(segs) > 1
}

func (p *Parser) parseRangeItem(text string, sp source.Span) *ast.Expr {
	segs, incl, _ := splitRange(text)
	rng := &ast.Expr{Kind: ast.ExprRange, Span: sp, Incl: incl, Ty: ast.TyRange}

	bound := func(seg string, off int) *ast.Expr {
		if seg == "" {
			return nil
		}
		tok := token.Token{
			Kind: token.Item,
			Span: spanOf(sp.Start+uint32(off), sp.Start+uint32(off+len(seg))),
		}
		return p.parseValue(tok, ast.TyAny)
	}

	pos := 0
	exprs := make([]*ast.Expr, len(segs))
	for i, seg := range segs {
		exprs[i] = bound(seg, pos)
		// Step past the segment, the `..`, and any `<` or `=` marker.
		pos += len(seg) + 2
		if pos < len(text) && (text[pos] == '<' || text[pos] == '=') {
			pos++
		}
	}

	rng.From = exprs[0]
	if len(segs) == 2 {
		rng.To = exprs[1]
	} else {
		rng.Step = exprs[1]
		rng.To = exprs[2]
	}
	return rng
}

// dateLike matches `yyyy-mm-dd` optionally followed by a `T...` time
// part.
func dateLike(text string) bool {
	if len(text) < 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		switch i {
		case 4, 7:
			if text[i] != '-' {
				return false
			}
		default:
			if text[i] < '0' || text[i] > '9' {
				return false
			}
		}
	}
	return len(text) == 10 || text[10] == 'T'
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

func (p *Parser) parseDateItem(text string, sp source.Span) *ast.Expr {
	valid := false
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			valid = true
			break
		}
	}
	if !valid {
		p.errorf(sp, "invalid date literal %q", text)
	}
	return &ast.Expr{Kind: ast.ExprDateTime, Str: text, Span: sp, Ty: ast.TyDate}
}
