package lexer

import (
	"fmt"

	"nulint/internal/source"
	"nulint/internal/token"
)

// Lex splits content into coarse tokens. base is the global offset of
// content's first byte, so the same function lexes whole files and the
// insides of bracketed items. The token stream is always complete;
// when the input is malformed the first failure is returned alongside
// and later knock-on failures are dropped.
func Lex(content []byte, base uint32, opts Options) ([]token.Token, *Error) {
	c := NewCursor(content, base)
	out := make([]token.Token, 0, len(content)/8+1)
	var firstErr *Error

	record := func(e *Error) {
		if firstErr == nil && e != nil {
			firstErr = e
		}
	}

	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == ' ' || b == '\t' || opts.isExtraWhitespace(b):
			c.Bump()

		case b == '\r':
			start := c.Mark()
			c.Bump()
			if c.Eat('\n') {
				out = append(out, token.Token{Kind: token.Eol, Span: c.SpanFrom(start)})
			}
			// A bare carriage return separates items but marks no line.

		case b == '\n':
			start := c.Mark()
			c.Bump()
			out = append(out, token.Token{Kind: token.Eol, Span: c.SpanFrom(start)})

		case b == '|':
			start := c.Mark()
			c.Bump()
			kind := token.Pipe
			if c.Eat('|') {
				kind = token.PipePipe
			}
			out = append(out, token.Token{Kind: kind, Span: c.SpanFrom(start)})

		case b == ';':
			start := c.Mark()
			c.Bump()
			out = append(out, token.Token{Kind: token.Semicolon, Span: c.SpanFrom(start)})

		case b == '&' && c.PeekAt(1) == '&':
			start := c.Mark()
			c.Bump()
			c.Bump()
			out = append(out, token.Token{Kind: token.AndAnd, Span: c.SpanFrom(start)})

		case b == '#':
			tok := lexComment(&c)
			if !opts.SkipComments {
				out = append(out, tok)
			}

		case opts.isSpecial(b):
			start := c.Mark()
			c.Bump()
			out = append(out, token.Token{Kind: token.Item, Span: c.SpanFrom(start)})

		default:
			tok, err := lexItem(&c, &opts)
			record(err)
			out = append(out, tok)
		}
	}
	return out, firstErr
}

// LexFile lexes a whole file with block-level options.
func LexFile(f *source.File) ([]token.Token, *Error) {
	content := f.Content[source.BOMLen(f.Content):]
	return Lex(content, f.Base+source.BOMLen(f.Content), Blocks())
}

// lexComment scans `#` through the end of its line, excluding the
// terminating line break.
func lexComment(c *Cursor) token.Token {
	start := c.Mark()
	for !c.EOF() && c.Peek() != '\n' {
		if c.Peek() == '\r' && c.PeekAt(1) == '\n' {
			break
		}
		c.Bump()
	}
	return token.Token{Kind: token.Comment, Span: c.SpanFrom(start)}
}

// errPipePrefixes are the item spellings that swallow a following `|`
// to form a stream-to-pipe redirection instead of ending at it.
var errPipePrefixes = [...]string{"e>", "err>", "o+e>", "out+err>"}

func isErrPipePrefix(text []byte) bool {
	for _, p := range errPipePrefixes {
		if string(text) == p {
			return true
		}
	}
	return false
}

// lexItem scans one coarse item: everything up to the next separator,
// carrying whole quoted and bracketed runs along. Separators lose their
// meaning inside brackets and quotes.
func lexItem(c *Cursor, opts *Options) (token.Token, *Error) {
	start := c.Mark()
	var quote byte
	var depth []byte

	pop := func(open byte) {
		if len(depth) > 0 && depth[len(depth)-1] == open {
			depth = depth[:len(depth)-1]
		}
	}

scan:
	for !c.EOF() {
		b := c.Peek()

		if quote != 0 {
			if b == '\\' && quote == '"' {
				c.Bump()
				c.Bump()
				continue
			}
			if b == quote {
				quote = 0
			}
			c.Bump()
			continue
		}

		switch {
		case b == '\'' || b == '"' || b == '`':
			quote = b
			c.Bump()
		case b == '[' || b == '(' || b == '{':
			depth = append(depth, b)
			c.Bump()
		case b == ']':
			pop('[')
			c.Bump()
		case b == ')':
			pop('(')
			c.Bump()
		case b == '}':
			pop('{')
			c.Bump()
		case len(depth) > 0:
			c.Bump()
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			break scan
		case b == ';':
			break scan
		case b == '|':
			if isErrPipePrefix(c.Slice(start)) {
				c.Bump()
			}
			break scan
		case opts.isExtraWhitespace(b) || opts.isSpecial(b):
			break scan
		default:
			c.Bump()
		}
	}

	span := c.SpanFrom(start)
	var err *Error
	switch {
	case quote != 0:
		err = &Error{
			Msg:  fmt.Sprintf("unexpected end of input (expected closing %q)", string(quote)),
			Span: lastByteSpan(c),
		}
	case len(depth) > 0:
		err = &Error{
			Msg:  fmt.Sprintf("unexpected end of input (expected %q)", string(closerFor(depth[len(depth)-1]))),
			Span: lastByteSpan(c),
		}
	}

	kind := token.Item
	if k, ok := token.RedirectKind(string(c.Slice(start))); ok {
		kind = k
	}
	return token.Token{Kind: kind, Span: span}, err
}

func closerFor(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '(':
		return ')'
	default:
		return '}'
	}
}

func lastByteSpan(c *Cursor) source.Span {
	if c.Off == 0 {
		return source.NewSpan(c.Base, c.Base)
	}
	return source.NewSpan(c.Base+c.Off-1, c.Base+c.Off)
}
