package token

import (
	"nulint/internal/source"
)

// Token is one lexed token. Spans address the global file set buffer;
// the token carries no text of its own, callers slice the file content.
type Token struct {
	Kind Kind
	Span source.Span
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsItem reports whether the token is a coarse item the parser must
// classify further.
func (t Token) IsItem() bool { return t.Kind == Item }

// EndsCommand reports whether the token terminates the command being
// collected, so argument gathering must stop before it.
func (t Token) EndsCommand() bool {
	return t.Kind.IsSeparator() || t.Kind.IsRedirection() || t.Kind == Comment
}
