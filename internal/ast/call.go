package ast

import (
	"nulint/internal/source"
)

// ArgKind tags a call argument.
type ArgKind uint8

const (
	ArgPositional ArgKind = iota
	ArgUnknown            // parser could not classify the argument
	ArgSpread
	ArgNamed
)

// Argument is one argument of a resolved call, in source order.
type Argument struct {
	Kind ArgKind
	Expr *Expr // value; nil for a bare switch flag

	// Named arguments only.
	Name     string // long name without dashes
	Short    string // short alias as spelled, without the dash
	NameSpan source.Span
}

// Span covers the flag name (if any) and the value (if any).
func (a *Argument) Span() source.Span {
	switch {
	case a.Kind == ArgNamed && a.Expr != nil:
		return a.NameSpan.Cover(a.Expr.Span)
	case a.Kind == ArgNamed:
		return a.NameSpan
	case a.Expr != nil:
		return a.Expr.Span
	default:
		return source.Span{}
	}
}

// Call is an invocation of a resolved declaration.
type Call struct {
	Decl DeclID
	Head source.Span // span of the command name as written
	Args []Argument
	Span source.Span // head through last argument

	// DefinedDecl is set on `def` calls to the declaration the call
	// introduces; NoDeclID everywhere else.
	DefinedDecl DeclID
}

// ExternalArg is one argument of an external call.
type ExternalArg struct {
	Spread bool
	Expr   *Expr
}

// ExternalCall invokes a non-shell program. Head is usually a string
// literal naming the program but may be any expression (`^$cmd`).
type ExternalCall struct {
	Head *Expr
	Args []ExternalArg
	Span source.Span
}
