package ast

import (
	"nulint/internal/source"
)

// Block is an ordered sequence of pipelines plus the signature of the
// closure or command it belongs to. Top-level file code is a block with
// an empty signature.
type Block struct {
	Pipelines []Pipeline
	Sig       Signature
	Span      source.Span
}

// Pipeline is a chain of elements connected by `|`.
type Pipeline struct {
	Elements []PipelineElement
}

// Span covers the first through the last element.
func (p *Pipeline) Span() source.Span {
	if len(p.Elements) == 0 {
		return source.Span{}
	}
	sp := p.Elements[0].Expr.Span
	return sp.Cover(p.Elements[len(p.Elements)-1].Expr.Span)
}

// PipelineElement is one stage of a pipeline: an expression plus optional
// redirection metadata.
type PipelineElement struct {
	Expr     *Expr
	Redirect *Redirection
}

// RedirectTarget names which stream a redirection captures.
type RedirectTarget uint8

const (
	RedirectStdout RedirectTarget = iota
	RedirectStderr
	RedirectBoth
)

// Redirection describes where an element's output goes. Either a single
// target (Out set, Err nil) or separate stdout and stderr destinations
// (both set).
type Redirection struct {
	Out *RedirectDest
	Err *RedirectDest
}

// RedirectDest is one destination: a file expression, or the pipe into
// the next element when Pipe is set.
type RedirectDest struct {
	Target RedirectTarget
	File   *Expr // nil when Pipe
	Append bool
	Pipe   bool
	Span   source.Span
}

// Signature declares the parameters a block accepts.
type Signature struct {
	Name               string
	RequiredPositional []PositionalArg
	OptionalPositional []PositionalArg
	RestPositional     *PositionalArg
	Named              []Flag
}

// PositionalArg is one declared positional parameter.
type PositionalArg struct {
	Name  string
	Shape Type
	Var   VarID
	Span  source.Span
}

// Flag is one declared named flag. Arg is TyNothing for a bare switch.
type Flag struct {
	Long  string
	Short rune // 0 when absent
	Arg   Type
	Var   VarID
	Desc  string
}

// FindFlag returns the declared flag with the given long name or short
// spelling (single character), or nil.
func (s *Signature) FindFlag(name string) *Flag {
	for i := range s.Named {
		f := &s.Named[i]
		if f.Long == name {
			return f
		}
		if f.Short != 0 && len(name) == 1 && rune(name[0]) == f.Short {
			return f
		}
	}
	return nil
}

// PositionalCount returns the number of declared positionals, required
// plus optional, ignoring rest.
func (s *Signature) PositionalCount() int {
	return len(s.RequiredPositional) + len(s.OptionalPositional)
}
