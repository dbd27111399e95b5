package fix

import (
	"nulint/internal/lint"
	"nulint/internal/source"
)

// Builders assemble the common fix shapes so rules stay declarative.
// Single-replacement rewrites can also use lint.Replace directly.

// Insert creates a fix that inserts text at a single offset.
func Insert(description string, at uint32, text string) *lint.Fix {
	return lint.NewFix(description, lint.Replacement{
		Span:    source.NewSpan(at, at),
		NewText: text,
	})
}

// InsertBefore inserts text just ahead of the span.
func InsertBefore(description string, sp source.Span, text string) *lint.Fix {
	return Insert(description, sp.Start, text)
}

// InsertAfter inserts text right past the span.
func InsertAfter(description string, sp source.Span, text string) *lint.Fix {
	return Insert(description, sp.End, text)
}

// Delete removes the text covered by the span.
func Delete(description string, sp source.Span) *lint.Fix {
	return lint.NewFix(description, lint.Replacement{Span: sp, NewText: ""})
}

// Wrap surrounds the span with prefix and suffix insertions.
func Wrap(description string, sp source.Span, prefix, suffix string) *lint.Fix {
	return lint.NewFix(description,
		lint.Replacement{Span: source.NewSpan(sp.Start, sp.Start), NewText: prefix},
		lint.Replacement{Span: source.NewSpan(sp.End, sp.End), NewText: suffix},
	)
}
