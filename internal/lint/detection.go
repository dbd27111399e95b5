package lint

import (
	"nulint/internal/source"
)

// Label is a secondary annotated span of a detection.
type Label struct {
	Caption string
	Span    source.Span
}

// Detection is one finding of a rule before severity and rule id attach:
// where, what, and any supporting spans. Rules produce these; the runner
// turns them into violations.
type Detection struct {
	Span    source.Span // primary span
	Message string
	Primary string // caption on the primary span, "" for none
	Labels  []Label
	Help    string
}

// NewDetection builds the minimal detection.
func NewDetection(span source.Span, message string) Detection {
	return Detection{Span: span, Message: message}
}

// WithPrimary captions the primary span.
func (d Detection) WithPrimary(caption string) Detection {
	d.Primary = caption
	return d
}

// WithLabel attaches a secondary labelled span.
func (d Detection) WithLabel(caption string, span source.Span) Detection {
	d.Labels = append(d.Labels, Label{Caption: caption, Span: span})
	return d
}

// WithHelp attaches free-form guidance shown under the diagnostic.
func (d Detection) WithHelp(help string) Detection {
	d.Help = help
	return d
}

// Replacement swaps the bytes of a span for new text.
type Replacement struct {
	Span    source.Span
	NewText string
}

// Fix is a machine-applicable rewrite: a description plus replacements
// that must not overlap. A fix applies wholesale or not at all.
type Fix struct {
	Description  string
	Replacements []Replacement
}

// NewFix builds a fix over the given replacements.
func NewFix(description string, replacements ...Replacement) *Fix {
	return &Fix{Description: description, Replacements: replacements}
}

// Replace is shorthand for a single-replacement fix.
func Replace(description string, span source.Span, newText string) *Fix {
	return NewFix(description, Replacement{Span: span, NewText: newText})
}
