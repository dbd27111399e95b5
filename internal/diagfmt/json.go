package diagfmt

import (
	"encoding/json"
	"io"

	"nulint/internal/fix"
	"nulint/internal/lint"
	"nulint/internal/source"
)

// LocationJSON places a span in a file. Byte offsets are always
// present; line/column pairs appear when requested.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// LabelJSON is a secondary annotation attached to a violation.
type LabelJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is a single text replacement of a fix.
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
}

// FixJSON is a machine-applicable fix with optional before/after
// preview lines.
type FixJSON struct {
	Description string        `json:"description"`
	Edits       []FixEditJSON `json:"edits,omitempty"`
	BeforeLines []string      `json:"before_lines,omitempty"`
	AfterLines  []string      `json:"after_lines,omitempty"`
}

// ViolationJSON is one violation in JSON form.
type ViolationJSON struct {
	Severity string       `json:"severity"`
	Rule     string       `json:"rule"`
	Message  string       `json:"message"`
	Help     string       `json:"help,omitempty"`
	Location LocationJSON `json:"location"`
	Labels   []LabelJSON  `json:"labels,omitempty"`
	Fix      *FixJSON     `json:"fix,omitempty"`
}

// Output is the root of the JSON format. Count and the severity
// tallies always cover the full violation set, even when Max trims
// the violations array.
type Output struct {
	Violations []ViolationJSON `json:"violations"`
	Count      int             `json:"count"`
	Errors     int             `json:"errors"`
	Warnings   int             `json:"warnings"`
	Hints      int             `json:"hints"`
	Truncated  bool            `json:"truncated,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	f, ok := fs.FileFor(span)
	if !ok {
		return loc
	}
	loc.File = formatPath(f, opts.PathMode, fs)

	if opts.IncludePositions {
		if start, end, ok := fs.Resolve(span); ok {
			loc.StartLine = start.Line
			loc.StartCol = start.Col
			loc.EndLine = end.Line
			loc.EndCol = end.Col
		}
	}
	return loc
}

// BuildOutput shapes violations into the JSON structure without
// serializing it.
func BuildOutput(vs []lint.Violation, fs *source.FileSet, opts JSONOpts) Output {
	errs, warns, hints := lint.CountBySeverity(vs)

	limit := len(vs)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	out := Output{
		Violations: make([]ViolationJSON, 0, limit),
		Count:      len(vs),
		Errors:     errs,
		Warnings:   warns,
		Hints:      hints,
		Truncated:  limit < len(vs),
	}

	for i := range vs[:limit] {
		v := &vs[i]
		vj := ViolationJSON{
			Severity: v.Severity.String(),
			Rule:     v.Rule,
			Message:  v.Message,
			Location: makeLocation(v.Span, fs, opts),
		}
		if opts.IncludeLabels {
			vj.Help = v.Help
			for _, l := range v.Labels {
				vj.Labels = append(vj.Labels, LabelJSON{
					Message:  l.Caption,
					Location: makeLocation(l.Span, fs, opts),
				})
			}
		}
		if opts.IncludeFixes && v.Fix != nil {
			fj := &FixJSON{Description: v.Fix.Description}
			for _, r := range v.Fix.Replacements {
				fj.Edits = append(fj.Edits, FixEditJSON{
					Location: makeLocation(r.Span, fs, opts),
					NewText:  r.NewText,
				})
			}
			if opts.IncludePreviews {
				if f, ok := fs.FileFor(v.Span); ok {
					if before, after, ok := fix.Preview(f, v.Fix); ok {
						fj.BeforeLines = previewLines(before)
						fj.AfterLines = previewLines(after)
					}
				}
			}
			vj.Fix = fj
		}
		out.Violations = append(out.Violations, vj)
	}
	return out
}

// JSON writes violations as indented JSON.
func JSON(w io.Writer, vs []lint.Violation, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(vs, fs, opts))
}
