package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nulint/internal/lint"
	"nulint/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	hintColor  = color.New(color.FgCyan, color.Bold)
	ruleColor  = color.New(color.FgMagenta)
	labelColor = color.New(color.FgBlue)
)

func paint(on bool, c *color.Color, s string) string {
	if !on {
		return s
	}
	return c.Sprint(s)
}

func severityTag(s lint.Severity) string {
	switch s {
	case lint.SevError:
		return "ERROR"
	case lint.SevWarn:
		return "WARNING"
	}
	return "HINT"
}

func severityColor(s lint.Severity) *color.Color {
	switch s {
	case lint.SevError:
		return errorColor
	case lint.SevWarn:
		return warnColor
	}
	return hintColor
}

// Pretty renders violations in a human-oriented multi-line format:
// a path:line:col header, the offending source line with a caret
// marker under the primary span, tilde markers for labels, and
// optional help, fix and preview trailers. Violations are separated
// by a blank line.
func Pretty(w io.Writer, vs []lint.Violation, fs *source.FileSet, opts PrettyOpts) {
	for i := range vs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &vs[i], fs, opts)
	}
}

func prettyOne(w io.Writer, v *lint.Violation, fs *source.FileSet, opts PrettyOpts) {
	tag := paint(opts.Color, severityColor(v.Severity), severityTag(v.Severity))
	rule := paint(opts.Color, ruleColor, v.Rule)

	f, okFile := fs.FileFor(v.Span)
	start, _, okPos := fs.Resolve(v.Span)
	if !okFile || !okPos {
		fmt.Fprintf(w, "%s %s: %s\n", tag, rule, v.Message)
		return
	}
	path := formatPath(f, opts.PathMode, fs)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, tag, rule, v.Message)

	// Labels on the primary line become extra marker rows under the
	// same excerpt; labels elsewhere get excerpts of their own.
	var sameLine, elsewhere []lint.Label
	for _, l := range v.Labels {
		ls, _, ok := fs.Resolve(l.Span)
		if !ok {
			continue
		}
		if ls.Line == start.Line {
			sameLine = append(sameLine, l)
		} else {
			elsewhere = append(elsewhere, l)
		}
	}

	gutter := gutterWidth(f, fs, start.Line, elsewhere, opts.Context)

	if opts.Context > 0 {
		for ln := int64(start.Line) - int64(opts.Context); ln < int64(start.Line); ln++ {
			if ln >= 1 {
				writeSourceLine(w, gutter, uint32(ln), f.GetLine(uint32(ln)))
			}
		}
	}

	writeSourceLine(w, gutter, start.Line, f.GetLine(start.Line))
	pad, width := markerExtent(fs, f, v.Span, start)
	writeMarkerRow(w, gutter, pad, width, '^', v.Primary, opts.Color, severityColor(v.Severity))
	for _, l := range sameLine {
		ls, _, _ := fs.Resolve(l.Span)
		lpad, lwidth := markerExtent(fs, f, l.Span, ls)
		writeMarkerRow(w, gutter, lpad, lwidth, '~', l.Caption, opts.Color, labelColor)
	}

	if opts.Context > 0 {
		last := lastContentLine(f)
		for ln := start.Line + 1; ln <= last && ln-start.Line <= uint32(opts.Context); ln++ {
			writeSourceLine(w, gutter, ln, f.GetLine(ln))
		}
	}

	for _, l := range elsewhere {
		ls, _, _ := fs.Resolve(l.Span)
		writeSourceLine(w, gutter, ls.Line, f.GetLine(ls.Line))
		lpad, lwidth := markerExtent(fs, f, l.Span, ls)
		writeMarkerRow(w, gutter, lpad, lwidth, '~', l.Caption, opts.Color, labelColor)
	}

	if opts.ShowHelp && v.Help != "" {
		fmt.Fprintf(w, "%*s = help: %s\n", gutter, "", v.Help)
	}
	if v.Fix != nil && (opts.ShowFixes || opts.ShowPreview) {
		fmt.Fprintf(w, "%*s = fix: %s\n", gutter, "", v.Fix.Description)
		if opts.ShowPreview {
			if diff, ok := RenderPreview(f, v.Fix, opts.Color); ok {
				for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
					fmt.Fprintf(w, "%*s   %s\n", gutter, "", line)
				}
			}
		}
	}
}

func writeSourceLine(w io.Writer, gutter int, num uint32, text string) {
	fmt.Fprintf(w, "%*d | %s\n", gutter, num, text)
}

func writeMarkerRow(w io.Writer, gutter, pad, width int, mark byte, caption string, colorize bool, c *color.Color) {
	marker := strings.Repeat(string(mark), width)
	if caption != "" {
		marker += " " + caption
	}
	fmt.Fprintf(w, "%*s | %s%s\n", gutter, "", strings.Repeat(" ", pad), paint(colorize, c, marker))
}

// markerExtent computes the display-width padding and marker length for
// a span on its starting line. Multi-line spans are marked to the end
// of the first line; tabs and wide runes count by terminal cells.
func markerExtent(fs *source.FileSet, f *source.File, span source.Span, start source.LineCol) (pad, width int) {
	line := f.GetLine(start.Line)
	prefix := line
	if n := int(start.Col) - 1; n >= 0 && n <= len(line) {
		prefix = line[:n]
	}
	pad = runewidth.StringWidth(prefix)

	text := fs.Text(span)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	width = runewidth.StringWidth(text)
	if width < 1 {
		width = 1
	}
	return pad, width
}

func gutterWidth(f *source.File, fs *source.FileSet, primary uint32, elsewhere []lint.Label, context int8) int {
	maxLine := primary
	if context > 0 {
		after := primary + uint32(context)
		if last := lastContentLine(f); after > last {
			after = last
		}
		if after > maxLine {
			maxLine = after
		}
	}
	for _, l := range elsewhere {
		if ls, _, ok := fs.Resolve(l.Span); ok && ls.Line > maxLine {
			maxLine = ls.Line
		}
	}
	return len(strconv.FormatUint(uint64(maxLine), 10))
}

// lastContentLine is the number of the last line worth printing. A
// trailing newline opens an empty final line that is skipped.
func lastContentLine(f *source.File) uint32 {
	n := uint32(len(f.LineIdx)) + 1
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' && n > 1 {
		n--
	}
	return n
}

// Summary writes the closing tally line.
func Summary(w io.Writer, vs []lint.Violation, colorize bool) {
	errs, warns, hints := lint.CountBySeverity(vs)
	if errs+warns+hints == 0 {
		fmt.Fprintln(w, "no problems found")
		return
	}
	var parts []string
	if errs > 0 {
		parts = append(parts, paint(colorize, errorColor, counted(errs, "error")))
	}
	if warns > 0 {
		parts = append(parts, paint(colorize, warnColor, counted(warns, "warning")))
	}
	if hints > 0 {
		parts = append(parts, paint(colorize, hintColor, counted(hints, "hint")))
	}
	fmt.Fprintf(w, "found %s\n", strings.Join(parts, ", "))
}

func counted(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
