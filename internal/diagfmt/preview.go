package diagfmt

import (
	"strings"

	"github.com/fatih/color"

	"nulint/internal/fix"
	"nulint/internal/lint"
	"nulint/internal/source"
)

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
)

// RenderPreview shows what a fix would do as diff-style lines: the
// affected lines prefixed with "- " and their replacements with "+ ".
// Returns false when the fix does not apply cleanly to the file.
func RenderPreview(f *source.File, fx *lint.Fix, colorize bool) (string, bool) {
	before, after, ok := fix.Preview(f, fx)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, line := range previewLines(before) {
		b.WriteString(paint(colorize, removedColor, "- "+line))
		b.WriteByte('\n')
	}
	for _, line := range previewLines(after) {
		b.WriteString(paint(colorize, addedColor, "+ "+line))
		b.WriteByte('\n')
	}
	return b.String(), true
}

// previewLines splits a preview half into lines, treating an empty
// half (a whole-line deletion) as no lines at all. Spans that run to
// the end of the file carry their final newline; trim it so it does
// not render as a phantom empty line.
func previewLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
