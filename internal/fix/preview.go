package fix

import (
	"sort"

	"nulint/internal/lint"
	"nulint/internal/source"
)

// Preview renders the lines a fix touches, before and after applying
// it, for display next to the diagnostic. ok is false when the fix
// would not validate against the file.
func Preview(f *source.File, fx *lint.Fix) (before, after string, ok bool) {
	if fx == nil || validateFix(f, fx) != "" {
		return "", "", false
	}

	cover := fx.Replacements[0].Span
	for _, r := range fx.Replacements[1:] {
		cover = cover.Cover(r.Span)
	}
	lo, hi := lineBounds(f.Content, cover.Start-f.Base, cover.End-f.Base)
	before = string(f.Content[lo:hi])

	edits := make([]edit, 0, len(fx.Replacements))
	for _, r := range fx.Replacements {
		edits = append(edits, edit{
			start: r.Span.Start - f.Base - lo,
			end:   r.Span.End - f.Base - lo,
			text:  r.NewText,
		})
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start == edits[j].start {
			return edits[i].end > edits[j].end
		}
		return edits[i].start > edits[j].start
	})

	buf := []byte(before)
	for _, ed := range edits {
		suffix := append([]byte(nil), buf[ed.end:]...)
		buf = append(append(buf[:ed.start], []byte(ed.text)...), suffix...)
	}
	return before, string(buf), true
}

// lineBounds widens local offsets to the enclosing line run, excluding
// the line breaks on both ends.
func lineBounds(content []byte, lo, hi uint32) (uint32, uint32) {
	for lo > 0 && content[lo-1] != '\n' {
		lo--
	}
	for int(hi) < len(content) && content[hi] != '\n' {
		hi++
	}
	return lo, hi
}
