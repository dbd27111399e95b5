package source

import (
	"fmt"
	"unicode/utf8"
)

// Span is a half-open byte interval [Start, End) into the working-set
// buffer: the virtual concatenation of every file loaded for a lint run.
// Offsets are global; use FileSet.ToFileSpan to recover the owning file.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// FileSpan is a half-open byte interval relative to a single file.
type FileSpan struct {
	File  FileID
	Start uint32
	End   uint32
}

func NewSpan(start, end uint32) Span {
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether the global offset off lies in [Start, End).
func (s Span) ContainsOffset(off uint32) bool {
	return s.Start <= off && off < s.End
}

// ShiftLeft moves the span n bytes toward the buffer start. If the shift
// would underflow, the span is returned unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{Start: s.Start - n, End: s.End - n}
}

// ShiftRight moves the span n bytes toward the buffer end.
func (s Span) ShiftRight(n uint32) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

// Slice extracts the span's bytes from buf. Returns false when the span
// falls outside buf or does not sit on UTF-8 character boundaries.
func (s Span) Slice(buf []byte) ([]byte, bool) {
	if s.Start > s.End || int(s.End) > len(buf) {
		return nil, false
	}
	if !IsBoundary(buf, s.Start) || !IsBoundary(buf, s.End) {
		return nil, false
	}
	return buf[s.Start:s.End], true
}

func (s FileSpan) Empty() bool {
	return s.Start == s.End
}

func (s FileSpan) Len() uint32 {
	return s.End - s.Start
}

func (s FileSpan) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Span drops the file association, turning the interval back into raw
// offsets relative to the file's own content.
func (s FileSpan) Span() Span {
	return Span{Start: s.Start, End: s.End}
}

// IsBoundary reports whether off is a valid UTF-8 character boundary in
// buf. The end of the buffer counts as a boundary.
func IsBoundary(buf []byte, off uint32) bool {
	n := len(buf)
	if int(off) > n {
		return false
	}
	if int(off) == n || off == 0 {
		return true
	}
	return utf8.RuneStart(buf[off])
}
