package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"nulint/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// positionForOffsetInFile maps a file-local byte offset to an LSP
// position: 0-based line, UTF-16 column.
func positionForOffsetInFile(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	line := idx
	var lineStart uint32
	if idx > 0 {
		lineStart = lineIdx[idx-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if r == utf8.RuneError && size == 1 {
			size = 1
		}
		if off+safeUint32(size) > offset {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return position{Line: line, Character: units}
}

// rangeForSpan converts a workspace-global span to an LSP range within
// its owning file.
func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	local := span.ShiftLeft(file.Base)
	return lspRange{
		Start: positionForOffsetInFile(file, local.Start),
		End:   positionForOffsetInFile(file, local.End),
	}
}
