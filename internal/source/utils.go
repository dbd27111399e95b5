package source

import (
	"bytes"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func hasBOM(content []byte) bool {
	return bytes.HasPrefix(content, utf8BOM)
}

// BOMLen returns the length of the UTF-8 byte order mark prefix, 0 or 3.
// The lexer uses it to start scanning past the marker without mutating
// the stored content.
func BOMLen(content []byte) uint32 {
	if hasBOM(content) {
		return 3
	}
	return 0
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol converts a file-local offset to 1-based line/column. A newline
// character belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Binary search for the number of newlines strictly before off.
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	// One canonical spelling in cross-platform output.
	return filepath.ToSlash(filepath.Clean(p))
}
