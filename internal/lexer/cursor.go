package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"nulint/internal/source"
)

// Cursor is a position inside one content slice. Base is the global
// offset of the slice's first byte, so spans produced here address the
// file set buffer directly even when the slice is the inside of a
// bracketed item.
type Cursor struct {
	Content []byte
	Base    uint32
	Off     uint32
}

// NewCursor creates a cursor over content whose first byte sits at the
// global offset base.
func NewCursor(content []byte, base uint32) Cursor {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return Cursor{Content: content, Base: base}
}

// EOF reports whether the cursor is past the last byte.
func (c *Cursor) EOF() bool {
	return c.Off >= uint32(len(c.Content))
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Content[c.Off]
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= uint32(len(c.Content)) {
		return 0
	}
	return c.Content[c.Off+n]
}

// Peek2 returns the current and next byte when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= uint32(len(c.Content)) {
		return 0, 0, false
	}
	return c.Content[c.Off], c.Content[c.Off+1], true
}

// Bump advances one byte and returns it, or 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte when it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark remembers a position for later span construction.
type Mark uint32

// Mark returns the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the global span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.NewSpan(c.Base+uint32(m), c.Base+c.Off)
}

// SpanAt builds a single-byte global span at the given local offset.
func (c *Cursor) SpanAt(off uint32) source.Span {
	return source.NewSpan(c.Base+off, c.Base+off+1)
}

// Slice returns the bytes between a mark and the current position.
func (c *Cursor) Slice(m Mark) []byte {
	return c.Content[uint32(m):c.Off]
}
