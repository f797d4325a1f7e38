package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"charj/internal/source"
)

// Cursor is a byte position inside one file. Reads past the end yield 0.
type Cursor struct {
	file source.FileID
	buf  []byte
	off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file %q too large for a cursor: %w", f.Path, err))
	}
	return Cursor{file: f.ID, buf: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.off) >= len(c.buf) }

// Offset is the current byte offset.
func (c *Cursor) Offset() uint32 { return c.off }

// Rest returns the unread bytes.
func (c *Cursor) Rest() []byte { return c.buf[c.off:] }

func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.buf[c.off]
}

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.off)+2 > len(c.buf) {
		return 0, 0, false
	}
	return c.buf[c.off], c.buf[c.off+1], true
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.off++
	}
	return b
}

// Advance skips n bytes, stopping at the end of the buffer.
func (c *Cursor) Advance(n uint32) {
	c.off = min(c.off+n, uint32(len(c.buf)))
}

// SkipToEnd moves to the end of the buffer.
func (c *Cursor) SkipToEnd() { c.off = uint32(len(c.buf)) }

// Mark запоминает позицию начала фрагмента.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}

// Here is the empty span at the current position.
func (c *Cursor) Here() source.Span {
	return source.Span{File: c.file, Start: c.off, End: c.off}
}

func (c *Cursor) Reset(m Mark) { c.off = uint32(m) }
