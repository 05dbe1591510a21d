package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ngmigrate/internal/source"
)

// Cursor is a byte position inside one file.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// NewCursorAt creates a cursor restricted to the given span. Used to rescan
// a captured body span without re-tokenizing the whole file.
func NewCursorAt(f *source.File, span source.Span) Cursor {
	return Cursor{
		File:  f,
		Off:   span.Start,
		Limit: span.End,
	}
}

// EOF reports whether the cursor has reached its limit.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek reads the current byte without consuming it, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt reads the byte n positions ahead, 0 when out of range.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor position used to produce spans.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// TextFrom returns the source text from a mark to the current position.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[uint32(m):c.Off])
}
