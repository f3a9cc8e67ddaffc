package buf

import "fmt"

// Cursor is a read position over an immutable byte slice. Every read is
// checked against the slice length and fails with ErrShort instead of
// panicking; a failed read leaves the offset unchanged.
type Cursor struct {
	b   []byte
	off int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.b) }

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.b) - c.off }

// Seek moves the cursor to an absolute offset. Seeking to len(b) is allowed.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.b) {
		return fmt.Errorf("seek to %d of %d: %w", off, len(c.b), ErrShort)
	}
	c.off = off
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	end, ok := AddOverflowSafe(c.off, n)
	if !ok {
		return fmt.Errorf("skip %d at %d: %w", n, c.off, ErrShort)
	}
	return c.Seek(end)
}

// Bytes returns the next n bytes without copying and advances past them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	s, ok := Slice(c.b, c.off, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at %d of %d: %w", n, c.off, len(c.b), ErrShort)
	}
	c.off += n
	return s, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	s, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	s, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return U16LE(s), nil
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	s, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return U32LE(s), nil
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	s, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return U64LE(s), nil
}
