package cursor

import "unicode/utf8"

// ByteCursor is a Cursor[int] over a contiguous byte slice — the common
// case of searching a string or []byte already held in memory.
type ByteCursor struct {
	text []byte
	pos  int
}

// NewByteCursor returns a cursor positioned at the start of text.
func NewByteCursor(text []byte) *ByteCursor {
	return &ByteCursor{text: text}
}

// NewStringCursor returns a cursor over a copy of s's bytes.
func NewStringCursor(s string) *ByteCursor {
	return &ByteCursor{text: []byte(s)}
}

func (c *ByteCursor) Position() int     { return c.pos }
func (c *ByteCursor) SetPosition(p int) { c.pos = p }

func (c *ByteCursor) NextByte() (byte, bool) {
	if c.pos >= len(c.text) {
		return 0, false
	}
	return c.text[c.pos], true
}

func (c *ByteCursor) PrevByte() (byte, bool) {
	if c.pos == 0 {
		return 0, false
	}
	return c.text[c.pos-1], true
}

func (c *ByteCursor) NextChar() (rune, bool) {
	if c.pos >= len(c.text) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(c.text[c.pos:])
	return r, true
}

func (c *ByteCursor) PrevChar() (rune, bool) {
	if c.pos == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRune(c.text[:c.pos])
	return r, true
}

func (c *ByteCursor) MoveForward(n int) {
	if c.pos+n > len(c.text) {
		panic("cursor: move forward past end of text")
	}
	c.pos += n
}

func (c *ByteCursor) MoveBackward(n int) {
	if c.pos < n {
		panic("cursor: move backward past start of text")
	}
	c.pos -= n
}
