// Package cursor defines the bidirectional text-position abstraction the
// DFA and NFA run loops are generic over, so a caller embedding this engine
// (a text editor, say) can feed it a view over a rope or gap buffer instead
// of a contiguous string.
package cursor

import "github.com/coregx/regexcore/charclass"

// Cursor is a bidirectional view over some text, addressed by an opaque
// position type Pos the cursor itself defines (a byte offset for a simple
// string cursor, but any comparable, copyable handle for a richer backing
// store). All of the run loops in this module are generic over Cursor[Pos]
// and never assume Pos is an integer.
type Cursor[Pos any] interface {
	Position() Pos
	SetPosition(Pos)

	// NextByte and PrevByte look at, but don't consume, the byte immediately
	// after/before the current position. ok is false at the respective end
	// of the text.
	NextByte() (b byte, ok bool)
	PrevByte() (b byte, ok bool)

	// NextChar and PrevChar do the same at scalar granularity, decoding
	// UTF-8 from the current position forward or backward.
	NextChar() (c rune, ok bool)
	PrevChar() (c rune, ok bool)

	MoveForward(n int)
	MoveBackward(n int)
}

// TextStart reports whether c is at the very start of the text.
func TextStart[P any](c Cursor[P]) bool {
	_, ok := c.PrevByte()
	return !ok
}

// TextEnd reports whether c is at the very end of the text.
func TextEnd[P any](c Cursor[P]) bool {
	_, ok := c.NextByte()
	return !ok
}

// WordBoundary reports whether a \b assertion holds at c's current
// position: the scalar immediately before and the one immediately after
// disagree on word-ness (treating "off the end of the text" as non-word).
func WordBoundary[P any](c Cursor[P]) bool {
	return isWordChar(c, prevCharWord[P]) != isWordChar(c, nextCharWord[P])
}

func prevCharWord[P any](c Cursor[P]) (rune, bool) { return c.PrevChar() }
func nextCharWord[P any](c Cursor[P]) (rune, bool) { return c.NextChar() }

func isWordChar[P any](c Cursor[P], get func(Cursor[P]) (rune, bool)) bool {
	r, ok := get(c)
	if !ok {
		return false
	}
	return charclass.IsWord(r)
}

// Rev returns a cursor that runs c backwards: its "next" is c's "prev" and
// vice versa. Used to run a reversed-byte program over the same underlying
// text without re-parsing or re-encoding anything.
func Rev[P any](c Cursor[P]) Cursor[P] {
	return &revCursor[P]{c: c}
}

type revCursor[P any] struct {
	c Cursor[P]
}

func (r *revCursor[P]) Position() P          { return r.c.Position() }
func (r *revCursor[P]) SetPosition(p P)      { r.c.SetPosition(p) }
func (r *revCursor[P]) NextByte() (byte, bool) { return r.c.PrevByte() }
func (r *revCursor[P]) PrevByte() (byte, bool) { return r.c.NextByte() }
func (r *revCursor[P]) NextChar() (rune, bool) { return r.c.PrevChar() }
func (r *revCursor[P]) PrevChar() (rune, bool) { return r.c.NextChar() }
func (r *revCursor[P]) MoveForward(n int)      { r.c.MoveBackward(n) }
func (r *revCursor[P]) MoveBackward(n int)     { r.c.MoveForward(n) }
