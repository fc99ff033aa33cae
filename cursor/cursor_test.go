package cursor

import "testing"

func TestTextStartAndEndAtBoundaries(t *testing.T) {
	c := NewStringCursor("ab")
	if !TextStart[int](c) {
		t.Fatal("TextStart should hold at position 0")
	}
	if TextEnd[int](c) {
		t.Fatal("TextEnd should not hold at position 0 of a non-empty text")
	}
	c.SetPosition(2)
	if TextStart[int](c) {
		t.Fatal("TextStart should not hold at the end of a non-empty text")
	}
	if !TextEnd[int](c) {
		t.Fatal("TextEnd should hold at position 2")
	}
}

func TestWordBoundaryAtTransitions(t *testing.T) {
	c := NewStringCursor("a.b")
	c.SetPosition(1)
	if !WordBoundary[int](c) {
		t.Fatal("expected a word boundary between 'a' and '.'")
	}
	c.SetPosition(0)
	if !WordBoundary[int](c) {
		t.Fatal("expected a word boundary at position 0, where the text edge counts as non-word and 'a' is a word char")
	}
}

func TestMoveForwardAndBackwardTrackPosition(t *testing.T) {
	c := NewStringCursor("hello")
	c.MoveForward(3)
	if c.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", c.Position())
	}
	b, ok := c.PrevByte()
	if !ok || b != 'l' {
		t.Fatalf("PrevByte() = (%q,%v), want ('l',true)", b, ok)
	}
	c.MoveBackward(3)
	if c.Position() != 0 {
		t.Fatalf("Position() = %d, want 0", c.Position())
	}
}

func TestMoveForwardPastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic moving past the end of the text")
		}
	}()
	c := NewStringCursor("ab")
	c.MoveForward(5)
}

func TestRevFlipsDirection(t *testing.T) {
	c := NewStringCursor("ab")
	c.SetPosition(1)
	r := Rev[int](c)
	rb, ok := r.NextByte()
	if !ok || rb != 'a' {
		t.Fatalf("reversed NextByte() = (%q,%v), want ('a',true)", rb, ok)
	}
	fb, ok := c.PrevByte()
	if !ok || fb != 'a' {
		t.Fatalf("underlying PrevByte() = (%q,%v), want ('a',true)", fb, ok)
	}
}
