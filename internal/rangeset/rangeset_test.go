package rangeset

import "testing"

func TestRangeContains(t *testing.T) {
	r := New(byte(10), byte(20))
	for v := byte(10); v <= 20; v++ {
		if !r.Contains(v) {
			t.Fatalf("Contains(%d) = false, want true", v)
		}
	}
	if r.Contains(9) || r.Contains(21) {
		t.Fatal("Contains reported a value outside the range")
	}
}

func TestSetInsertAndContains(t *testing.T) {
	s := NewSet(16)
	if !s.Insert(3) {
		t.Fatal("first Insert(3) should return true")
	}
	if s.Insert(3) {
		t.Fatal("second Insert(3) should return false")
	}
	if !s.Contains(3) || s.Contains(4) {
		t.Fatal("Contains disagrees with what was inserted")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestSetPreservesInsertionOrder(t *testing.T) {
	s := NewSet(8)
	order := []int{5, 1, 7, 2}
	for _, v := range order {
		s.Insert(v)
	}
	got := s.Slice()
	if len(got) != len(order) {
		t.Fatalf("Slice() = %v, want %v", got, order)
	}
	for i, v := range order {
		if got[i] != v {
			t.Fatalf("Slice()[%d] = %d, want %d (insertion order must be preserved)", i, got[i], v)
		}
	}
}

func TestSetClearIsReusable(t *testing.T) {
	s := NewSet(4)
	s.Insert(0)
	s.Insert(1)
	s.Clear()
	if s.Len() != 0 || s.Contains(0) || s.Contains(1) {
		t.Fatal("Clear did not empty the set")
	}
	if !s.Insert(0) {
		t.Fatal("Insert after Clear should succeed again")
	}
}
