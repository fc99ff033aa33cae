package literal

import "testing"

func TestSeqLenAndGet(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("foo"), true), NewLiteral([]byte("bar"), true))
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}
	if string(seq.Get(0).Bytes) != "foo" || string(seq.Get(1).Bytes) != "bar" {
		t.Fatalf("Get returned unexpected literals: %v, %v", seq.Get(0), seq.Get(1))
	}
}

func TestSeqIsEmpty(t *testing.T) {
	if !NewSeq().IsEmpty() {
		t.Fatal("an empty sequence should report IsEmpty")
	}
	if NewSeq(NewLiteral([]byte("x"), true)).IsEmpty() {
		t.Fatal("a non-empty sequence should not report IsEmpty")
	}
	var nilSeq *Seq
	if !nilSeq.IsEmpty() {
		t.Fatal("a nil *Seq should report IsEmpty")
	}
}

func TestCrossForwardProducesCrossProduct(t *testing.T) {
	acc := NewSeq(NewLiteral([]byte("ag"), true))
	next := NewSeq(
		NewLiteral([]byte("a"), true),
		NewLiteral([]byte("c"), true),
		NewLiteral([]byte("t"), true),
	)
	acc.CrossForward(next)

	if acc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", acc.Len())
	}
	want := []string{"aga", "agc", "agt"}
	for i, w := range want {
		if got := string(acc.Get(i).Bytes); got != w {
			t.Fatalf("Get(%d) = %q, want %q", i, got, w)
		}
		if !acc.Get(i).Complete {
			t.Fatalf("Get(%d).Complete = false, want true (both sides were complete)", i)
		}
	}
}

func TestCrossForwardInexactSideStaysInexact(t *testing.T) {
	acc := NewSeq(NewLiteral([]byte("a"), false))
	next := NewSeq(NewLiteral([]byte("b"), true))
	acc.CrossForward(next)
	if acc.Get(0).Complete {
		t.Fatal("a product with one inexact side must stay inexact")
	}
}

func TestCrossForwardWithEmptyNextClearsSeq(t *testing.T) {
	acc := NewSeq(NewLiteral([]byte("a"), true))
	acc.CrossForward(NewSeq())
	if !acc.IsEmpty() {
		t.Fatal("crossing with an empty Seq should empty the accumulator")
	}
}

func TestMarkInexactClearsCompleteOnEveryLiteral(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("a"), true), NewLiteral([]byte("b"), true))
	seq.MarkInexact()
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Complete {
			t.Fatalf("literal %d still Complete after MarkInexact", i)
		}
	}
}
