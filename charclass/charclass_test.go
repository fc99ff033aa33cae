package charclass

import (
	"reflect"
	"testing"

	"github.com/coregx/regexcore/internal/rangeset"
)

func ranges(rs ...rangeset.Range[rune]) []rangeset.Range[rune] { return rs }

func TestBuilderMergesOverlapping(t *testing.T) {
	var b Builder
	b.InsertRange('a', 'm')
	b.InsertRange('g', 'z')
	got := b.Build(false).Ranges()
	want := ranges(rangeset.New[rune]('a', 'z'))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderKeepsDisjointRanges(t *testing.T) {
	var b Builder
	b.InsertRange('a', 'c')
	b.InsertRange('x', 'z')
	got := b.Build(false).Ranges()
	want := ranges(rangeset.New[rune]('a', 'c'), rangeset.New[rune]('x', 'z'))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNegationExcludesSurrogates(t *testing.T) {
	class := FromRanges(ranges(rangeset.New[rune](0, 0x10FFFF)), true)
	if !class.IsEmpty() {
		t.Fatalf("negating the full scalar range should be empty, got %v", class.Ranges())
	}
}

func TestNegationOfSmallRange(t *testing.T) {
	class := FromRanges(ranges(rangeset.New[rune]('a', 'z')), true)
	r := class.Ranges()
	if len(r) == 0 {
		t.Fatal("negation of [a-z] should not be empty")
	}
	if r[0].Start != 0 || r[0].End != 'a'-1 {
		t.Fatalf("first negated range = %v, want [0, %d]", r[0], 'a'-1)
	}
	last := r[len(r)-1]
	if last.End != 0x10FFFF {
		t.Fatalf("last negated range ends at %d, want 0x10FFFF", last.End)
	}
	for _, rg := range r {
		if rg.Start <= 0xDFFF && rg.End >= 0xD800 {
			t.Fatalf("negated range %v straddles the surrogate hole", rg)
		}
	}
}

func TestInsertRangesSplitsSurrogateStraddle(t *testing.T) {
	var b Builder
	b.InsertRanges(ranges(rangeset.New[rune](0xD700, 0xE010)), false)
	got := b.Build(false).Ranges()
	for _, r := range got {
		if r.Start <= 0xDFFF && r.End >= 0xD800 {
			t.Fatalf("range %v straddles the surrogate hole", r)
		}
	}
}

func TestAnyExcludesSurrogatesOnly(t *testing.T) {
	for _, r := range Any.Ranges() {
		if r.Start <= 0xDFFF && r.End >= 0xD800 {
			t.Fatalf("Any range %v straddles the surrogate hole", r)
		}
	}
	if Any.IsEmpty() {
		t.Fatal("Any must not be empty")
	}
}

func TestIsWordASCIIAndUnicode(t *testing.T) {
	for _, c := range []rune{'a', 'Z', '0', '_'} {
		if !IsWord(c) {
			t.Fatalf("IsWord(%q) = false, want true", c)
		}
	}
	for _, c := range []rune{' ', '.', '-'} {
		if IsWord(c) {
			t.Fatalf("IsWord(%q) = true, want false", c)
		}
	}
}
