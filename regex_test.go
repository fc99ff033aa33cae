package regexcore

import "testing"

func idx(slots []*int) []int {
	out := make([]int, len(slots))
	for i, p := range slots {
		if p == nil {
			out[i] = -1
		} else {
			out[i] = *p
		}
	}
	return out
}

func eqInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunCaptureGroups(t *testing.T) {
	re := MustCompile[int](`\d(\d{2})\d`, DefaultConfig())
	slots := make([]*int, 4)
	if !Run(re, []byte("xxx1234yyy"), slots) {
		t.Fatal("expected a match")
	}
	if got := idx(slots); !eqInts(got, []int{3, 7, 4, 6}) {
		t.Fatalf("slots = %v, want [3 7 4 6]", got)
	}
}

func TestRunAlternationExistenceOnly(t *testing.T) {
	re := MustCompile[int](`a|b`, DefaultConfig())
	if !Run(re, []byte("cba"), nil) {
		t.Fatal("expected a match")
	}
	slots := make([]*int, 2)
	if !Run(re, []byte("cba"), slots) {
		t.Fatal("expected a match")
	}
	if got := idx(slots); !eqInts(got, []int{1, 2}) {
		t.Fatalf("slots = %v, want [1 2]", got)
	}
}

func TestRunAnchors(t *testing.T) {
	re := MustCompile[int](`^abc$`, DefaultConfig())
	slots := make([]*int, 2)
	if !Run(re, []byte("abc"), slots) {
		t.Fatal("expected a match on \"abc\"")
	}
	if got := idx(slots); !eqInts(got, []int{0, 3}) {
		t.Fatalf("slots = %v, want [0 3]", got)
	}
	if Run(re, []byte("abcd"), make([]*int, 2)) {
		t.Fatal("\"abcd\" must not match ^abc$")
	}
}

func TestRunLazyThenGreedyCapture(t *testing.T) {
	re := MustCompile[int](`(a+?)(a+)`, DefaultConfig())
	slots := make([]*int, 6)
	if !Run(re, []byte("aaaa"), slots) {
		t.Fatal("expected a match")
	}
	if got := idx(slots); !eqInts(got, []int{0, 4, 0, 1, 1, 4}) {
		t.Fatalf("slots = %v, want [0 4 0 1 1 4]", got)
	}
}

func TestRunWordBoundary(t *testing.T) {
	re := MustCompile[int](`\w+\b`, DefaultConfig())
	slots := make([]*int, 2)
	if !Run(re, []byte("hello world"), slots) {
		t.Fatal("expected a match")
	}
	if got := idx(slots); !eqInts(got, []int{0, 5}) {
		t.Fatalf("slots = %v, want [0 5]", got)
	}
}

func TestCompileBadPatternReturnsError(t *testing.T) {
	if _, err := Compile[int]("(unclosed", DefaultConfig()); err == nil {
		t.Fatal("expected an error for an unclosed group")
	}
}

func TestMustCompilePanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on a bad pattern")
		}
	}()
	MustCompile[int]("a(", DefaultConfig())
}

func TestIsMatchWithPrefilter(t *testing.T) {
	re := MustCompile[int](`cat|dog|bird`, DefaultConfig())
	if !IsMatch(re, "I have a pet dog") {
		t.Fatal("expected a match via the literal prefilter")
	}
	if IsMatch(re, "I have a pet fish") {
		t.Fatal("expected no match")
	}
}

func TestFindStringSubmatchIndex(t *testing.T) {
	re := MustCompile[int](`(a+?)(a+)`, DefaultConfig())
	got := FindStringSubmatchIndex(re, "aaaa", 2)
	if !eqInts(got, []int{0, 4, 0, 1, 1, 4}) {
		t.Fatalf("got %v, want [0 4 0 1 1 4]", got)
	}
	if got := FindStringSubmatchIndex(re, "bbbb", 2); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
