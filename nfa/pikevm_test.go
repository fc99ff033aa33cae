package nfa

import (
	"testing"

	"github.com/coregx/regexcore/cursor"
	"github.com/coregx/regexcore/prog"
	"github.com/coregx/regexcore/syntax"
)

func compileNFA(t *testing.T, pattern string) *prog.Prog {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	p := prog.Compile(ast, prog.Options{})
	return &p
}

func allocSlots(n int) []*int {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = -1
	}
	slots := make([]*int, n)
	for i := range slots {
		slots[i] = &vals[i]
	}
	return slots
}

func TestRunResolvesCaptureGroup(t *testing.T) {
	p := compileNFA(t, "a(b+)c")
	slots := allocSlots(p.SlotCount)
	curs := cursor.NewByteCursor([]byte("abbbc"))
	if !Run(p, curs, Options{}, slots, NewCache[int](p)) {
		t.Fatal("expected a match")
	}
	if *slots[0] != 0 || *slots[1] != 5 {
		t.Fatalf("overall match = [%d,%d), want [0,5)", *slots[0], *slots[1])
	}
	if *slots[2] != 1 || *slots[3] != 4 {
		t.Fatalf("group 1 = [%d,%d), want [1,4)", *slots[2], *slots[3])
	}
}

func TestRunNoMatchLeavesNoSlotsOrFalse(t *testing.T) {
	p := compileNFA(t, "xyz")
	curs := cursor.NewByteCursor([]byte("abc"))
	if Run(p, curs, Options{}, nil, NewCache[int](p)) {
		t.Fatal("expected no match")
	}
}

func TestRunAlternationPrefersLeftmost(t *testing.T) {
	p := compileNFA(t, "(ab|a)")
	slots := allocSlots(p.SlotCount)
	curs := cursor.NewByteCursor([]byte("ab"))
	if !Run(p, curs, Options{}, slots, NewCache[int](p)) {
		t.Fatal("expected a match")
	}
	if *slots[2] != 0 || *slots[3] != 2 {
		t.Fatalf("group 1 = [%d,%d), want [0,2) (leftmost alternative wins when it matches)", *slots[2], *slots[3])
	}
}

func TestRunShortestMatchSkipsCaptures(t *testing.T) {
	p := compileNFA(t, "a+")
	curs := cursor.NewByteCursor([]byte("aaa"))
	if !Run(p, curs, Options{ShortestMatch: true}, nil, NewCache[int](p)) {
		t.Fatal("expected a match")
	}
}
