package dfa

import (
	"testing"

	"github.com/coregx/regexcore/cursor"
	"github.com/coregx/regexcore/prog"
	"github.com/coregx/regexcore/syntax"
)

func compileDFA(t *testing.T, pattern string, reversed bool) *prog.Prog {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	p := prog.Compile(ast, prog.Options{DotStar: !reversed, IgnoreCaps: true, ByteBased: true, Reversed: reversed})
	return &p
}

func TestRunFindsMatchEnd(t *testing.T) {
	p := compileDFA(t, "abc", false)
	curs := cursor.NewByteCursor([]byte("xxabcxx"))
	end, ok, err := Run(p, curs, Options{}, NewCache(p))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || end != 5 {
		t.Fatalf("Run = (%d,%v), want (5,true)", end, ok)
	}
}

func TestRunNoMatch(t *testing.T) {
	p := compileDFA(t, "abc", false)
	curs := cursor.NewByteCursor([]byte("xyz"))
	_, ok, err := Run(p, curs, Options{}, NewCache(p))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no match")
	}
}

func TestRunShortestMatchStopsEarly(t *testing.T) {
	p := compileDFA(t, "a|aa", false)
	curs := cursor.NewByteCursor([]byte("aa"))
	end, ok, err := Run(p, curs, Options{ShortestMatch: true}, NewCache(p))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || end != 1 {
		t.Fatalf("Run = (%d,%v), want (1,true)", end, ok)
	}
}

func TestRunReversedFindsStart(t *testing.T) {
	fwd := compileDFA(t, "abc", false)
	curs := cursor.NewByteCursor([]byte("xxabcxx"))
	end, ok, _ := Run(fwd, curs, Options{}, NewCache(fwd))
	if !ok {
		t.Fatal("forward run should match")
	}
	rev := compileDFA(t, "abc", true)
	curs.SetPosition(end)
	start, ok, err := Run(rev, cursor.Rev[int](curs), Options{}, NewCache(rev))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || start != 2 {
		t.Fatalf("reversed Run = (%d,%v), want (2,true)", start, ok)
	}
}
