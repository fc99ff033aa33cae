package literal

import (
	"testing"

	"github.com/coregx/regexcore/syntax"
)

func extract(t *testing.T, pattern string) *Seq {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return New(DefaultConfig()).ExtractPrefixes(ast)
}

func literalStrings(s *Seq) []string {
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = string(s.Get(i).Bytes)
	}
	return out
}

func TestExtractPrefixesLiteral(t *testing.T) {
	seq := extract(t, "hello")
	if got := literalStrings(seq); len(got) != 1 || got[0] != "hello" || !seq.Get(0).Complete {
		t.Fatalf("got %v, want complete [hello]", got)
	}
}

func TestExtractPrefixesAlternation(t *testing.T) {
	seq := extract(t, "foo|bar")
	got := literalStrings(seq)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 literals", got)
	}
	want := map[string]bool{"foo": true, "bar": true}
	for _, g := range got {
		if !want[g] {
			t.Fatalf("unexpected literal %q in %v", g, got)
		}
	}
}

func TestExtractPrefixesClassExpansion(t *testing.T) {
	seq := extract(t, "[ac]t")
	got := literalStrings(seq)
	want := map[string]bool{"at": true, "ct": true}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 literals", got)
	}
	for _, g := range got {
		if !want[g] {
			t.Fatalf("unexpected literal %q in %v", g, got)
		}
	}
}

func TestExtractPrefixesStarHasNoPrefix(t *testing.T) {
	seq := extract(t, ".*foo")
	if !seq.IsEmpty() {
		t.Fatalf("got %v, want empty (no reliable prefix)", literalStrings(seq))
	}
}

func TestExtractPrefixesStopsAtRepetition(t *testing.T) {
	seq := extract(t, "foo.*bar")
	if seq.Len() != 1 || literalStrings(seq)[0] != "foo" {
		t.Fatalf("got %v, want [foo]", literalStrings(seq))
	}
	if seq.Get(0).Complete {
		t.Fatalf("literal following a repetition must be marked incomplete")
	}
}

func TestExtractPrefixesPlusIsInexact(t *testing.T) {
	seq := extract(t, "a+b")
	if seq.Len() != 1 || literalStrings(seq)[0] != "a" || seq.Get(0).Complete {
		t.Fatalf("got %v, want incomplete [a]", literalStrings(seq))
	}
}

func TestExtractPrefixesCaptureIsTransparent(t *testing.T) {
	seq := extract(t, "(hello)")
	if seq.Len() != 1 || literalStrings(seq)[0] != "hello" || !seq.Get(0).Complete {
		t.Fatalf("got %v, want complete [hello]", literalStrings(seq))
	}
}

func TestExtractPrefixesAnchorsDontBlock(t *testing.T) {
	seq := extract(t, "^abc")
	if seq.Len() != 1 || literalStrings(seq)[0] != "abc" || !seq.Get(0).Complete {
		t.Fatalf("got %v, want complete [abc]", literalStrings(seq))
	}
}

func TestExtractPrefixesOversizedClassBlocks(t *testing.T) {
	seq := extract(t, "[abcdefghijklmnopqrstuvwxyz]ish")
	if !seq.IsEmpty() {
		t.Fatalf("got %v, want empty (class too large to expand)", literalStrings(seq))
	}
}
