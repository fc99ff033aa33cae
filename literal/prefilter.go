package literal

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// Prefilter narrows a haystack down to byte spans worth handing to the
// DFA/NFA, without running either. It never has false negatives: any byte
// range that could contain a match is reported, though not every reported
// range necessarily contains one.
type Prefilter interface {
	// Find returns the next candidate span at or after at, or ok=false if
	// no literal in the prefilter occurs anywhere past at.
	Find(haystack []byte, at int) (start, end int, ok bool)
}

// Build returns a Prefilter over seq's literals, or nil if seq is too weak
// to filter anything (empty, or a single empty literal) or the Aho-Corasick
// automaton cannot be built. A single literal
// gets a plain substring scan; more than one builds an Aho-Corasick
// automaton so every alternative is matched in one pass over the haystack.
func Build(seq *Seq) Prefilter {
	switch seq.Len() {
	case 0:
		return nil
	case 1:
		lit := seq.Get(0).Bytes
		if len(lit) == 0 {
			return nil
		}
		return singleLiteral{bytes: lit}
	default:
		builder := ahocorasick.NewBuilder()
		any := false
		for i := 0; i < seq.Len(); i++ {
			if lit := seq.Get(i).Bytes; len(lit) > 0 {
				builder.AddPattern(lit)
				any = true
			}
		}
		if !any {
			return nil
		}
		automaton, err := builder.Build()
		if err != nil {
			// Every literal came straight out of ExtractPrefixes and is a
			// plain byte sequence, so Build can't reject it; if it somehow
			// does, return no prefilter, since scanning for only some of
			// the literals would miss matches of the others.
			return nil
		}
		return ahoCorasickPrefilter{automaton: automaton}
	}
}

type singleLiteral struct {
	bytes []byte
}

func (s singleLiteral) Find(haystack []byte, at int) (int, int, bool) {
	if at > len(haystack) {
		return 0, 0, false
	}
	i := bytes.Index(haystack[at:], s.bytes)
	if i < 0 {
		return 0, 0, false
	}
	start := at + i
	return start, start + len(s.bytes), true
}

type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
}

func (a ahoCorasickPrefilter) Find(haystack []byte, at int) (int, int, bool) {
	if at > len(haystack) {
		return 0, 0, false
	}
	m := a.automaton.Find(haystack, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}
