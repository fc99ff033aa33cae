// Package regexcore implements a byte-oriented regular expression engine:
// parse to a postfix Ast (syntax), compile it to a Prog (prog), and run
// that Prog over a caller-supplied Cursor using a lazy byte-DFA for speed
// and a Thompson NFA for full captures, falling back between them as
// needed. See Compile for the entry point.
package regexcore

import (
	"fmt"

	"github.com/coregx/regexcore/cursor"
	"github.com/coregx/regexcore/dfa"
	"github.com/coregx/regexcore/literal"
	"github.com/coregx/regexcore/nfa"
	"github.com/coregx/regexcore/prog"
	"github.com/coregx/regexcore/syntax"
)

// Config controls optional behavior layered on top of the core match
// algorithm. It never changes which slots a call to Run reports, only
// whether a cheap pre-check runs before the programs do.
//
// Example:
//
//	config := regexcore.DefaultConfig()
//	config.EnableLiteralPrefilter = false // Always go straight to the DFA
//	re, err := regexcore.Compile[int]("hello", config)
type Config struct {
	// EnableLiteralPrefilter builds an Aho-Corasick or substring prefilter
	// from the pattern's required literal prefixes, when any are found.
	// IsMatch uses it to skip straight past haystack regions that cannot
	// possibly contain a match; Run does not consult it.
	// Default: true
	EnableLiteralPrefilter bool

	// MinPrefilterLiteralLen is the shortest extracted literal worth
	// filtering on; shorter literals tend to occur too often in real text
	// to narrow anything down.
	// Default: 3
	MinPrefilterLiteralLen int
}

// DefaultConfig returns the Config new callers should start from.
func DefaultConfig() Config {
	return Config{
		EnableLiteralPrefilter: true,
		MinPrefilterLiteralLen: 3,
	}
}

// Regex holds the three compiled programs a match dispatches across, and
// the caches each one reuses call to call. It is not safe for concurrent
// use by multiple goroutines: each holds mutable state internal to Run. A
// pattern compiled once should be cloned per goroutine (or guarded by a
// mutex) rather than shared directly.
type Regex[P any] struct {
	dfaProg    prog.Prog
	revDFAProg prog.Prog
	nfaProg    prog.Prog

	dfaCache    *dfa.Cache
	revDFACache *dfa.Cache
	nfaCache    *nfa.Cache[P]

	prefilter literal.Prefilter
}

// Compile parses and compiles pattern, returning an error describing the
// first syntax problem found rather than panicking.
func Compile[P any](pattern string, config Config) (*Regex[P], error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("regexcore: %w", err)
	}

	dfaProg := prog.Compile(ast, prog.Options{DotStar: true, IgnoreCaps: true, ByteBased: true})
	revDFAProg := prog.Compile(ast, prog.Options{IgnoreCaps: true, ByteBased: true, Reversed: true})
	nfaProg := prog.Compile(ast, prog.Options{})

	re := &Regex[P]{
		dfaProg:     dfaProg,
		revDFAProg:  revDFAProg,
		nfaProg:     nfaProg,
		dfaCache:    dfa.NewCache(&dfaProg),
		revDFACache: dfa.NewCache(&revDFAProg),
		nfaCache:    nfa.NewCache[P](&nfaProg),
	}

	if config.EnableLiteralPrefilter {
		seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(ast)
		if usable(seq, config.MinPrefilterLiteralLen) {
			re.prefilter = literal.Build(seq)
		}
	}
	return re, nil
}

// usable reports whether seq is worth building a Prefilter from: every
// literal in it must clear the caller's minimum length, since a shorter
// one tends to occur too often in real text to narrow anything down.
func usable(seq *literal.Seq, minLen int) bool {
	if seq.IsEmpty() {
		return false
	}
	for i := 0; i < seq.Len(); i++ {
		if len(seq.Get(i).Bytes) < minLen {
			return false
		}
	}
	return true
}

// MustCompile is like Compile but panics instead of returning an error,
// for patterns fixed at compile time (e.g. package-level vars).
func MustCompile[P any](pattern string, config Config) *Regex[P] {
	re, err := Compile[P](pattern, config)
	if err != nil {
		panic(err)
	}
	return re
}

// Run searches curs for a match, writing every capture slot it resolves
// into slots. len(slots) must be 0 (existence only), 2 (overall start/end)
// or 2*(1+captureCount) (every group). A slot Run doesn't visit keeps
// whatever value it held on entry. Run reports whether a match was found
// starting anywhere at or after curs's current position.
//
// Run first runs the forward byte-DFA to find where a match ends, then a
// reversed byte-DFA from there back to where it starts, and only invokes
// the slower Thompson NFA — starting from the match's start — when the caller asked
// for more than the overall bounds. If the DFA hits a word-boundary
// assertion it can't resolve against a non-ASCII byte, Run falls back to
// the NFA for the whole search instead.
func (re *Regex[P]) Run(curs cursor.Cursor[P], slots []*P) bool {
	shortestMatch := len(slots) == 0
	startPos := curs.Position()

	end, ok, err := dfa.Run(&re.dfaProg, curs, dfa.Options{ShortestMatch: shortestMatch}, re.dfaCache)
	if err != nil {
		curs.SetPosition(startPos)
		return nfa.Run(&re.nfaProg, curs, nfa.Options{ShortestMatch: shortestMatch}, slots, re.nfaCache)
	}
	if !ok {
		return false
	}

	curs.SetPosition(end)
	start, ok, err := dfa.Run(&re.revDFAProg, cursor.Rev[P](curs), dfa.Options{ShortestMatch: shortestMatch}, re.revDFACache)
	if err != nil || !ok {
		curs.SetPosition(startPos)
		return nfa.Run(&re.nfaProg, curs, nfa.Options{ShortestMatch: shortestMatch}, slots, re.nfaCache)
	}

	switch {
	case len(slots) == 2:
		slots[0] = &start
		slots[1] = &end
	case len(slots) > 2:
		curs.SetPosition(start)
		nfa.Run(&re.nfaProg, curs, nfa.Options{}, slots, re.nfaCache)
	}
	return true
}

// Run adapts a byte-slice Regex[int] to cursor.ByteCursor and calls
// (*Regex[int]).Run, the convenience path most string-oriented callers
// want instead of building a Cursor themselves.
func Run(re *Regex[int], b []byte, slots []*int) bool {
	return re.Run(cursor.NewByteCursor(b), slots)
}

// IsMatch reports whether s contains a match anywhere, using the literal
// prefilter (when one was built) to skip straight to the first candidate
// byte span before confirming it against the DFA.
func IsMatch(re *Regex[int], s string) bool {
	b := []byte(s)
	if re.prefilter == nil {
		return Run(re, b, nil)
	}
	for at := 0; ; {
		start, _, ok := re.prefilter.Find(b, at)
		if !ok {
			return false
		}
		c := cursor.NewByteCursor(b)
		c.SetPosition(start)
		if re.Run(c, nil) {
			return true
		}
		at = start + 1
	}
}

// FindStringSubmatchIndex returns the 2*(1+captureCount) start/end byte
// offsets Run resolved for s, or nil if s does not match. Unresolved
// optional-group slots are -1.
func FindStringSubmatchIndex(re *Regex[int], s string, captureCount int) []int {
	b := []byte(s)
	slots := make([]*int, 2*(1+captureCount))
	if !Run(re, b, slots) {
		return nil
	}
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
