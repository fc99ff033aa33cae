// Package literal extracts required literal byte sequences from a compiled
// pattern's AST and turns them into a prefilter: a cheap first pass that
// rules out most of a haystack before the DFA or NFA ever runs.
package literal

import (
	"github.com/coregx/regexcore/charclass"
	"github.com/coregx/regexcore/syntax"
)

// ExtractorConfig bounds how much work Extract is willing to do and how
// large a literal set it's willing to hand to the prefilter. Without these
// limits a pattern like "[0123456789]{8}" would expand into 10^8 literals.
type ExtractorConfig struct {
	// MaxLiterals caps the number of alternative literals Extract will
	// return. An alternation whose branches together would produce more
	// contributes no literals at all and blocks extraction, since a
	// truncated set would let the prefilter skip matches of the dropped
	// branches.
	MaxLiterals int

	// MaxLiteralLen caps the byte length of any single extracted literal.
	MaxLiteralLen int

	// MaxClassSize is the largest character class Extract will expand into
	// individual literals; classes larger than this contribute nothing
	// (and block extraction past that point) rather than blowing up the
	// cross product.
	MaxClassSize int

	// CrossProductLimit caps the intermediate literal count while folding
	// a concatenation, independent of MaxLiterals, so a pattern need not
	// exceed the final limit to be rejected early.
	CrossProductLimit int
}

// DefaultConfig returns the limits used when a caller doesn't need to tune
// them.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:       64,
		MaxLiteralLen:     64,
		MaxClassSize:      10,
		CrossProductLimit: 250,
	}
}

// Extractor pulls the set of literals a pattern's match must begin with out
// of its postfix Ast, the same list prog.Compile walks to build a Program.
// A non-empty, Complete result means the prefilter alone decides whether a
// haystack can possibly match; an incomplete one only narrows candidates
// for the DFA/NFA to confirm.
type Extractor struct {
	config ExtractorConfig
}

// New returns an Extractor using config.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes walks ast in postfix order, maintaining a stack of
// fragments exactly the way prog.Compile maintains a stack of compiled
// fragments: each Op either pushes a new leaf fragment (Char, Class,
// Assert, Empty) or pops the operand(s) its Kind consumes and pushes the
// combined result. The fragment left on the stack once the walk ends is the
// set of literal prefixes the whole pattern requires.
func (e *Extractor) ExtractPrefixes(ast syntax.Ast) *Seq {
	if len(ast) == 0 {
		return identity().seq
	}
	stack := make([]frag, 0, len(ast))
	for _, op := range ast {
		switch op.Kind {
		case syntax.OpEmpty, syntax.OpAssert:
			stack = append(stack, identity())

		case syntax.OpChar:
			var buf [4]byte
			n := encodeRune(buf[:], op.Char)
			stack = append(stack, frag{seq: NewSeq(NewLiteral(append([]byte(nil), buf[:n]...), true))})

		case syntax.OpClass:
			stack = append(stack, e.expandClass(op.Class))

		case syntax.OpCap:
			// Passes its operand through unchanged: a capture group around
			// a literal doesn't change what bytes are required.

		case syntax.OpQues, syntax.OpStar:
			// Zero occurrences is always legal, so nothing past this point
			// can be a required prefix.
			stack = stack[:len(stack)-1]
			stack = append(stack, blocked())

		case syntax.OpPlus:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.seq.MarkInexact()
			top.blocked = true
			stack = append(stack, top)

		case syntax.OpCat:
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, e.cat(a, b))

		case syntax.OpAlt:
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, e.alt(a, b))
		}
	}
	result := stack[len(stack)-1]
	if result.seq.Len() == 1 && len(result.seq.Get(0).Bytes) == 0 {
		return NewSeq()
	}
	return result.seq
}

// frag is one entry in ExtractPrefixes's fragment stack: the literals
// contributed so far, and blocked once something non-expandable (a
// repetition or an oversized class) has been folded in, meaning no later
// Op can extend the prefix any further.
type frag struct {
	seq     *Seq
	blocked bool
}

// identity is the neutral element for cat: a single empty, complete
// literal, which cat can extend without changing the other operand.
func identity() frag {
	return frag{seq: NewSeq(NewLiteral(nil, true))}
}

// blocked carries no literal at all and can never be extended.
func blocked() frag {
	return frag{seq: NewSeq(), blocked: true}
}

func (e *Extractor) cat(a, b frag) frag {
	if a.blocked {
		return a
	}
	if b.blocked && b.seq.IsEmpty() {
		a.seq.MarkInexact()
		a.blocked = true
		return a
	}
	a.seq.CrossForward(b.seq)
	e.enforceLimits(&a)
	if b.blocked {
		a.blocked = true
	}
	return a
}

func (e *Extractor) alt(a, b frag) frag {
	if a.seq.IsEmpty() || b.seq.IsEmpty() {
		return blocked()
	}
	if a.seq.Len()+b.seq.Len() > e.config.MaxLiterals {
		return blocked()
	}
	lits := make([]Literal, 0, a.seq.Len()+b.seq.Len())
	for _, s := range [2]*Seq{a.seq, b.seq} {
		for i := 0; i < s.Len(); i++ {
			lits = append(lits, s.Get(i))
		}
	}
	result := NewSeq(lits...)
	if a.blocked || b.blocked {
		result.MarkInexact()
		return frag{seq: result, blocked: true}
	}
	return frag{seq: result}
}

// expandClass turns a small character class into one literal per rune in
// it, each a single UTF-8 encoded scalar. Classes bigger than MaxClassSize
// (or with no ranges at all) contribute nothing and block extraction, since
// enumerating them would overwhelm the cross product they feed into.
func (e *Extractor) expandClass(class charclass.Class) frag {
	ranges := class.Ranges()
	if len(ranges) == 0 {
		return blocked()
	}
	var size int
	for _, r := range ranges {
		size += int(r.End-r.Start) + 1
		if size > e.config.MaxClassSize {
			return blocked()
		}
	}
	lits := make([]Literal, 0, size)
	for _, r := range ranges {
		for c := r.Start; c <= r.End; c++ {
			var buf [4]byte
			n := encodeRune(buf[:], c)
			lits = append(lits, NewLiteral(append([]byte(nil), buf[:n]...), true))
		}
	}
	return frag{seq: NewSeq(lits...)}
}

func (e *Extractor) enforceLimits(f *frag) {
	if f.seq.Len() > e.config.CrossProductLimit || f.seq.Len() > e.config.MaxLiterals {
		f.seq.MarkInexact()
		f.blocked = true
	}
	for i := 0; i < f.seq.Len(); i++ {
		if lit := f.seq.Get(i); len(lit.Bytes) > e.config.MaxLiteralLen {
			f.seq.literals[i].Bytes = lit.Bytes[:e.config.MaxLiteralLen]
			f.seq.literals[i].Complete = false
			f.blocked = true
		}
	}
}

// encodeRune writes r's UTF-8 encoding into buf and returns the byte count.
// rangeset ranges over runes can include surrogate-gap boundaries, but
// charclass.Builder already excludes the surrogate range itself, so every
// rune reaching here is a valid scalar value.
func encodeRune(buf []byte, r rune) int {
	switch {
	case r <= 0x7F:
		buf[0] = byte(r)
		return 1
	case r <= 0x7FF:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r&0x3F)
		return 2
	case r <= 0xFFFF:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte((r>>6)&0x3F)
		buf[2] = 0x80 | byte(r&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte((r>>12)&0x3F)
		buf[2] = 0x80 | byte((r>>6)&0x3F)
		buf[3] = 0x80 | byte(r&0x3F)
		return 4
	}
}
