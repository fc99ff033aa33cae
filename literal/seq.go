// Package literal provides types and operations for representing and manipulating
// literal byte sequences extracted from regex patterns.
//
// The primary use case is for prefilter optimization in regex engines: by extracting
// literal strings from patterns (e.g., "hello" from /hello.*world/), we can quickly
// filter out non-matching text before running the full regex automaton.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may appear in matches
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
package literal

// Literal represents a literal byte sequence extracted from a regex pattern.
// The Complete flag indicates whether this literal represents a complete match
// (true) or just a prefix/substring of potential matches (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false} (prefix only)
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	// If true, matching this literal is sufficient (no regex engine needed).
	// If false, this literal is just a necessary prefix/substring.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Seq represents a sequence of alternative literals that can match.
// This is the foundation for prefilter optimization: we extract multiple
// possible literals from a regex (e.g., from alternations /foo|bar|baz/)
// and use them for fast candidate filtering.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
//
// Example:
//
//	seq := literal.NewSeq()
//	fmt.Println(seq.IsEmpty()) // Output: true
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// CrossForward extends s in place with the cross product of s and next:
// every literal in s gets every literal in next appended to it. A literal's
// Complete flag survives the product only if both sides were complete.
//
// Example:
//
//	acc := literal.NewSeq(literal.NewLiteral([]byte("ag"), true))
//	next := literal.NewSeq(
//	    literal.NewLiteral([]byte("a"), true),
//	    literal.NewLiteral([]byte("c"), true),
//	    literal.NewLiteral([]byte("t"), true),
//	)
//	acc.CrossForward(next)
//	// acc now holds "aga", "agc", "agt"
func (s *Seq) CrossForward(next *Seq) {
	if next.IsEmpty() {
		s.literals = nil
		return
	}
	product := make([]Literal, 0, len(s.literals)*len(next.literals))
	for _, a := range s.literals {
		for _, b := range next.literals {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			product = append(product, Literal{Bytes: joined, Complete: a.Complete && b.Complete})
		}
	}
	s.literals = product
}

// MarkInexact sets Complete to false on every literal in the sequence,
// turning a set of exact matches into a set of required-but-insufficient
// prefixes (used once a pattern continues past what was extracted).
func (s *Seq) MarkInexact() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}
