// Package syntax turns a pattern string into a flat, postfix-ordered list of
// Ops ready for compilation, without ever building a tree.
package syntax

import "github.com/coregx/regexcore/charclass"

// Pred names an assertion tested against the surrounding text rather than
// consumed from it.
type Pred int

const (
	TextStart Pred = iota
	TextEnd
	WordBoundary
	NotWordBoundary
)

// OpKind discriminates the Op union below.
type OpKind int

const (
	OpEmpty OpKind = iota
	OpCap
	OpAlt
	OpCat
	OpQues
	OpStar
	OpPlus
	OpAssert
	OpChar
	OpClass
)

// Op is one instruction in the postfix program a Builder produces. Fields
// are only meaningful for the Kinds that use them: Index for OpCap, Greedy
// for OpQues/OpStar/OpPlus, Pred for OpAssert, Char for OpChar, Class for
// OpClass.
type Op struct {
	Kind   OpKind
	Index  int
	Greedy bool
	Pred   Pred
	Char   rune
	Class  charclass.Class
}

// Ast is the flat postfix op list a Builder produces and a compiler walks.
type Ast []Op

// Builder assembles an Ast incrementally in postfix order, the way a parser
// emits operators as soon as it sees them rather than building a tree first.
// Alt/Cat consume the two operands already pushed by earlier calls; Ques,
// Star and Plus modify the operand in place; Rep expands bounded repetition
// into the equivalent run of mandatory and optional copies.
//
// It mirrors the same three-field shape the original parser's AST builder
// used: an operand list in progress, scratch storage for Rep's expansion,
// and a stack of operand-start offsets so Alt/Cat know where the last
// pushed operand begins.
type Builder struct {
	ops        Ast
	tmpOps     Ast
	startStack []int
}

// Empty pushes an operand that matches the empty string.
func (b *Builder) Empty() {
	start := len(b.ops)
	b.ops = append(b.ops, Op{Kind: OpEmpty})
	b.startStack = append(b.startStack, start)
}

// Cap marks a capture group boundary for slot index. The parser emits one
// at the end of every capturing group (including the implicit outermost
// one; non-capturing groups get none); it
// doesn't push an operand-start offset itself since the group's contents
// already did.
func (b *Builder) Cap(index int) {
	b.ops = append(b.ops, Op{Kind: OpCap, Index: index})
}

// Alt combines the two most recently pushed operands into their
// alternation, consuming the operand boundary pushed for the second one.
func (b *Builder) Alt() {
	b.ops = append(b.ops, Op{Kind: OpAlt})
	b.popStart()
}

// Cat combines the two most recently pushed operands into their
// concatenation.
func (b *Builder) Cat() {
	b.ops = append(b.ops, Op{Kind: OpCat})
	b.popStart()
}

func (b *Builder) popStart() {
	b.startStack = b.startStack[:len(b.startStack)-1]
}

// Ques makes the last operand optional.
func (b *Builder) Ques(greedy bool) {
	b.ops = append(b.ops, Op{Kind: OpQues, Greedy: greedy})
}

// Star makes the last operand repeat zero or more times.
func (b *Builder) Star(greedy bool) {
	b.ops = append(b.ops, Op{Kind: OpStar, Greedy: greedy})
}

// Plus makes the last operand repeat one or more times.
func (b *Builder) Plus(greedy bool) {
	b.ops = append(b.ops, Op{Kind: OpPlus, Greedy: greedy})
}

// Rep expands {min,max} (max == nil meaning unbounded) by duplicating the
// last-pushed operand: min mandatory copies concatenated together, then
// either (max-min) optional copies (each wrapped in Ques) when max is
// bounded, or a trailing Star when it isn't. {m,m} collapses to exactly m
// mandatory copies with nothing optional appended.
func (b *Builder) Rep(min int, max *int, greedy bool) {
	start := b.startStack[len(b.startStack)-1]
	b.tmpOps = append(b.tmpOps, b.ops[start:]...)
	b.ops = b.ops[:start]

	if min != 0 {
		b.ops = append(b.ops, b.tmpOps...)
		for i := 1; i < min; i++ {
			b.ops = append(b.ops, b.tmpOps...)
			b.ops = append(b.ops, Op{Kind: OpCat})
		}
	}

	if max != nil {
		if *max != min {
			b.ops = append(b.ops, b.tmpOps...)
			b.ops = append(b.ops, Op{Kind: OpQues, Greedy: greedy})
			if min != 0 {
				b.ops = append(b.ops, Op{Kind: OpCat})
			}
			for i := min + 1; i < *max; i++ {
				b.ops = append(b.ops, b.tmpOps...)
				b.ops = append(b.ops, Op{Kind: OpQues, Greedy: greedy})
				b.ops = append(b.ops, Op{Kind: OpCat})
			}
		}
	} else {
		b.ops = append(b.ops, b.tmpOps...)
		b.ops = append(b.ops, Op{Kind: OpStar, Greedy: greedy})
		if min != 0 {
			b.ops = append(b.ops, Op{Kind: OpCat})
		}
	}

	b.tmpOps = b.tmpOps[:0]
}

// Assert pushes an operand that matches the empty string when pred holds.
func (b *Builder) Assert(pred Pred) {
	start := len(b.ops)
	b.ops = append(b.ops, Op{Kind: OpAssert, Pred: pred})
	b.startStack = append(b.startStack, start)
}

// Char pushes an operand matching the single literal scalar c.
func (b *Builder) Char(c rune) {
	start := len(b.ops)
	b.ops = append(b.ops, Op{Kind: OpChar, Char: c})
	b.startStack = append(b.startStack, start)
}

// Class pushes an operand matching any scalar in class.
func (b *Builder) Class(class charclass.Class) {
	start := len(b.ops)
	b.ops = append(b.ops, Op{Kind: OpClass, Class: class})
	b.startStack = append(b.startStack, start)
}

// Build returns the accumulated op list and resets the builder for reuse.
func (b *Builder) Build() Ast {
	ops := b.ops
	b.ops = nil
	return ops
}
