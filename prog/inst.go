// Package prog defines the compiled instruction set both the lazy DFA and
// the NFA simulator execute, and the compiler that lowers a syntax.Ast into
// it via fragment/hole-patching, the same way a one-pass assembler resolves
// forward jumps.
package prog

import "github.com/coregx/regexcore/internal/rangeset"

// InstPtr indexes into Prog.Insts. NullInst marks an unpatched ("hole")
// target.
type InstPtr int

// NullInst is never a valid instruction index; it marks an outgoing edge
// that hasn't been patched to its real target yet.
const NullInst InstPtr = -1

// Pred names an assertion an Assert instruction tests against the
// surrounding text.
type Pred int

const (
	TextStart Pred = iota
	TextEnd
	WordBoundary
	NotWordBoundary
)

// Kind discriminates the Inst union below.
type Kind int

const (
	KindMatch Kind = iota
	KindByteRange
	KindChar
	KindCharRange
	KindNop
	KindSave
	KindAssert
	KindSplit
)

// Inst is one compiled instruction. Only the fields relevant to Kind are
// meaningful: Out for everything but Match, Out1 additionally for Split,
// ByteRange for KindByteRange, Char for KindChar, CharRange for
// KindCharRange, SlotIndex for KindSave, Pred for KindAssert.
type Inst struct {
	Kind      Kind
	Out       InstPtr
	Out1      InstPtr // Split's second target
	ByteRange rangeset.Range[byte]
	Char      rune
	CharRange rangeset.Range[rune]
	SlotIndex int
	Pred      Pred
}

// Prog is a compiled program ready for the DFA or NFA to execute.
type Prog struct {
	Insts           []Inst
	Start           InstPtr
	HasWordBoundary bool
	SlotCount       int
}
