package prog

import (
	"github.com/coregx/regexcore/charclass"
	"github.com/coregx/regexcore/internal/rangeset"
	"github.com/coregx/regexcore/internal/utf8range"
	"github.com/coregx/regexcore/syntax"
)

// Options selects which of the three programs Compile produces: the
// dot-star-prefixed byte-based forward DFA program, the byte-based reversed
// DFA program, or the full char-based NFA program with captures.
type Options struct {
	// DotStar prepends an unanchored ".*?" search prefix, so the compiled
	// program finds a match starting anywhere rather than only at position 0.
	DotStar bool
	// IgnoreCaps skips emitting Save instructions, since the byte DFAs never
	// resolve captures (the NFA pass over the located span does that).
	IgnoreCaps bool
	// ByteBased lowers Char/Class ops to UTF-8 ByteRange instructions instead
	// of Char/CharRange, for the DFA's byte alphabet.
	ByteBased bool
	// Reversed builds the program to run over a reversed cursor, for finding
	// a match's start from its end.
	Reversed bool
}

// Compile lowers ast into a Prog under the given options.
func Compile(ast syntax.Ast, options Options) Prog {
	c := newCompiler(options)
	if c.dotStar {
		dotClass := charclass.FromRanges([]rangeset.Range[rune]{rangeset.New[rune](0, 0x10FFFF)}, false)
		c.class(dotClass)
		c.star(false)
	}
	for _, op := range ast {
		switch op.Kind {
		case syntax.OpEmpty:
			c.empty()
		case syntax.OpCap:
			c.cap(op.Index)
		case syntax.OpAlt:
			c.alt()
		case syntax.OpCat:
			c.cat()
		case syntax.OpQues:
			c.ques(op.Greedy)
		case syntax.OpStar:
			c.star(op.Greedy)
		case syntax.OpPlus:
			c.plus(op.Greedy)
		case syntax.OpAssert:
			c.assert(predFromSyntax(op.Pred))
		case syntax.OpChar:
			c.char(op.Char)
		case syntax.OpClass:
			c.class(op.Class)
		}
	}
	return c.compile()
}

func predFromSyntax(p syntax.Pred) Pred {
	switch p {
	case syntax.TextStart:
		return TextStart
	case syntax.TextEnd:
		return TextEnd
	case syntax.WordBoundary:
		return WordBoundary
	default:
		return NotWordBoundary
	}
}

// frag is a partially-built instruction graph: an entry point and a list of
// dangling outgoing edges ("holes") still waiting for a target.
type frag struct {
	start InstPtr
	ends  holeList
}

// holePtr addresses one outgoing edge of an instruction: its Out field when
// out1 is false, its Out1 field when out1 is true.
type holePtr struct {
	inst InstPtr
	out1 bool
}

func holeOut0(inst InstPtr) holePtr { return holePtr{inst: inst} }
func holeOut1(inst InstPtr) holePtr { return holePtr{inst: inst, out1: true} }

func (h holePtr) isNull() bool { return h.inst == NullInst }

func (h holePtr) get(insts []Inst) *InstPtr {
	if h.out1 {
		return &insts[h.inst].Out1
	}
	return &insts[h.inst].Out
}

// holeList is a singly-linked list of holes threaded through the Out/Out1
// fields of the instructions themselves, so patching it costs no extra
// allocation: each hole's target field temporarily stores the index of the
// next hole in the list, until fill replaces every one with the real
// target.
type holeList struct {
	head, tail holePtr
}

func emptyHoles() holeList { return holeList{head: holePtr{inst: NullInst}, tail: holePtr{inst: NullInst}} }

func unitHole(h holePtr) holeList { return holeList{head: h, tail: h} }

func (l holeList) append(h holePtr, insts []Inst) holeList {
	return l.concat(unitHole(h), insts)
}

func (l holeList) concat(other holeList, insts []Inst) holeList {
	if l.tail.isNull() {
		return other
	}
	if l.head.isNull() {
		return l
	}
	*l.tail.get(insts) = InstPtr(encodeHole(other.head))
	return holeList{head: l.head, tail: other.tail}
}

// fill walks the hole chain starting at l.head (where each hole's target
// field has been repurposed to point at the next hole) and overwrites every
// one with inst.
func (l holeList) fill(inst InstPtr, insts []Inst) {
	curr := l.head
	for curr.inst != NullInst {
		slot := curr.get(insts)
		next := decodeHole(*slot)
		*slot = inst
		curr = next
	}
}

// encodeHole/decodeHole pack a holePtr into the single InstPtr-sized slot a
// hole chain link has available, the same bit-stealing trick the original
// compiler's HolePtr(usize) used (inst<<1 | out1-bit).
func encodeHole(h holePtr) int {
	if h.inst == NullInst {
		return int(NullInst)
	}
	v := int(h.inst) << 1
	if h.out1 {
		v |= 1
	}
	return v
}

func decodeHole(v InstPtr) holePtr {
	if v == NullInst {
		return holePtr{inst: NullInst}
	}
	iv := int(v)
	return holePtr{inst: InstPtr(iv >> 1), out1: iv&1 != 0}
}

type compiler struct {
	dotStar         bool
	ignoreCaps      bool
	byteBased       bool
	reversed        bool
	insts           []Inst
	fragStack       []frag
	hasWordBoundary bool
	slotCount       int
	utf8Cache       *utf8range.Cache
	classCache      classCompilerCache
}

func newCompiler(options Options) *compiler {
	return &compiler{
		dotStar:    options.DotStar,
		ignoreCaps: options.IgnoreCaps,
		byteBased:  options.ByteBased,
		reversed:   options.Reversed,
		utf8Cache:  utf8range.NewCache(),
	}
}

func (c *compiler) emit(inst Inst) InstPtr {
	ptr := InstPtr(len(c.insts))
	c.insts = append(c.insts, inst)
	return ptr
}

func (c *compiler) push(f frag) {
	c.fragStack = append(c.fragStack, f)
}

func (c *compiler) popFrag() frag {
	f := c.fragStack[len(c.fragStack)-1]
	c.fragStack = c.fragStack[:len(c.fragStack)-1]
	return f
}

func (c *compiler) empty() {
	inst := c.emit(Inst{Kind: KindNop, Out: NullInst})
	c.push(frag{start: inst, ends: unitHole(holeOut0(inst))})
}

func (c *compiler) cap(index int) {
	if c.ignoreCaps {
		return
	}
	f := c.popFrag()
	inst0 := c.emit(Inst{Kind: KindSave, Out: f.start, SlotIndex: 2 * index})
	inst1 := c.emit(Inst{Kind: KindSave, Out: NullInst, SlotIndex: 2*index + 1})
	c.slotCount += 2
	f.ends.fill(inst1, c.insts)
	c.push(frag{start: inst0, ends: unitHole(holeOut0(inst1))})
}

func (c *compiler) alt() {
	f1 := c.popFrag()
	f0 := c.popFrag()
	inst := c.emit(Inst{Kind: KindSplit, Out: f0.start, Out1: f1.start})
	c.push(frag{start: inst, ends: f0.ends.concat(f1.ends, c.insts)})
}

func (c *compiler) cat() {
	f1 := c.popFrag()
	f0 := c.popFrag()
	var f frag
	if c.reversed {
		f1.ends.fill(f0.start, c.insts)
		f = frag{start: f1.start, ends: f0.ends}
	} else {
		f0.ends.fill(f1.start, c.insts)
		f = frag{start: f0.start, ends: f1.ends}
	}
	c.push(f)
}

func (c *compiler) splitFrag(greedy bool, target InstPtr) (InstPtr, holePtr) {
	if greedy {
		inst := c.emit(Inst{Kind: KindSplit, Out: target, Out1: NullInst})
		return inst, holeOut1(inst)
	}
	inst := c.emit(Inst{Kind: KindSplit, Out: NullInst, Out1: target})
	return inst, holeOut0(inst)
}

func (c *compiler) ques(greedy bool) {
	f := c.popFrag()
	inst, hole := c.splitFrag(greedy, f.start)
	c.push(frag{start: inst, ends: f.ends.append(hole, c.insts)})
}

func (c *compiler) star(greedy bool) {
	f := c.popFrag()
	inst, hole := c.splitFrag(greedy, f.start)
	f.ends.fill(inst, c.insts)
	c.push(frag{start: inst, ends: unitHole(hole)})
}

func (c *compiler) plus(greedy bool) {
	f := c.popFrag()
	inst, hole := c.splitFrag(greedy, f.start)
	f.ends.fill(inst, c.insts)
	c.push(frag{start: f.start, ends: unitHole(hole)})
}

func (c *compiler) assert(pred Pred) {
	inst := c.emit(Inst{Kind: KindAssert, Out: NullInst, Pred: pred})
	c.push(frag{start: inst, ends: unitHole(holeOut0(inst))})
	if pred == WordBoundary || pred == NotWordBoundary {
		c.hasWordBoundary = true
	}
}

func (c *compiler) byteRange(r rangeset.Range[byte]) {
	inst := c.emit(Inst{Kind: KindByteRange, Out: NullInst, ByteRange: r})
	c.push(frag{start: inst, ends: unitHole(holeOut0(inst))})
}

func (c *compiler) char(ch rune) {
	if c.byteBased {
		var buf [4]byte
		n := encodeUTF8(buf[:], ch)
		c.byteRange(rangeset.New(buf[0], buf[0]))
		for i := 1; i < n; i++ {
			c.byteRange(rangeset.New(buf[i], buf[i]))
			c.cat()
		}
		return
	}
	inst := c.emit(Inst{Kind: KindChar, Out: NullInst, Char: ch})
	c.push(frag{start: inst, ends: unitHole(holeOut0(inst))})
}

func (c *compiler) charRange(r rangeset.Range[rune]) {
	inst := c.emit(Inst{Kind: KindCharRange, Out: NullInst, CharRange: r})
	c.push(frag{start: inst, ends: unitHole(holeOut0(inst))})
}

func (c *compiler) class(class charclass.Class) {
	ranges := class.Ranges()
	if c.byteBased {
		cc := newClassCompiler(c.reversed, &c.classCache, c)
		for _, r := range ranges {
			for _, seq := range utf8range.Decompose(r.Start, r.End, c.utf8Cache) {
				if c.reversed {
					seq.Reverse()
				}
				cc.add(seq)
			}
		}
		c.push(cc.compile())
		return
	}
	c.charRange(ranges[0])
	for _, r := range ranges[1:] {
		c.charRange(r)
		c.alt()
	}
}

// compile finishes the current fragment with a Match instruction and
// returns the assembled Prog.
func (c *compiler) compile() Prog {
	if c.dotStar {
		c.reversed = false
		c.cat()
	}
	f := c.popFrag()
	inst := c.emit(Inst{Kind: KindMatch, Out: NullInst})
	f.ends.fill(inst, c.insts)
	return Prog{
		Insts:           c.insts,
		Start:           f.start,
		HasWordBoundary: c.hasWordBoundary,
		SlotCount:       c.slotCount,
	}
}

func encodeUTF8(buf []byte, r rune) int {
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
