package prog

import "github.com/coregx/regexcore/internal/rangeset"

// uncompiledEntry is one pending byte position in the trie being built: rng
// is the byte range at this position, inst is the already-compiled
// instruction this position branches off from (NullInst if this position
// is the start of a fresh, not-yet-merged sequence).
type uncompiledEntry struct {
	inst InstPtr
	rng  rangeset.Range[byte]
}

// classCompilerCache is the reusable scratch state for compiling an entire
// character class's sequence of byte-range sequences into a minimal
// suffix-sharing (or, reversed, prefix-sharing) automaton.
type classCompilerCache struct {
	compiled   map[Inst]InstPtr
	uncompiled []uncompiledEntry
}

// classCompiler builds one character class's instructions, merging newly
// added byte-range sequences with the trie built so far wherever their
// tails (heads, if reversed) already match. Forward compilation shares
// suffixes because byte sequences for adjacent scalar ranges tend to agree
// on their low-order bytes; reversed compilation shares prefixes for the
// same reason run in reverse, so it never looks for a shared prefix with
// the previous add (reversed's prefixLen is always 0 — the caller already
// reversed each sequence before adding it).
type classCompiler struct {
	reversed   bool
	c          *compiler
	compiled   map[Inst]InstPtr
	uncompiled *[]uncompiledEntry
	ends       holeList
}

func newClassCompiler(reversed bool, cache *classCompilerCache, c *compiler) *classCompiler {
	if cache.compiled == nil {
		cache.compiled = make(map[Inst]InstPtr)
	}
	return &classCompiler{
		reversed:   reversed,
		c:          c,
		compiled:   cache.compiled,
		uncompiled: &cache.uncompiled,
		ends:       emptyHoles(),
	}
}

func (cc *classCompiler) add(ranges []rangeset.Range[byte]) {
	prefixLen := cc.prefixLen(ranges)
	inst := cc.compileSuffix(prefixLen)
	cc.appendSuffix(inst, ranges[prefixLen:])
}

func (cc *classCompiler) prefixLen(ranges []rangeset.Range[byte]) int {
	if cc.reversed {
		return 0
	}
	uncompiled := *cc.uncompiled
	n := 0
	for n < len(ranges) && n < len(uncompiled) && ranges[n] == uncompiled[n].rng {
		n++
	}
	return n
}

func (cc *classCompiler) compileSuffix(start int) InstPtr {
	inst := NullInst
	uncompiled := cc.uncompiled
	for len(*uncompiled) > start {
		last := len(*uncompiled) - 1
		u := (*uncompiled)[last]
		*uncompiled = (*uncompiled)[:last]

		hasHole := inst == NullInst
		nextInst, isNew := cc.getOrEmit(Inst{Kind: KindByteRange, Out: inst, ByteRange: u.rng})
		inst = nextInst
		if isNew && hasHole {
			cc.ends = cc.ends.append(holeOut0(inst), cc.c.insts)
		}
		if u.inst != NullInst {
			branch, _ := cc.getOrEmit(Inst{Kind: KindSplit, Out: u.inst, Out1: inst})
			inst = branch
		}
	}
	return inst
}

func (cc *classCompiler) appendSuffix(inst InstPtr, ranges []rangeset.Range[byte]) {
	*cc.uncompiled = append(*cc.uncompiled, uncompiledEntry{inst: inst, rng: ranges[0]})
	for _, r := range ranges[1:] {
		*cc.uncompiled = append(*cc.uncompiled, uncompiledEntry{inst: NullInst, rng: r})
	}
}

func (cc *classCompiler) getOrEmit(inst Inst) (InstPtr, bool) {
	if ptr, ok := cc.compiled[inst]; ok {
		return ptr, false
	}
	ptr := cc.c.emit(inst)
	cc.compiled[inst] = ptr
	return ptr, true
}

func (cc *classCompiler) compile() frag {
	start := cc.compileSuffix(0)
	clear(cc.compiled)
	return frag{start: start, ends: cc.ends}
}
