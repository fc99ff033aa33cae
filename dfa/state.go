package dfa

import (
	"github.com/coregx/regexcore/internal/leb128"
	"github.com/coregx/regexcore/prog"
)

// StatePtr is the 32-bit handle the transition table stores: either a plain
// state index ≤ MaxState, one of the three sentinels below, or a state
// index with the MatchState high bit set meaning "ordinary state, but at
// least one of its instructions is Match".
type StatePtr uint32

const (
	// UnknownState marks a transition cell that hasn't been computed yet.
	UnknownState StatePtr = 1 << 31
	// DeadState means this state (and everything reachable from it) can
	// never match; the run loop stops immediately.
	DeadState StatePtr = UnknownState + 1
	// ErrorState means the DFA cannot locally decide this transition
	// (word-boundary predicate, non-ASCII byte) and the caller must retry
	// with the NFA.
	ErrorState StatePtr = DeadState + 1
	// MatchState is OR-ed into an otherwise-ordinary state pointer to mark
	// it as accepting without needing a separate table.
	MatchState StatePtr = 1 << 30
	// MaxState is the largest plain state index; anything above it is one
	// of the sentinels or has MatchState set.
	MaxState StatePtr = MatchState - 1
)

// stateFlags are small per-state facts folded into the interning key so
// that two instruction sets differing only in these respects (but
// otherwise identical) still intern to different states.
type stateFlags uint8

const (
	flagMatched stateFlags = 1 << iota
	flagAssert
	flagWord
)

func (f stateFlags) matched() bool { return f&flagMatched != 0 }
func (f stateFlags) assert() bool  { return f&flagAssert != 0 }
func (f stateFlags) word() bool    { return f&flagWord != 0 }

// stateKey is the interning key for a DFA state: the flags plus the
// instruction set, delta-encoded with LEB128 so that the common case
// (neighbouring instruction pointers) stays a single byte per entry. It's
// comparable so it can be used directly as a map key.
type stateKey struct {
	flags stateFlags
	insts string // LEB128 zig-zag delta encoding, see encodeInsts/instsOf
}

func encodeInsts(insts []int) string {
	var buf []byte
	prev := 0
	for _, inst := range insts {
		buf = leb128.AppendInt(buf, inst-prev)
		prev = inst
	}
	return string(buf)
}

// instsOf decodes the instruction pointers a stateKey represents, in the
// original insertion order (which is priority order).
func (k stateKey) instsOf() []prog.InstPtr {
	var out []prog.InstPtr
	buf := []byte(k.insts)
	prev := 0
	for len(buf) > 0 {
		delta, n, ok := leb128.ReadInt(buf)
		if !ok {
			break
		}
		buf = buf[n:]
		prev += delta
		out = append(out, prog.InstPtr(prev))
	}
	return out
}

// states stores every interned state's key and its 257-column transition
// row (256 bytes plus one for end-of-input) in two flat slices, so a
// state's row is a contiguous slice and never touches the heap per-lookup.
type states struct {
	keys        []stateKey
	transitions []StatePtr
}

const transitionWidth = 257

func (s *states) key(ptr StatePtr) stateKey {
	return s.keys[ptr]
}

func (s *states) row(ptr StatePtr) []StatePtr {
	return s.transitions[int(ptr)*transitionWidth : int(ptr)*transitionWidth+transitionWidth]
}

func (s *states) add(key stateKey) StatePtr {
	ptr := StatePtr(len(s.keys))
	s.keys = append(s.keys, key)
	row := make([]StatePtr, transitionWidth)
	for i := range row {
		row[i] = UnknownState
	}
	s.transitions = append(s.transitions, row...)
	return ptr
}
