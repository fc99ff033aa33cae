// Package nfa implements a Thompson-style NFA simulator (a "Pike VM") that
// runs every live thread in lockstep over the input, one character at a
// time, tracking a full capture-slot vector per thread so it can resolve
// submatches the byte DFA never does.
package nfa

import (
	"github.com/coregx/regexcore/cursor"
	"github.com/coregx/regexcore/internal/rangeset"
	"github.com/coregx/regexcore/prog"
)

// Options configures a single Run call.
type Options struct {
	// ShortestMatch returns as soon as any thread reaches Match, without
	// comparing against other still-live higher-priority threads. Used when
	// the caller only wants a boolean answer.
	ShortestMatch bool
}

// Cache holds the two thread sets Run alternates between (current input
// position and next) plus the scratch stack addThread uses to expand an
// epsilon closure, all reused across calls against the same Prog.
type Cache[P any] struct {
	currThreads threadSet[P]
	nextThreads threadSet[P]
	addStack    []addThreadFrame[P]
}

// NewCache allocates a Cache sized for p.
func NewCache[P any](p *prog.Prog) *Cache[P] {
	return &Cache[P]{
		currThreads: newThreadSet[P](len(p.Insts), p.SlotCount),
		nextThreads: newThreadSet[P](len(p.Insts), p.SlotCount),
	}
}

// Run simulates p over curs, searching for the leftmost match that starts
// at or after curs's initial position, and reports whether one was found. The
// capture slots the winning thread resolved are written into slots (indexed
// 2*capIndex / 2*capIndex+1); only the first len(slots) slots are written,
// so slots may be nil or shorter than p.SlotCount, and a slot the match
// leaves unresolved keeps the value it had on entry.
func Run[P any](p *prog.Prog, curs cursor.Cursor[P], options Options, slots []*P, cache *Cache[P]) bool {
	r := &nfaRun[P]{prog: p, curs: curs, shortestMatch: options.ShortestMatch, cache: cache}
	return r.run(slots)
}

type nfaRun[P any] struct {
	prog          *prog.Prog
	curs          cursor.Cursor[P]
	shortestMatch bool
	cache         *Cache[P]
}

func (r *nfaRun[P]) run(slots []*P) bool {
	matched := false
	incoming := append([]*P(nil), slots...)
	scratch := make([]*P, r.prog.SlotCount)
	for {
		if !matched {
			r.addThread(&r.cache.nextThreads, r.prog.Start, scratch)
		}
		r.cache.currThreads, r.cache.nextThreads = r.cache.nextThreads, r.cache.currThreads
		r.cache.nextThreads.inst.Clear()

		c, cOK := r.curs.NextChar()
		if cOK {
			r.curs.MoveForward(runeLen(c))
		}

	threadLoop:
		for _, t := range r.cache.currThreads.inst.Slice() {
			inst := prog.InstPtr(t)
			in := r.prog.Insts[inst]
			switch in.Kind {
			case prog.KindMatch:
				copySlots(slots, r.cache.currThreads.slots.get(inst), incoming)
				if r.shortestMatch {
					return true
				}
				matched = true
				break threadLoop
			case prog.KindChar:
				if cOK && c == in.Char {
					r.addThread(&r.cache.nextThreads, in.Out, r.cache.currThreads.slots.getMut(inst))
				}
			case prog.KindCharRange:
				if cOK && in.CharRange.Contains(c) {
					r.addThread(&r.cache.nextThreads, in.Out, r.cache.currThreads.slots.getMut(inst))
				}
			default:
				panic("nfa: unexpected instruction kind reachable at char granularity")
			}
		}
		if !cOK {
			break
		}
	}
	return matched
}

func runeLen(c rune) int {
	switch {
	case c <= 0x7F:
		return 1
	case c <= 0x7FF:
		return 2
	case c <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// copySlots hands the winning thread's resolved positions to the caller's
// slot vector by copying the pointers themselves, not dereferencing through
// them, since the caller's elements may start out nil. A slot the winning
// thread left unresolved gets back the value it held when Run was called.
func copySlots[P any](dst, src, incoming []*P) {
	for i := range dst {
		if i < len(src) && src[i] != nil {
			dst[i] = src[i]
		} else {
			dst[i] = incoming[i]
		}
	}
}

// threadSet is the set of currently-live threads: inst.Slice() gives their
// instruction pointers in priority order (insertion order, which addThread
// preserves), and slots holds each thread's full capture-slot vector.
type threadSet[P any] struct {
	inst  *rangeset.Set
	slots slotTable[P]
}

func newThreadSet[P any](instCount, slotCount int) threadSet[P] {
	return threadSet[P]{
		inst:  rangeset.NewSet(instCount),
		slots: newSlotTable[P](instCount, slotCount),
	}
}

// slotTable is a flat instCount*slotCount table of optional positions, one
// row per instruction, avoiding a separate allocation per thread.
type slotTable[P any] struct {
	slots     []*P
	slotCount int
}

func newSlotTable[P any](instCount, slotCount int) slotTable[P] {
	return slotTable[P]{slots: make([]*P, instCount*slotCount), slotCount: slotCount}
}

func (t slotTable[P]) get(inst prog.InstPtr) []*P {
	i := int(inst) * t.slotCount
	return t.slots[i : i+t.slotCount]
}

func (t slotTable[P]) getMut(inst prog.InstPtr) []*P {
	return t.get(inst)
}

// addThreadFrame is one frame of addThread's explicit work stack: either
// "expand the epsilon closure of this instruction" or "undo this slot back
// to its previous value", the latter pushed whenever a Save instruction is
// followed so that a later sibling branch sees the slots as they were
// before this branch's saves.
type addThreadFrame[P any] struct {
	isUndo    bool
	inst      prog.InstPtr
	slotIndex int
	oldValue  *P
}

// addThread expands the epsilon closure of inst into threads, threading a
// mutable capture-slot vector through Save instructions (and restoring it
// via the undo frames once this call returns) the same way a recursive
// backtracking implementation would via the call stack, but explicit so it
// never overflows on deeply nested patterns.
func (r *nfaRun[P]) addThread(threads *threadSet[P], start prog.InstPtr, slots []*P) {
	stack := r.cache.addStack[:0]
	stack = append(stack, addThreadFrame[P]{inst: start})
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.isUndo {
			slots[frame.slotIndex] = frame.oldValue
			continue
		}

		inst := frame.inst
		for {
			in := r.prog.Insts[inst]
			switch in.Kind {
			case prog.KindMatch, prog.KindByteRange, prog.KindChar, prog.KindCharRange:
				if threads.inst.Insert(int(inst)) {
					copy(threads.slots.getMut(inst), slots)
				}
			case prog.KindNop:
				inst = in.Out
				continue
			case prog.KindSave:
				stack = append(stack, addThreadFrame[P]{isUndo: true, slotIndex: in.SlotIndex, oldValue: slots[in.SlotIndex]})
				pos := r.curs.Position()
				slots[in.SlotIndex] = &pos
				inst = in.Out
				continue
			case prog.KindAssert:
				if r.assertHolds(in.Pred) {
					inst = in.Out
					continue
				}
			case prog.KindSplit:
				stack = append(stack, addThreadFrame[P]{inst: in.Out1})
				inst = in.Out
				continue
			}
			break
		}
	}
	r.cache.addStack = stack
}

func (r *nfaRun[P]) assertHolds(pred prog.Pred) bool {
	switch pred {
	case prog.TextStart:
		return cursor.TextStart[P](r.curs)
	case prog.TextEnd:
		return cursor.TextEnd[P](r.curs)
	case prog.WordBoundary:
		return cursor.WordBoundary[P](r.curs)
	default:
		return !cursor.WordBoundary[P](r.curs)
	}
}
