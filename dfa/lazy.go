// Package dfa implements a lazy byte-at-a-time DFA: states are discovered
// and interned on demand via subset construction over a prog.Prog, rather
// than built up front. Running it twice — once forward to find a match's
// end, once over a reversed cursor and a reversed program to find its
// start — gives an unanchored search its span without ever invoking the
// slower NFA, except when a word-boundary assertion forces a fallback.
package dfa

import (
	"github.com/coregx/regexcore/cursor"
	"github.com/coregx/regexcore/internal/rangeset"
	"github.com/coregx/regexcore/prog"
)

// Run searches curs with p, returning the position one past the last byte
// of the match (Run never resolves the start; pair it with a reversed
// program and cursor for that — see the facade in the root package). ok is
// false if there was no match. Run returns ErrWordBoundaryNonASCII if it
// hits a non-ASCII byte it can't locally classify against a word-boundary
// assertion in p; the caller should retry with the NFA in that case.
func Run[P any](p *prog.Prog, curs cursor.Cursor[P], options Options, cache *Cache) (pos P, ok bool, err error) {
	d := &dfaRun[P]{prog: p, curs: curs, shortestMatch: options.ShortestMatch, cache: cache}
	return d.run()
}

type dfaRun[P any] struct {
	prog          *prog.Prog
	curs          cursor.Cursor[P]
	shortestMatch bool
	cache         *Cache
}

func (d *dfaRun[P]) run() (P, bool, error) {
	var matched P
	haveMatch := false

	startState := d.startState()
	prevState := startState
	currState := startState
	b, bOK := d.curs.NextByte()

	for {
		for currState <= MaxState && bOK {
			prevState = currState
			row := d.cache.states.row(prevState)
			currState = row[b]
			d.curs.MoveForward(1)
			b, bOK = d.curs.NextByte()
		}

		if currState&MatchState != 0 {
			d.curs.MoveBackward(1)
			matched = d.curs.Position()
			haveMatch = true
			d.curs.MoveForward(1)
			if d.shortestMatch {
				return matched, true, nil
			}
			currState &^= MatchState
			continue
		}

		if currState == UnknownState {
			pb, pbOK := d.curs.PrevByte()
			next := d.nextState(prevState, pb, pbOK)
			col := 256
			if pbOK {
				col = int(pb)
			}
			d.cache.states.row(prevState)[col] = next
			currState = next
			continue
		} else if currState == ErrorState {
			var zero P
			return zero, false, ErrWordBoundaryNonASCII
		}
		break
	}

	for _, inst := range d.cache.states.key(currState).instsOf() {
		d.cache.currInsts.Insert(int(inst))
	}
	prevState = currState
	currState = d.nextState(prevState, 0, false)
	if currState&MatchState != 0 {
		matched = d.curs.Position()
		haveMatch = true
	}
	return matched, haveMatch, nil
}

func (d *dfaRun[P]) startState() StatePtr {
	prevByte, prevOK := d.curs.PrevByte()
	nextByte, nextOK := d.curs.NextByte()
	prevIsWord := prevOK && isASCIIWordByte(prevByte)
	nextIsWord := nextOK && isASCIIWordByte(nextByte)

	var flags stateFlags
	if prevIsWord {
		flags |= flagWord
	}
	preds := preds{
		textStart:     !prevOK,
		textEnd:       !nextOK,
		wordBoundary:  prevIsWord != nextIsWord,
	}
	d.addInst(d.cache.currInsts, d.prog.Start, preds)
	key := d.createStateKey(flags, d.cache.currInsts.Slice())
	d.cache.currInsts.Clear()
	return d.getOrCreateState(key)
}

func (d *dfaRun[P]) nextState(state StatePtr, b byte, bOK bool) StatePtr {
	for _, inst := range d.cache.states.key(state).instsOf() {
		d.cache.currInsts.Insert(int(inst))
	}

	if d.cache.states.key(state).flags.assert() {
		prevIsWord := d.cache.states.key(state).flags.word()
		nextIsWord := bOK && isASCIIWordByte(b)
		p := preds{
			textEnd:      !bOK,
			wordBoundary: prevIsWord != nextIsWord,
		}
		for _, inst := range d.cache.currInsts.Slice() {
			d.addInst(d.cache.nextInsts, prog.InstPtr(inst), p)
		}
		d.cache.currInsts, d.cache.nextInsts = d.cache.nextInsts, d.cache.currInsts
		d.cache.nextInsts.Clear()
	}

	var flags stateFlags
	if bOK && isASCIIWordByte(b) {
		flags |= flagWord
	}
	zero := preds{}
	for _, inst := range d.cache.currInsts.Slice() {
		in := d.prog.Insts[inst]
		switch in.Kind {
		case prog.KindMatch:
			flags |= flagMatched
		case prog.KindByteRange:
			if bOK && in.ByteRange.Contains(b) {
				d.addInst(d.cache.nextInsts, in.Out, zero)
			}
		case prog.KindAssert:
			// already resolved above
		default:
			panic("dfa: unexpected instruction kind reachable at byte granularity")
		}
	}
	d.cache.currInsts, d.cache.nextInsts = d.cache.nextInsts, d.cache.currInsts
	d.cache.nextInsts.Clear()
	key := d.createStateKey(flags, d.cache.currInsts.Slice())
	d.cache.currInsts.Clear()
	state = d.getOrCreateState(key)
	if flags.matched() {
		state |= MatchState
	}
	return state
}

func (d *dfaRun[P]) getOrCreateState(key stateKey) StatePtr {
	if ptr, ok := d.cache.stateCache[key]; ok {
		return ptr
	}
	ptr := d.cache.states.add(key)
	d.cache.stateCache[key] = ptr
	if d.prog.HasWordBoundary {
		row := d.cache.states.row(ptr)
		for b := 128; b < 256; b++ {
			row[b] = ErrorState
		}
	}
	return ptr
}

func (d *dfaRun[P]) createStateKey(flags stateFlags, insts []int) stateKey {
	ordered := make([]int, len(insts))
	copy(ordered, insts)
	for _, inst := range ordered {
		if d.prog.Insts[inst].Kind == prog.KindAssert {
			flags |= flagAssert
		}
	}
	return stateKey{flags: flags, insts: encodeInsts(ordered)}
}

// preds is the set of assertion truths known at the current position, used
// while expanding an epsilon closure (addInst).
type preds struct {
	textStart, textEnd, wordBoundary bool
}

// addInst expands the epsilon closure of inst into insts, following Nop and
// Save silently, Split into both arms (in priority order), and Assert only
// along the arm whose predicate preds satisfies. An Assert whose predicate
// does not hold is inserted into insts itself, so that nextState can check
// it again once the following byte is known.
func (d *dfaRun[P]) addInst(insts *rangeset.Set, start prog.InstPtr, preds preds) {
	stack := d.cache.addStack[:0]
	stack = append(stack, start)
	for len(stack) > 0 {
		inst := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for {
			in := d.prog.Insts[inst]
			switch in.Kind {
			case prog.KindMatch, prog.KindByteRange, prog.KindChar, prog.KindCharRange:
				insts.Insert(int(inst))
			case prog.KindNop:
				inst = in.Out
				continue
			case prog.KindSave:
				inst = in.Out
				continue
			case prog.KindAssert:
				var hold bool
				switch in.Pred {
				case prog.TextStart:
					hold = preds.textStart
				case prog.TextEnd:
					hold = preds.textEnd
				case prog.WordBoundary:
					hold = preds.wordBoundary
				case prog.NotWordBoundary:
					hold = !preds.wordBoundary
				}
				if hold {
					inst = in.Out
					continue
				}
				insts.Insert(int(inst))
			case prog.KindSplit:
				stack = append(stack, in.Out1)
				inst = in.Out
				continue
			}
			break
		}
	}
	d.cache.addStack = stack
}

func isASCIIWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('A' <= b && b <= 'Z') ||
		('a' <= b && b <= 'z')
}
