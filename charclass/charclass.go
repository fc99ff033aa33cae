// Package charclass implements the canonical character class representation
// used throughout compilation: a sorted, disjoint, even-length list of
// 32-bit scalar boundaries, built incrementally from a difference map.
package charclass

import (
	"sort"

	"github.com/coregx/regexcore/internal/rangeset"
)

const (
	surrogateLo = 0xD800
	surrogateHi = 0xE000 // exclusive
	maxScalar   = 0x110000
)

// Class is a sorted, even-length, disjoint list of scalar boundaries,
// interpreted as the half-open intervals [b0,b1), [b2,b3), ... Intervals
// never cover the surrogate hole [0xD800, 0xE000).
type Class struct {
	bounds []uint32
}

// Ranges returns the class as a slice of inclusive rune ranges, in
// ascending order.
func (c Class) Ranges() []rangeset.Range[rune] {
	out := make([]rangeset.Range[rune], 0, len(c.bounds)/2)
	for i := 0; i+1 < len(c.bounds); i += 2 {
		out = append(out, rangeset.New(rune(c.bounds[i]), rune(c.bounds[i+1]-1)))
	}
	return out
}

// IsEmpty reports whether the class matches no scalars at all.
func (c Class) IsEmpty() bool {
	return len(c.bounds) == 0
}

// FromRanges builds a Class directly from a sorted, disjoint list of
// non-negated input ranges (or their negation), by inserting them all into
// a Builder in one call. Used for baked-in tables (\d \s \w and their
// upper-case negations) where the input is already in canonical form.
func FromRanges(ranges []rangeset.Range[rune], negated bool) Class {
	var b Builder
	b.InsertRanges(ranges, negated)
	return b.Build(false)
}

// Builder accumulates class intervals via a difference map (bound -> +-1
// delta) and materialises a canonical Class by sweeping the map in
// ascending order, emitting a boundary each time the running count
// transitions between zero and non-zero.
type Builder struct {
	bounds []uint32
	deltas []int32
	// index maps a bound value to its index in bounds/deltas; built lazily
	// since most classes are small (a handful of ranges).
	index map[uint32]int
}

func (b *Builder) ensure() {
	if b.index == nil {
		b.index = make(map[uint32]int)
	}
}

func (b *Builder) insertDelta(bound uint32, delta int32) {
	b.ensure()
	if idx, ok := b.index[bound]; ok {
		b.deltas[idx] += delta
		if b.deltas[idx] == 0 {
			// Collapse to-zero entries so the sweep never trips on a
			// bound whose net effect cancelled out.
			last := len(b.bounds) - 1
			b.bounds[idx] = b.bounds[last]
			b.deltas[idx] = b.deltas[last]
			delete(b.index, bound)
			if idx != last {
				b.index[b.bounds[idx]] = idx
			}
			b.bounds = b.bounds[:last]
			b.deltas = b.deltas[:last]
		}
		return
	}
	b.index[bound] = len(b.bounds)
	b.bounds = append(b.bounds, bound)
	b.deltas = append(b.deltas, delta)
}

// InsertRange adds the inclusive scalar range [lo, hi] to the class being
// built, incrementing the difference map at lo and decrementing at hi+1.
func (b *Builder) InsertRange(lo, hi rune) {
	b.insertDelta(uint32(lo), 1)
	b.insertDelta(uint32(hi)+1, -1)
}

// InsertRanges inserts every range in ranges, splitting any range that
// straddles the surrogate gap, and negating the whole set first if negated
// is set.
func (b *Builder) InsertRanges(ranges []rangeset.Range[rune], negated bool) {
	if negated {
		negateRanges(ranges, func(r rangeset.Range[rune]) {
			splitRange(r, b.InsertRange)
		})
		return
	}
	for _, r := range ranges {
		splitRange(r, b.InsertRange)
	}
}

// Build sweeps the difference map in ascending bound order and emits the
// canonical boundary list, then clears the map for reuse. In negated mode
// the sweep additionally forces boundaries at 0, at both surrogate-gap
// edges, and at maxScalar, so the gap is honoured exactly even when the
// accumulated ranges don't touch it.
func (b *Builder) Build(negated bool) Class {
	type pair struct {
		bound uint32
		delta int32
	}
	pairs := make([]pair, len(b.bounds))
	for i := range b.bounds {
		pairs[i] = pair{b.bounds[i], b.deltas[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].bound < pairs[j].bound })

	var out []uint32
	if negated {
		has := func(bound uint32) bool {
			for _, p := range pairs {
				if p.bound == bound {
					return true
				}
			}
			return false
		}
		if !has(0) {
			out = append(out, 0)
		}
		count := int32(0)
		for _, p := range pairs {
			if p.bound == 0 || p.bound >= surrogateLo {
				continue
			}
			next := count + p.delta
			if (count != 0) != (next != 0) {
				out = append(out, p.bound)
			}
			count = next
		}
		if !has(surrogateLo) {
			out = append(out, surrogateLo)
		}
		if !has(surrogateHi) {
			out = append(out, surrogateHi)
		}
		count = 0
		for _, p := range pairs {
			if p.bound <= surrogateHi || p.bound >= maxScalar {
				continue
			}
			next := count + p.delta
			if (count != 0) != (next != 0) {
				out = append(out, p.bound)
			}
			count = next
		}
		if !has(maxScalar) {
			out = append(out, maxScalar)
		}
	} else {
		count := int32(0)
		for _, p := range pairs {
			next := count + p.delta
			if (count != 0) != (next != 0) {
				out = append(out, p.bound)
			}
			count = next
		}
	}

	b.bounds = nil
	b.deltas = nil
	b.index = nil
	return Class{bounds: out}
}

func negateRanges(ranges []rangeset.Range[rune], f func(rangeset.Range[rune])) {
	if len(ranges) == 0 {
		return
	}
	if ranges[0].Start > 0 {
		f(rangeset.New[rune](0, ranges[0].Start-1))
	}
	for i := 0; i+1 < len(ranges); i++ {
		f(rangeset.New(ranges[i].End+1, ranges[i+1].Start-1))
	}
	last := ranges[len(ranges)-1].End
	if last < 0x10FFFF {
		f(rangeset.New[rune](last+1, 0x10FFFF))
	}
}

func splitRange(r rangeset.Range[rune], f func(lo, hi rune)) {
	if r.Start <= 0xD7FF && r.End >= 0xE000 {
		f(r.Start, 0xD7FF)
		f(0xE000, r.End)
		return
	}
	f(r.Start, r.End)
}
