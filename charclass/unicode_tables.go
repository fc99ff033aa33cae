package charclass

import (
	"sort"
	"unicode"

	"github.com/coregx/regexcore/internal/rangeset"
)

// Digit, Space and Word are the baked-in classification tables backing
// \d \s \w (and, negated, \D \S \W). They are built once at init time from
// the standard library's Unicode range tables — flattened and merged
// through Builder so the result is already in the same canonical,
// surrogate-free form as any other Class.
//
// Word follows UTS #18's usual "Perl word" approximation: letters, marks,
// decimal digits and connector punctuation (which is where ASCII '_' lives).
// Any is every scalar value `.` can match: the full range of valid runes,
// which already excludes the surrogate hole since Class never represents it.
var (
	Digit Class
	Space Class
	Word  Class
	Any   Class
)

func init() {
	Digit = fromStdTables(unicode.Nd)
	Space = fromStdTables(unicode.White_Space)
	Word = fromStdTables(unicode.L, unicode.Mn, unicode.Mc, unicode.Me, unicode.Nd, unicode.Pc)
	Any = FromRanges([]rangeset.Range[rune]{rangeset.New(rune(0), rune(maxScalar-1))}, false)
}

func fromStdTables(tables ...*unicode.RangeTable) Class {
	var b Builder
	for _, t := range tables {
		for _, r := range t.R16 {
			addStrided(&b, rune(r.Lo), rune(r.Hi), rune(r.Stride))
		}
		for _, r := range t.R32 {
			addStrided(&b, rune(r.Lo), rune(r.Hi), rune(r.Stride))
		}
	}
	return b.Build(false)
}

func addStrided(b *Builder, lo, hi, stride rune) {
	if stride == 1 {
		b.InsertRange(lo, hi)
		return
	}
	for c := lo; c <= hi; c += stride {
		b.InsertRange(c, c)
	}
}

// IsASCIIWord reports whether b is an ASCII word byte: [0-9A-Za-z_].
func IsASCIIWord(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('A' <= b && b <= 'Z') ||
		('a' <= b && b <= 'z')
}

// IsWord reports whether r is a word scalar under Word, with an ASCII fast
// path before falling back to a binary search of the table.
func IsWord(r rune) bool {
	if r < 0x80 {
		return IsASCIIWord(byte(r))
	}
	ranges := wordRanges()
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End >= r })
	return i < len(ranges) && ranges[i].Start <= r
}

var cachedWordRanges []rangeset.Range[rune]

func wordRanges() []rangeset.Range[rune] {
	if cachedWordRanges == nil {
		cachedWordRanges = Word.Ranges()
	}
	return cachedWordRanges
}
