package syntax

import (
	"errors"
	"fmt"

	"github.com/coregx/regexcore/charclass"
	"github.com/coregx/regexcore/internal/rangeset"
)

// Sentinel parse errors, wrapped with position context by Parse.
var (
	ErrUnclosedGroup      = errors.New("syntax: unclosed group")
	ErrUnexpectedCloseParen = errors.New("syntax: unexpected )")
	ErrUnclosedClass      = errors.New("syntax: unclosed character class")
	ErrEmptyClass         = errors.New("syntax: empty character class")
	ErrBadEscape          = errors.New("syntax: unrecognized escape sequence")
	ErrTrailingBackslash  = errors.New("syntax: pattern ends with a trailing backslash")
	ErrMalformedRepeat    = errors.New("syntax: malformed repetition")
	ErrRepeatDigitsEmpty  = errors.New("syntax: repetition has no digits")
	ErrBadRepeatRange     = errors.New("syntax: repetition max is less than min")
)

// Parse compiles pattern into a flat postfix Ast. It never panics; malformed
// input is reported as an error wrapping one of the sentinels above.
func Parse(pattern string) (Ast, error) {
	runes := []rune(pattern)
	p := &parser{
		runes: runes,
		expr:  newExprFrame(intPtr(0)),
	}
	p.c0 = p.at(0)
	p.c1 = p.at(1)
	return p.parse()
}

func intPtr(v int) *int { return &v }

type parser struct {
	runes         []rune
	pos           int // index into runes of c0
	c0, c1        rune
	hasC0, hasC1  bool
	nextCapIndex  int
	exprStack     []exprFrame
	expr          exprFrame
	classBuilder  charclass.Builder
	astBuilder    Builder
}

// exprFrame tracks the state of the group currently being parsed: its
// capture index (nil for a non-capturing group), how many alternation terms
// have been completed (term_count), and how many concatenation factors are
// pending in the current term (fact_count).
type exprFrame struct {
	capIndex            *int
	termCount, factCount int
}

func newExprFrame(capIndex *int) exprFrame {
	return exprFrame{capIndex: capIndex}
}

func (p *parser) at(offset int) rune {
	i := p.pos + offset
	if i < len(p.runes) {
		return p.runes[i]
	}
	return 0
}

func (p *parser) has(offset int) bool {
	return p.pos+offset < len(p.runes)
}

func (p *parser) parse() (Ast, error) {
	p.nextCapIndex = 1
	p.hasC0 = p.has(0)
	p.hasC1 = p.has(1)
	p.c0 = p.at(0)
	p.c1 = p.at(1)

	for {
		if !p.hasC0 {
			break
		}
		switch {
		case p.c0 == '(':
			p.skip()
			cap := true
			if p.hasC0 && p.c0 == '?' && p.hasC1 && p.c1 == ':' {
				p.skip2()
				cap = false
			}
			var capIndex *int
			if cap {
				idx := p.nextCapIndex
				p.nextCapIndex++
				capIndex = &idx
			}
			p.push(capIndex)

		case p.c0 == ')':
			p.skip()
			if err := p.pop(); err != nil {
				return nil, err
			}

		case p.c0 == '|':
			p.skip()
			p.alt()

		case p.c0 == '?':
			p.skip()
			greedy := true
			if p.hasC0 && p.c0 == '?' {
				p.skip()
				greedy = false
			}
			p.astBuilder.Ques(greedy)

		case p.c0 == '*':
			p.skip()
			greedy := true
			if p.hasC0 && p.c0 == '?' {
				p.skip()
				greedy = false
			}
			p.astBuilder.Star(greedy)

		case p.c0 == '+':
			p.skip()
			greedy := true
			if p.hasC0 && p.c0 == '?' {
				p.skip()
				greedy = false
			}
			p.astBuilder.Plus(greedy)

		case p.c0 == '{':
			if p.expr.factCount == 0 {
				return nil, fmt.Errorf("%w: at position %d", ErrMalformedRepeat, p.pos)
			}
			p.skip()
			min, err := p.parseDecDigits()
			if err != nil {
				return nil, err
			}
			var max *int
			if p.hasC0 && p.c0 == ',' {
				p.skip()
				if p.hasC0 && p.c0 == '}' {
					max = nil
				} else {
					m, err := p.parseDecDigits()
					if err != nil {
						return nil, err
					}
					max = &m
				}
			} else {
				m := min
				max = &m
			}
			if max != nil && *max < min {
				return nil, fmt.Errorf("%w: at position %d", ErrBadRepeatRange, p.pos)
			}
			if !p.hasC0 || p.c0 != '}' {
				return nil, fmt.Errorf("%w: at position %d", ErrMalformedRepeat, p.pos)
			}
			p.skip()
			greedy := true
			if p.hasC0 && p.c0 == '?' {
				p.skip()
				greedy = false
			}
			p.astBuilder.Rep(min, max, greedy)

		case p.c0 == '.':
			p.skip()
			p.class(charclass.Any)

		case p.c0 == '^':
			p.skip()
			p.assert(TextStart)

		case p.c0 == '$':
			p.skip()
			p.assert(TextEnd)

		case p.c0 == '[':
			p.skip()
			negated := false
			if p.hasC0 && p.c0 == '^' {
				p.skip()
				negated = true
			}
			if err := p.parseClassBody(); err != nil {
				return nil, err
			}
			class := p.classBuilder.Build(negated)
			if class.IsEmpty() {
				return nil, fmt.Errorf("%w: at position %d", ErrEmptyClass, p.pos)
			}
			p.class(class)

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'B':
			p.skip2()
			p.assert(NotWordBoundary)

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'D':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Digit.Ranges(), true))

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'S':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Space.Ranges(), true))

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'W':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Word.Ranges(), true))

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'b':
			p.skip2()
			p.assert(WordBoundary)

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'd':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Digit.Ranges(), false))

		case p.c0 == '\\' && p.hasC1 && p.c1 == 's':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Space.Ranges(), false))

		case p.c0 == '\\' && p.hasC1 && p.c1 == 'w':
			p.skip2()
			p.class(charclass.FromRanges(charclass.Word.Ranges(), false))

		case p.c0 == '\\' && p.hasC1 && isMetaEscape(p.c1):
			p.skip2()
			c := p.runes[p.pos-1]
			switch c {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			case 'f':
				c = '\f'
			case 'v':
				c = '\v'
			case '0':
				c = 0
			}
			p.char(c)

		case p.c0 == '\\' && !p.hasC1:
			return nil, fmt.Errorf("%w: at position %d", ErrTrailingBackslash, p.pos)

		case p.c0 == '\\':
			return nil, fmt.Errorf("%w '\\%c' at position %d", ErrBadEscape, p.c1, p.pos)

		default:
			p.skip()
			p.char(p.runes[p.pos-1])
		}
	}

	if len(p.exprStack) > 0 {
		return nil, fmt.Errorf("%w: at position %d", ErrUnclosedGroup, p.pos)
	}

	p.alt()
	if p.expr.termCount == 0 {
		p.astBuilder.Empty()
	}
	p.astBuilder.Cap(*p.expr.capIndex)
	return p.astBuilder.Build(), nil
}

// isMetaEscape reports whether c is one of the regex metacharacters that can
// be escaped to match itself literally, plus the common single-character
// escapes (\n \t \r \f \v \0).
func isMetaEscape(c rune) bool {
	switch c {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
		return true
	case 'n', 't', 'r', 'f', 'v', '0':
		return true
	}
	return false
}

func (p *parser) parseClassBody() error {
	for {
		if !p.hasC0 {
			return fmt.Errorf("%w: at position %d", ErrUnclosedClass, p.pos)
		}
		switch {
		case p.c0 == ']':
			p.skip()
			return nil
		case p.c0 == '\\' && p.hasC1 && p.c1 == 'D':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Digit.Ranges(), true)
		case p.c0 == '\\' && p.hasC1 && p.c1 == 'S':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Space.Ranges(), true)
		case p.c0 == '\\' && p.hasC1 && p.c1 == 'W':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Word.Ranges(), true)
		case p.c0 == '\\' && p.hasC1 && p.c1 == 'd':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Digit.Ranges(), false)
		case p.c0 == '\\' && p.hasC1 && p.c1 == 's':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Space.Ranges(), false)
		case p.c0 == '\\' && p.hasC1 && p.c1 == 'w':
			p.skip2()
			p.classBuilder.InsertRanges(charclass.Word.Ranges(), false)
		case p.c0 == '\\' && p.hasC1:
			p.skip2()
			c := p.runes[p.pos-1]
			p.classBuilder.InsertRanges([]rangeset.Range[rune]{rangeset.New(c, c)}, false)
		case p.c0 == '\\' && !p.hasC1:
			return fmt.Errorf("%w: at position %d", ErrTrailingBackslash, p.pos)
		default:
			c := p.c0
			p.skip()
			p.classBuilder.InsertRanges([]rangeset.Range[rune]{rangeset.New(c, c)}, false)
		}
	}
}

func (p *parser) parseDecDigits() (int, error) {
	if !p.hasC0 || p.c0 < '0' || p.c0 > '9' {
		return 0, fmt.Errorf("%w: at position %d", ErrRepeatDigitsEmpty, p.pos)
	}
	value := int(p.c0 - '0')
	p.skip()
	for p.hasC0 && p.c0 >= '0' && p.c0 <= '9' {
		value = 10*value + int(p.c0-'0')
		p.skip()
	}
	return value, nil
}

func (p *parser) skip() {
	p.pos++
	p.hasC0 = p.hasC1
	p.c0 = p.c1
	p.hasC1 = p.has(1)
	p.c1 = p.at(1)
}

func (p *parser) skip2() {
	p.skip()
	p.skip()
}

func (p *parser) push(capIndex *int) {
	p.cat()
	old := p.expr
	p.expr = newExprFrame(capIndex)
	p.exprStack = append(p.exprStack, old)
}

func (p *parser) pop() error {
	if len(p.exprStack) == 0 {
		return fmt.Errorf("%w: at position %d", ErrUnexpectedCloseParen, p.pos)
	}
	p.alt()
	if p.expr.termCount == 0 {
		p.astBuilder.Empty()
	}
	if p.expr.capIndex != nil {
		p.astBuilder.Cap(*p.expr.capIndex)
	}
	p.expr = p.exprStack[len(p.exprStack)-1]
	p.exprStack = p.exprStack[:len(p.exprStack)-1]
	p.expr.factCount++
	return nil
}

func (p *parser) alt() {
	p.cat()
	if p.expr.factCount != 0 {
		p.expr.termCount++
		p.expr.factCount = 0
	}
	if p.expr.termCount == 2 {
		p.astBuilder.Alt()
		p.expr.termCount--
	}
}

func (p *parser) cat() {
	if p.expr.factCount == 2 {
		p.astBuilder.Cat()
		p.expr.factCount--
	}
}

func (p *parser) assert(pred Pred) {
	p.cat()
	p.expr.factCount++
	p.astBuilder.Assert(pred)
}

func (p *parser) char(c rune) {
	p.cat()
	p.expr.factCount++
	p.astBuilder.Char(c)
}

func (p *parser) class(class charclass.Class) {
	p.cat()
	p.expr.factCount++
	p.astBuilder.Class(class)
}
