package domain

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// RangeExpression is a parsed `low <op> v <op> high` version constraint.
//
// An operator is inclusive iff it contains '='. `<` excludes the bound and `<=`
// admits it; there is no mode in which every bound is treated as inclusive.
type RangeExpression struct {
	Low           *semver.Version
	High          *semver.Version
	LowInclusive  bool
	HighInclusive bool
}

// ParseRange parses a range expression such as "1.0.0 <= v < 2.0.0".
// Every failure wraps ErrMalformedRange.
func ParseRange(s string) (RangeExpression, error) {
	p := rangeParser{input: s}

	lowText := p.bound()
	lowOp := p.operator()
	p.skipSpace()
	if !p.literal('v') {
		return RangeExpression{}, malformedRange(s, "expected separator 'v'")
	}
	p.skipSpace()
	highOp := p.operator()
	p.skipSpace()
	highText := p.rest()

	switch {
	case lowText == "":
		return RangeExpression{}, malformedRange(s, "missing lower bound")
	case lowOp == "":
		return RangeExpression{}, malformedRange(s, "missing lower operator")
	case highOp == "":
		return RangeExpression{}, malformedRange(s, "missing upper operator")
	case highText == "":
		return RangeExpression{}, malformedRange(s, "missing upper bound")
	case strings.ContainsFunc(highText, isRangeRune):
		return RangeExpression{}, malformedRange(s, "unexpected characters in upper bound")
	}

	low, err := semver.NewVersion(lowText)
	if err != nil {
		return RangeExpression{}, zerr.With(malformedRange(s, "lower bound is not a version"), "bound", lowText)
	}
	high, err := semver.NewVersion(highText)
	if err != nil {
		return RangeExpression{}, zerr.With(malformedRange(s, "upper bound is not a version"), "bound", highText)
	}
	if low.GreaterThan(high) {
		return RangeExpression{}, malformedRange(s, "lower bound exceeds upper bound")
	}

	return RangeExpression{
		Low:           low,
		High:          high,
		LowInclusive:  isInclusive(lowOp),
		HighInclusive: isInclusive(highOp),
	}, nil
}

// PinnedRange returns the exact-pin expression `tag <= v <= tag`.
func PinnedRange(tag string) (RangeExpression, error) {
	return ParseRange(tag + " <= v <= " + tag)
}

// IsPinned reports whether both bounds name the same version.
func (r RangeExpression) IsPinned() bool {
	return r.Low.Equal(r.High)
}

// String renders the expression with the bounds as originally written.
func (r RangeExpression) String() string {
	return r.Low.Original() + " " + operator(r.LowInclusive) + " v " + operator(r.HighInclusive) + " " + r.High.Original()
}

func (r RangeExpression) admitsLow(v *semver.Version) bool {
	if r.LowInclusive {
		return !v.LessThan(r.Low)
	}
	return v.GreaterThan(r.Low)
}

func (r RangeExpression) admitsHigh(v *semver.Version) bool {
	if r.HighInclusive {
		return !v.GreaterThan(r.High)
	}
	return v.LessThan(r.High)
}

func operator(inclusive bool) string {
	if inclusive {
		return "<="
	}
	return "<"
}

func isInclusive(op string) bool {
	return strings.ContainsRune(op, '=')
}

func isRangeRune(r rune) bool {
	return r == '<' || r == '=' || unicode.IsSpace(r)
}

func malformedRange(input, reason string) error {
	return zerr.With(zerr.Wrap(ErrMalformedRange, reason), "range", input)
}

// rangeParser is a single-pass scanner over a range expression.
type rangeParser struct {
	input string
	pos   int
}

func (p *rangeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

// bound consumes everything up to the first operator character.
// Inner whitespace makes the bound invalid.
func (p *rangeParser) bound() string {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != '<' && p.input[p.pos] != '=' {
		p.pos++
	}
	text := strings.TrimSpace(p.input[start:p.pos])
	if strings.ContainsFunc(text, unicode.IsSpace) {
		return ""
	}
	return text
}

func (p *rangeParser) operator() string {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] == '<' || p.input[p.pos] == '=') {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *rangeParser) literal(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *rangeParser) rest() string {
	text := strings.TrimSpace(p.input[p.pos:])
	p.pos = len(p.input)
	return text
}
