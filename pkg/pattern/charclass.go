package pattern

import (
	"fmt"
	"unicode/utf8"
)

type runeRange struct{ lo, hi rune }

// CharClass matches a single rune that is (or, when negated, is not) in a
// set of ranges.
type CharClass struct {
	ranges  []runeRange
	negated bool
	src     string
}

func (c *CharClass) Match(s string) (int, bool) { return matchUnit(c, s) }
func (c *CharClass) Nullable() bool             { return false }
func (c *CharClass) String() string             { return c.src }

func (c *CharClass) MatchRune(r rune) bool {
	in := false
	for _, rr := range c.ranges {
		if r >= rr.lo && r <= rr.hi {
			in = true
			break
		}
	}
	return in != c.negated
}

// Negated reports whether the class is a [^...] class.
func (c *CharClass) Negated() bool { return c.negated }

var (
	digitRanges = []runeRange{{'0', '9'}}
	wordRanges  = []runeRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	spaceRanges = []runeRange{
		{'\t', '\r'}, {' ', ' '}, {0xa0, 0xa0}, {0x1680, 0x1680},
		{0x2000, 0x200a}, {0x2028, 0x2029}, {0x202f, 0x202f},
		{0x205f, 0x205f}, {0x3000, 0x3000}, {0xfeff, 0xfeff},
	}
)

// perlClass returns the ranges of a predefined class escape such as \d,
// and whether the escape letter negates it.
func perlClass(c byte) (ranges []runeRange, negated, ok bool) {
	switch c {
	case 'd':
		return digitRanges, false, true
	case 'D':
		return digitRanges, true, true
	case 'w':
		return wordRanges, false, true
	case 'W':
		return wordRanges, true, true
	case 's':
		return spaceRanges, false, true
	case 'S':
		return spaceRanges, true, true
	}
	return nil, false, false
}

func controlEscape(c byte) (rune, bool) {
	switch c {
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case '0':
		return 0, true
	}
	return 0, false
}

// complement returns the ranges not covered by rs. rs must be sorted and
// non-overlapping.
func complement(rs []runeRange) []runeRange {
	var out []runeRange
	next := rune(0)
	for _, r := range rs {
		if r.lo > next {
			out = append(out, runeRange{next, r.lo - 1})
		}
		next = r.hi + 1
	}
	if next <= utf8.MaxRune {
		out = append(out, runeRange{next, utf8.MaxRune})
	}
	return out
}

// parseClass parses a bracketed class starting at s[0] == '['. It returns
// the class and the number of bytes consumed.
func parseClass(s string) (*CharClass, int, error) {
	cc := &CharClass{}
	i := 1
	if i < len(s) && s[i] == '^' {
		cc.negated = true
		i++
	}
	first := true
	for {
		if i >= len(s) {
			return nil, 0, fmt.Errorf("unterminated character class")
		}
		if s[i] == ']' {
			if first {
				return nil, 0, fmt.Errorf("empty character class")
			}
			i++
			break
		}
		first = false

		lo, w, set, err := classItem(s[i:])
		if err != nil {
			return nil, 0, err
		}
		i += w
		if set != nil {
			cc.ranges = append(cc.ranges, set...)
			continue
		}

		// A '-' that is not last forms a range with the following item.
		if i+1 < len(s) && s[i] == '-' && s[i+1] != ']' {
			hi, hw, hset, err := classItem(s[i+1:])
			if err != nil {
				return nil, 0, err
			}
			if hset != nil {
				return nil, 0, fmt.Errorf("invalid range end %q", s[i+1:i+1+hw])
			}
			if hi < lo {
				return nil, 0, fmt.Errorf("invalid range %q", s[i-w:i+1+hw])
			}
			cc.ranges = append(cc.ranges, runeRange{lo, hi})
			i += 1 + hw
			continue
		}
		cc.ranges = append(cc.ranges, runeRange{lo, lo})
	}
	cc.src = s[:i]
	return cc, i, nil
}

// classItem parses one member of a bracketed class: a rune, an escaped
// rune, or a predefined class escape (returned as set).
func classItem(s string) (r rune, width int, set []runeRange, err error) {
	if s[0] != '\\' {
		c, w := decodeHead(s)
		return c, w, nil, nil
	}
	if len(s) < 2 {
		return 0, 0, nil, fmt.Errorf("trailing backslash in character class")
	}
	if ranges, negated, ok := perlClass(s[1]); ok {
		if negated {
			ranges = complement(ranges)
		}
		return 0, 2, ranges, nil
	}
	if c, ok := controlEscape(s[1]); ok {
		return c, 2, nil, nil
	}
	c, w := decodeHead(s[1:])
	return c, 1 + w, nil, nil
}
