package pattern

import (
	"strconv"
	"unicode/utf8"
)

// Atom is one compiled matchable unit of a pattern.
type Atom interface {
	// Match anchors at the start of s and reports the byte length of the
	// longest head it accepts. Atoms never look past the head.
	Match(s string) (n int, ok bool)
	// Nullable reports whether the atom accepts the empty string.
	Nullable() bool
	// String returns the regex fragment the atom denotes.
	String() string
}

// Unit is an atom that consumes exactly one rune. Quantified atoms are
// built from units.
type Unit interface {
	Atom
	MatchRune(r rune) bool
}

// decodeHead returns the first rune of s and its width. Invalid UTF-8
// decodes as utf8.RuneError with width 1.
func decodeHead(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

func matchUnit(u Unit, s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	r, w := decodeHead(s)
	if !u.MatchRune(r) {
		return 0, false
	}
	return w, true
}

// repeat greedily matches u between min and max times at the head of s.
// A negative max means unbounded.
func repeat(u Unit, s string, min, max int) (int, bool) {
	n, count := 0, 0
	for max < 0 || count < max {
		w, ok := matchUnit(u, s[n:])
		if !ok {
			break
		}
		n += w
		count++
	}
	if count < min {
		return 0, false
	}
	return n, true
}

// Literal matches a single exact rune.
type Literal struct {
	r   rune
	src string
}

// NewLiteral returns a literal atom for r, escaping it in its source form
// when r is a dialect metacharacter.
func NewLiteral(r rune) *Literal {
	src := string(r)
	if isMeta(r) {
		src = `\` + src
	}
	return &Literal{r: r, src: src}
}

func newLiteralSrc(r rune, src string) *Literal {
	return &Literal{r: r, src: src}
}

func (l *Literal) Match(s string) (int, bool) { return matchUnit(l, s) }
func (l *Literal) MatchRune(r rune) bool      { return r == l.r }
func (l *Literal) Nullable() bool             { return false }
func (l *Literal) String() string             { return l.src }

// Rune returns the rune the literal matches.
func (l *Literal) Rune() rune { return l.r }

// Wildcard matches any rune except line terminators.
type Wildcard struct{}

func (Wildcard) Match(s string) (int, bool) { return matchUnit(Wildcard{}, s) }
func (Wildcard) Nullable() bool             { return false }
func (Wildcard) String() string             { return "." }

func (Wildcard) MatchRune(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return false
	}
	return true
}

// Optional matches zero or one occurrence of its unit.
type Optional struct{ Unit Unit }

func (o *Optional) Match(s string) (int, bool) { return repeat(o.Unit, s, 0, 1) }
func (o *Optional) Nullable() bool             { return true }
func (o *Optional) String() string             { return o.Unit.String() + "?" }

// OneOrMore matches one or more occurrences of its unit.
type OneOrMore struct{ Unit Unit }

func (o *OneOrMore) Match(s string) (int, bool) { return repeat(o.Unit, s, 1, -1) }
func (o *OneOrMore) Nullable() bool             { return false }
func (o *OneOrMore) String() string             { return o.Unit.String() + "+" }

// ZeroOrMore matches any number of occurrences of its unit.
type ZeroOrMore struct{ Unit Unit }

func (z *ZeroOrMore) Match(s string) (int, bool) { return repeat(z.Unit, s, 0, -1) }
func (z *ZeroOrMore) Nullable() bool             { return true }
func (z *ZeroOrMore) String() string             { return z.Unit.String() + "*" }

// BoundedRepeat matches between zero and Max occurrences of its unit. It is
// the optional tail of an expanded {min,max} quantifier.
type BoundedRepeat struct {
	Unit Unit
	Max  int
}

func (b *BoundedRepeat) Match(s string) (int, bool) { return repeat(b.Unit, s, 0, b.Max) }
func (b *BoundedRepeat) Nullable() bool             { return true }

func (b *BoundedRepeat) String() string {
	return b.Unit.String() + "{0," + strconv.Itoa(b.Max) + "}"
}

func isMeta(r rune) bool {
	switch r {
	case '\\', '.', '[', ']', '?', '+', '*', '{':
		return true
	}
	return false
}
