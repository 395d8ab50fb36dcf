// Package pattern compiles the partial-match pattern dialect into ordered
// sequences of atoms.
//
// The dialect is a restricted regular expression language: literal
// characters, backslash escapes, bracketed character classes, the '.'
// wildcard and the quantifiers ?, +, *, {n}, {n,m} and {n,}. There is no
// alternation, grouping or anchoring; every pattern is implicitly anchored
// at the start of the input.
//
// Counted quantifiers are unrolled at compile time. x{2,5} compiles to the
// atoms x, x, x{0,3}: one atom per mandatory repetition followed by a
// single optional tail. This lets a matcher step through the atoms
// greedily without counters or backtracking.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRepeat is the largest repetition count accepted in a {n}, {n,m} or
// {n,} quantifier.
const MaxRepeat = 1000

// Pattern is a compiled pattern. It is immutable and safe for concurrent
// use.
type Pattern struct {
	src       string
	atoms     []Atom
	truncated bool
}

// Source returns the pattern text the pattern was compiled from.
func (p *Pattern) Source() string { return p.src }

// Atoms returns the compiled atoms in source order. The slice must not be
// modified.
func (p *Pattern) Atoms() []Atom { return p.atoms }

// Len returns the number of atoms.
func (p *Pattern) Len() int { return len(p.atoms) }

// Complete reports whether the whole source compiled. A pattern that hit
// a compile error holds only the atoms before the error.
func (p *Pattern) Complete() bool { return !p.truncated }

// String renders the atom sequence, e.g. "[a a a{0,2}]".
func (p *Pattern) String() string {
	parts := make([]string, len(p.atoms))
	for i, a := range p.atoms {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Compile parses src into a Pattern.
//
// Compilation never discards work: when a unit cannot be parsed, Compile
// returns the atoms parsed so far together with a *CompileError. The
// returned Pattern is never nil.
func Compile(src string) (*Pattern, error) {
	p := &Pattern{src: src}
	for off := 0; off < len(src); {
		atoms, n, err := parseUnit(src[off:])
		if err != nil {
			p.truncated = true
			return p, &CompileError{
				Source:    src,
				Offset:    off,
				Remainder: src[off:],
				Reason:    err.Error(),
			}
		}
		p.atoms = append(p.atoms, atoms...)
		off += n
	}
	return p, nil
}

// MustCompile is like Compile but panics on a compile error.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// parseUnit parses one atom and its optional quantifier from the head of
// s. It returns the expanded atoms and the number of bytes consumed.
func parseUnit(s string) ([]Atom, int, error) {
	u, n, err := parseAtom(s)
	if err != nil {
		return nil, 0, err
	}
	q, qn, err := parseQuantifier(s[n:])
	if err != nil {
		return nil, 0, err
	}
	return q.expand(u), n + qn, nil
}

func parseAtom(s string) (Unit, int, error) {
	switch s[0] {
	case '[':
		cc, n, err := parseClass(s)
		if err != nil {
			return nil, 0, err
		}
		return cc, n, nil
	case '\\':
		if len(s) < 2 {
			return nil, 0, fmt.Errorf("trailing backslash")
		}
		if ranges, negated, ok := perlClass(s[1]); ok {
			return &CharClass{ranges: ranges, negated: negated, src: s[:2]}, 2, nil
		}
		if c, ok := controlEscape(s[1]); ok {
			return newLiteralSrc(c, s[:2]), 2, nil
		}
		r, w := decodeHead(s[1:])
		return newLiteralSrc(r, s[:1+w]), 1 + w, nil
	case '.':
		return Wildcard{}, 1, nil
	case '?', '+', '*':
		return nil, 0, fmt.Errorf("quantifier %q without a preceding atom", s[:1])
	}
	r, w := decodeHead(s)
	return newLiteralSrc(r, s[:w]), w, nil
}

type quantKind int

const (
	quantNone quantKind = iota
	quantOptional
	quantPlus
	quantStar
	quantExact
	quantRange
	quantAtLeast
)

type quantifier struct {
	kind     quantKind
	min, max int
}

// expand applies the quantifier to u, unrolling counted repetition.
func (q quantifier) expand(u Unit) []Atom {
	switch q.kind {
	case quantOptional:
		return []Atom{&Optional{Unit: u}}
	case quantPlus:
		return []Atom{&OneOrMore{Unit: u}}
	case quantStar:
		return []Atom{&ZeroOrMore{Unit: u}}
	case quantExact:
		return copies(u, q.min)
	case quantRange:
		atoms := copies(u, q.min)
		if q.max > q.min {
			atoms = append(atoms, &BoundedRepeat{Unit: u, Max: q.max - q.min})
		}
		return atoms
	case quantAtLeast:
		return append(copies(u, q.min), &ZeroOrMore{Unit: u})
	}
	return []Atom{u}
}

func copies(u Unit, n int) []Atom {
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = u
	}
	return atoms
}

// parseQuantifier parses an optional quantifier at the head of s. A '{'
// that does not open a well-formed counted quantifier is not a quantifier
// and is left for the next unit to read as a literal.
func parseQuantifier(s string) (quantifier, int, error) {
	if s == "" {
		return quantifier{}, 0, nil
	}
	switch s[0] {
	case '?':
		return quantifier{kind: quantOptional}, 1, nil
	case '+':
		return quantifier{kind: quantPlus}, 1, nil
	case '*':
		return quantifier{kind: quantStar}, 1, nil
	case '{':
		return parseCounted(s)
	}
	return quantifier{}, 0, nil
}

func parseCounted(s string) (quantifier, int, error) {
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return quantifier{}, 0, nil
	}
	body := s[1:end]
	lo, hi, comma := strings.Cut(body, ",")
	min, ok := parseCount(lo)
	if !ok {
		return quantifier{}, 0, nil
	}
	q := quantifier{kind: quantExact, min: min}
	if comma {
		if hi == "" {
			q.kind = quantAtLeast
		} else {
			max, ok := parseCount(hi)
			if !ok {
				return quantifier{}, 0, nil
			}
			q.kind, q.max = quantRange, max
		}
	}
	if q.min > MaxRepeat || q.max > MaxRepeat {
		return quantifier{}, 0, fmt.Errorf("repeat count in %q exceeds %d", s[:end+1], MaxRepeat)
	}
	if q.kind == quantRange && q.max < q.min {
		return quantifier{}, 0, fmt.Errorf("invalid repeat range %q", s[:end+1])
	}
	return q, end + 1, nil
}

// parseCount parses a non-empty run of ASCII digits. Counts too large for
// an int are clamped so the MaxRepeat check rejects them.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return MaxRepeat + 1, true
	}
	return n, true
}
