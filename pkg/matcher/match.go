// Package matcher classifies input strings against compiled patterns.
//
// MatchOne steps a single pattern's atoms over an input that may be an
// unfinished prefix of what the user intends to type. A Set runs every
// pattern of a named collection and picks the best complete match.
package matcher

import "github.com/Veraticus/partial-match/pkg/pattern"

// Kind classifies the outcome of matching one pattern.
type Kind int

const (
	// NoMatch means some atom failed while input remained.
	NoMatch Kind = iota
	// Partial means the input ran out before the pattern was satisfied.
	Partial
	// Complete means the pattern was satisfied. Input may be left over.
	Complete
)

func (k Kind) String() string {
	switch k {
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	}
	return "none"
}

// Outcome is the result of matching one pattern against one input.
type Outcome struct {
	Kind      Kind
	Consumed  string // input text matched by the atoms
	Remainder string // input left after a complete match
	Atoms     int    // number of atoms that matched
}

// MatchOne walks the atoms of p over input, greedily and without
// backtracking. Each atom is anchored at the start of the unconsumed input.
// Matching stops at the first failing atom or when the input is used up.
//
// An input that is used up while atoms remain is Partial, except when
// every remaining atom accepts the empty string: then the pattern is
// already satisfied and the outcome is Complete with an empty remainder.
func MatchOne(p *pattern.Pattern, input string) Outcome {
	atoms := p.Atoms()
	remaining := input
	matched := 0
	failed := false

	for matched < len(atoms) && remaining != "" {
		n, ok := atoms[matched].Match(remaining)
		if !ok {
			failed = true
			break
		}
		remaining = remaining[n:]
		matched++
	}

	if failed || matched == 0 {
		return Outcome{Kind: NoMatch, Atoms: matched}
	}

	consumed := input[:len(input)-len(remaining)]
	if matched < len(atoms) && !nullable(atoms[matched:]) {
		return Outcome{Kind: Partial, Consumed: consumed, Atoms: matched}
	}
	return Outcome{Kind: Complete, Consumed: consumed, Remainder: remaining, Atoms: matched}
}

func nullable(atoms []pattern.Atom) bool {
	for _, a := range atoms {
		if !a.Nullable() {
			return false
		}
	}
	return true
}
