package matcher

import "sort"

// Result aggregates the outcomes of every pattern in a Set for one input.
type Result struct {
	// Complete maps each completely matching pattern to the text it consumed.
	Complete map[string]string `json:"complete" yaml:"complete"`
	// Partial maps each partially matching pattern to the text it consumed,
	// which is always the whole input.
	Partial map[string]string `json:"partial" yaml:"partial"`
	// Remainder maps each completely matching pattern to the input it left.
	Remainder map[string]string `json:"remainder" yaml:"remainder"`
	// BestMatch names the complete match with the shortest remainder, or is
	// empty when nothing matched completely.
	BestMatch string `json:"bestMatch,omitempty" yaml:"bestMatch,omitempty"`

	order []string
}

func newResult(order []string) Result {
	return Result{
		Complete:  map[string]string{},
		Partial:   map[string]string{},
		Remainder: map[string]string{},
		order:     order,
	}
}

// Best returns the best match and whether there is one.
func (r Result) Best() (string, bool) {
	return r.BestMatch, r.BestMatch != ""
}

// Status returns how the named pattern matched.
func (r Result) Status(name string) Kind {
	if _, ok := r.Complete[name]; ok {
		return Complete
	}
	if _, ok := r.Partial[name]; ok {
		return Partial
	}
	return NoMatch
}

// Empty reports whether no pattern matched at all.
func (r Result) Empty() bool {
	return len(r.Complete) == 0 && len(r.Partial) == 0
}

// CompleteNames returns the completely matching patterns in set order.
func (r Result) CompleteNames() []string { return r.namesWith(Complete) }

// PartialNames returns the partially matching patterns in set order.
func (r Result) PartialNames() []string { return r.namesWith(Partial) }

// namesWith falls back to sorted names for results not built by a Set.
func (r Result) namesWith(k Kind) []string {
	var names []string
	if r.order == nil {
		src := r.Complete
		if k == Partial {
			src = r.Partial
		}
		for name := range src {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	for _, name := range r.order {
		if r.Status(name) == k {
			names = append(names, name)
		}
	}
	return names
}
