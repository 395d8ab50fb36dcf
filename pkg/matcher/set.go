package matcher

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Veraticus/partial-match/pkg/pattern"
	"github.com/Veraticus/partial-match/pkg/types"
)

var (
	// ErrEmptyName is returned when a pattern has no name.
	ErrEmptyName = errors.New("pattern name is empty")
	// ErrDuplicateName is returned when two patterns share a name.
	ErrDuplicateName = errors.New("duplicate pattern name")
)

// Diagnostic records a pattern that stopped compiling early.
type Diagnostic struct {
	Name string
	Err  *pattern.CompileError
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Name, d.Err)
}

type options struct {
	logger *zap.Logger
	strict bool
}

// Option configures a Set.
type Option func(*options)

// WithLogger sets the logger used to report compile diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrict makes NewSet fail on the first pattern that does not compile
// instead of keeping the truncated pattern.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// Set is a named collection of compiled patterns. It is built once and is
// safe for concurrent use.
type Set struct {
	names       []string
	patterns    map[string]*pattern.Pattern
	diagnostics []Diagnostic
}

// NewSet compiles every enabled pattern. The order of patterns is the
// set's insertion order, which breaks ties when choosing a best match.
//
// A pattern that fails to compile is logged and kept in its truncated
// form, unless WithStrict is given.
func NewSet(patterns []types.Pattern, opts ...Option) (*Set, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Set{patterns: make(map[string]*pattern.Pattern, len(patterns))}
	for _, def := range patterns {
		if def.Disabled {
			continue
		}
		if def.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := s.patterns[def.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}

		p, err := pattern.Compile(def.Expr)
		if err != nil {
			if o.strict {
				return nil, fmt.Errorf("failed to compile pattern %q: %w", def.Name, err)
			}
			var ce *pattern.CompileError
			if errors.As(err, &ce) {
				s.diagnostics = append(s.diagnostics, Diagnostic{Name: def.Name, Err: ce})
				o.logger.Warn("unable to parse pattern",
					zap.String("name", def.Name),
					zap.String("pattern", ce.Source),
					zap.Int("offset", ce.Offset),
					zap.String("remaining", ce.Remainder),
					zap.String("reason", ce.Reason),
					zap.Int("atoms", p.Len()),
				)
			}
		}
		s.names = append(s.names, def.Name)
		s.patterns[def.Name] = p
	}
	return s, nil
}

// FromMap builds a Set from name/pattern pairs. Map order is undefined, so
// the names are sorted to give the set a stable insertion order.
func FromMap(m map[string]string, opts ...Option) (*Set, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]types.Pattern, 0, len(names))
	for _, name := range names {
		defs = append(defs, types.Pattern{Name: name, Expr: m[name]})
	}
	return NewSet(defs, opts...)
}

// Match classifies input against every pattern in the set.
func (s *Set) Match(input string) Result {
	res := newResult(s.names)
	for _, name := range s.names {
		out := MatchOne(s.patterns[name], input)
		switch out.Kind {
		case Complete:
			res.Complete[name] = out.Consumed
			res.Remainder[name] = out.Remainder
		case Partial:
			res.Partial[name] = out.Consumed
		}
	}

	best := -1
	for _, name := range s.names {
		rest, ok := res.Remainder[name]
		if !ok {
			continue
		}
		if best < 0 || len(rest) < best {
			res.BestMatch = name
			best = len(rest)
		}
	}
	return res
}

// MatchOne matches input against a single named pattern.
func (s *Set) MatchOne(name, input string) (Outcome, bool) {
	p, ok := s.patterns[name]
	if !ok {
		return Outcome{}, false
	}
	return MatchOne(p, input), true
}

// Names returns the pattern names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Pattern returns the compiled pattern for name.
func (s *Set) Pattern(name string) (*pattern.Pattern, bool) {
	p, ok := s.patterns[name]
	return p, ok
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int { return len(s.names) }

// Diagnostics returns the compile problems found while building the set.
func (s *Set) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), s.diagnostics...)
}
