// Package report writes match results for humans and for other programs.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/Veraticus/partial-match/pkg/config"
	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
)

// Record is the serialized form of one matched input.
type Record struct {
	Time      string            `json:"time,omitempty" yaml:"time,omitempty"`
	Input     string            `json:"input" yaml:"input"`
	Complete  map[string]string `json:"complete" yaml:"complete"`
	Partial   map[string]string `json:"partial" yaml:"partial"`
	Remainder map[string]string `json:"remainder" yaml:"remainder"`
	BestMatch string            `json:"bestMatch,omitempty" yaml:"bestMatch,omitempty"`
}

// NewRecord builds a record for input and its result. stamp may be empty.
func NewRecord(input string, result matcher.Result, stamp string) Record {
	return Record{
		Time:      stamp,
		Input:     input,
		Complete:  nonNil(result.Complete),
		Partial:   nonNil(result.Partial),
		Remainder: nonNil(result.Remainder),
		BestMatch: result.BestMatch,
	}
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Options configures a reporter.
type Options struct {
	// Color is one of config.ColorAuto, config.ColorAlways or config.ColorNever.
	Color string
	// TimestampFormat is a strftime pattern. Empty disables timestamps.
	TimestampFormat string
	// Now returns the report time. Defaults to time.Now.
	Now func() time.Time
}

// stamper formats report times.
type stamper struct {
	f   *strftime.Strftime
	now func() time.Time
}

func newStamper(opts Options) (*stamper, error) {
	s := &stamper{now: opts.Now}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.TimestampFormat != "" {
		f, err := strftime.New(opts.TimestampFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp format %q: %w", opts.TimestampFormat, err)
		}
		s.f = f
	}
	return s, nil
}

// stamp returns the formatted current time, or "" when timestamps are off.
func (s *stamper) stamp() string {
	if s.f == nil {
		return ""
	}
	return s.f.FormatString(s.now())
}

// New returns the reporter for format writing to w.
func New(format string, w io.Writer, opts Options) (interfaces.ResultReporter, error) {
	switch format {
	case config.FormatText, "":
		return NewTextReporter(w, opts)
	case config.FormatJSON:
		return NewJSONReporter(w, opts)
	case config.FormatYAML:
		return NewYAMLReporter(w, opts)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
