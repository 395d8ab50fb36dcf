package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/Veraticus/partial-match/pkg/config"
	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
)

// TextReporter writes one human readable summary line per input
type TextReporter struct {
	mu      sync.Mutex
	w       io.Writer
	stamper *stamper

	complete *color.Color
	partial  *color.Color
	none     *color.Color
	faint    *color.Color
}

// Ensure TextReporter implements ResultReporter
var _ interfaces.ResultReporter = (*TextReporter)(nil)

// NewTextReporter creates a new text reporter
func NewTextReporter(w io.Writer, opts Options) (*TextReporter, error) {
	s, err := newStamper(opts)
	if err != nil {
		return nil, err
	}
	r := &TextReporter{
		w:        w,
		stamper:  s,
		complete: color.New(color.FgGreen),
		partial:  color.New(color.FgYellow),
		none:     color.New(color.FgRed),
		faint:    color.New(color.Faint),
	}
	applyColorMode(opts.Color, r.complete, r.partial, r.none, r.faint)
	return r, nil
}

// applyColorMode forces colors on or off. Auto leaves the decision to
// fatih/color, which checks whether stdout is a terminal.
func applyColorMode(mode string, colors ...*color.Color) {
	for _, c := range colors {
		switch mode {
		case config.ColorAlways:
			c.EnableColor()
		case config.ColorNever:
			c.DisableColor()
		}
	}
}

// ReportResult writes the summary line for input
func (r *TextReporter) ReportResult(input string, result matcher.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprintln(r.w, r.format(input, result))
	return err
}

func (r *TextReporter) format(input string, result matcher.Result) string {
	var b strings.Builder

	if ts := r.stamper.stamp(); ts != "" {
		b.WriteString(r.faint.Sprintf("[%s]", ts))
		b.WriteByte(' ')
	}
	b.WriteString(strconv.Quote(input))

	if result.Empty() {
		b.WriteString("  ")
		b.WriteString(r.none.Sprint("no match"))
		return b.String()
	}

	if names := result.CompleteNames(); len(names) > 0 {
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%q", name, result.Complete[name])
			if rest := result.Remainder[name]; rest != "" {
				parts[i] += fmt.Sprintf(" (rest %q)", rest)
			}
		}
		b.WriteString("  ")
		b.WriteString(r.complete.Sprint("complete: "))
		b.WriteString(strings.Join(parts, ", "))
	}

	if names := result.PartialNames(); len(names) > 0 {
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%q", name, result.Partial[name])
		}
		b.WriteString("  ")
		b.WriteString(r.partial.Sprint("partial: "))
		b.WriteString(strings.Join(parts, ", "))
	}

	if best, ok := result.Best(); ok {
		b.WriteString("  best: ")
		b.WriteString(r.complete.Sprint(best))
	}

	return b.String()
}
