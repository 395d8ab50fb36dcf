package status

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/fatih/color"

	"github.com/Veraticus/partial-match/pkg/matcher"
)

// State is the match state shown by the indicator
type State int

const (
	StateEmpty State = iota
	StateNone
	StatePartial
	StateComplete
)

// Indicator manages the live status line in the terminal
type Indicator struct {
	mu      sync.Mutex
	state   State
	text    string
	enabled bool
	writer  io.Writer

	// width returns the terminal width in columns, or 0 when unknown
	width func() int

	complete *color.Color
	partial  *color.Color
	none     *color.Color
}

// NewIndicator creates a new status indicator
func NewIndicator(writer io.Writer, enabled bool) *Indicator {
	i := &Indicator{
		state:    StateEmpty,
		writer:   writer,
		enabled:  enabled,
		complete: color.New(color.FgGreen, color.Bold),
		partial:  color.New(color.FgYellow),
		none:     color.New(color.FgRed),
	}
	i.width = i.terminalWidth
	return i
}

// SetColor forces colors on or off
func (i *Indicator) SetColor(enabled bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, c := range []*color.Color{i.complete, i.partial, i.none} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// SetResult updates the status from the result for the current input
func (i *Indicator) SetResult(input string, result matcher.Result) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.state, i.text = describe(input, result)

	// Best effort - don't fail if we can't update the display
	_ = i.draw()
}

// describe returns the state and plain status text for a result
func describe(input string, result matcher.Result) (State, string) {
	if input == "" {
		return StateEmpty, ""
	}
	if best, ok := result.Best(); ok {
		text := "✓ " + best
		if partial := result.PartialNames(); len(partial) > 0 {
			text += "  … " + strings.Join(partial, ", ")
		}
		return StateComplete, text
	}
	if partial := result.PartialNames(); len(partial) > 0 {
		return StatePartial, "… " + strings.Join(partial, ", ")
	}
	return StateNone, "✗ no match"
}

// State returns the current state
func (i *Indicator) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Text returns the current plain status text
func (i *Indicator) Text() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.text
}

// draw renders the status indicator. Callers hold i.mu.
func (i *Indicator) draw() error {
	if !i.enabled || i.writer == nil {
		return nil
	}
	if i.text == "" {
		return i.clearLine()
	}

	text := truncate(i.text, i.width())
	switch i.state {
	case StateComplete:
		text = i.complete.Sprint(text)
	case StatePartial:
		text = i.partial.Sprint(text)
	case StateNone:
		text = i.none.Sprint(text)
	}

	// \0337 - DECSC: Save cursor position and attributes
	// \033[r - Reset scroll region to full screen
	// \033[999;1H - Move to line 999, column 1 (clamped to the last line)
	// \033[2K - Clear entire line
	// \0338 - DECRC: Restore cursor position and attributes
	sequence := fmt.Sprintf("\0337\033[r\033[999;1H\033[2K%s\0338", text)
	_, err := fmt.Fprint(i.writer, sequence)
	return err
}

// truncate shortens s to at most width runes. A width of 0 or less means
// unknown and leaves s alone.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// terminalWidth asks the terminal behind the writer for its size
func (i *Indicator) terminalWidth() int {
	f, ok := i.writer.(*os.File)
	if !ok {
		return 0
	}
	size, err := pty.GetsizeFull(f)
	if err != nil {
		return 0
	}
	return int(size.Cols)
}

func (i *Indicator) clearLine() error {
	_, err := fmt.Fprint(i.writer, "\0337\033[999;1H\033[2K\0338")
	return err
}

// Clear removes the status indicator
func (i *Indicator) Clear() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.state, i.text = StateEmpty, ""
	if !i.enabled || i.writer == nil {
		return nil
	}
	return i.clearLine()
}

// WatchResize redraws the indicator whenever the terminal is resized, until
// stopChan is closed
func (i *Indicator) WatchResize(stopChan <-chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigChan)
		for {
			select {
			case <-sigChan:
				i.mu.Lock()
				_ = i.draw() // Best effort
				i.mu.Unlock()
			case <-stopChan:
				return
			}
		}
	}()
}
