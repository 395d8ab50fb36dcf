package monitor

import (
	"bytes"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
)

// InputMonitor splits raw input into lines, matches each line against a
// pattern set and hands the result to a reporter
type InputMonitor struct {
	matcher  interfaces.Matcher
	reporter interfaces.ResultReporter
	logger   *zap.Logger

	mu         sync.Mutex
	lineBuffer bytes.Buffer
	lines      int
	last       matcher.Result
	hasLast    bool
}

// Ensure InputMonitor implements DataHandler
var _ interfaces.DataHandler = (*InputMonitor)(nil)

// NewInputMonitor creates a new input monitor
func NewInputMonitor(m interfaces.Matcher, r interfaces.ResultReporter, logger *zap.Logger) *InputMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputMonitor{
		matcher:  m,
		reporter: r,
		logger:   logger,
	}
}

// HandleData processes raw input data
func (im *InputMonitor) HandleData(data []byte) {
	im.mu.Lock()
	defer im.mu.Unlock()

	// Add data to line buffer
	im.lineBuffer.Write(data)

	// Process complete lines
	buffer := im.lineBuffer.Bytes()
	start := 0
	for i := 0; i < len(buffer); i++ {
		if buffer[i] == '\n' {
			im.processLine(string(buffer[start:i]))
			start = i + 1
		}
	}

	// Keep any incomplete line in the buffer
	rest := append([]byte(nil), buffer[start:]...)
	im.lineBuffer.Reset()
	im.lineBuffer.Write(rest)
}

// HandleLine implements the LineHandler interface
func (im *InputMonitor) HandleLine(line string) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.processLine(line)
}

// Flush processes any remaining data in the buffer
func (im *InputMonitor) Flush() {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.lineBuffer.Len() > 0 {
		line := im.lineBuffer.String()
		im.lineBuffer.Reset()
		im.processLine(line)
	}
}

// processLine matches a single line and reports it. Callers hold im.mu.
func (im *InputMonitor) processLine(line string) {
	line = strings.TrimSuffix(line, "\r")

	result := im.matcher.Match(line)
	im.lines++
	im.last = result
	im.hasLast = true

	im.logger.Debug("matched line",
		zap.Int("line", im.lines),
		zap.String("input", line),
		zap.Int("complete", len(result.Complete)),
		zap.Int("partial", len(result.Partial)),
		zap.String("best", result.BestMatch),
	)

	if im.reporter == nil {
		return
	}
	if err := im.reporter.ReportResult(line, result); err != nil {
		// Keep processing input even if a report fails
		im.logger.Warn("report error", zap.Int("line", im.lines), zap.Error(err))
	}
}

// LastResult returns the result for the most recently processed line
func (im *InputMonitor) LastResult() (matcher.Result, bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.last, im.hasLast
}

// Lines returns how many lines have been processed
func (im *InputMonitor) Lines() int {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.lines
}
