package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Veraticus/partial-match/pkg/config"
	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
	"github.com/Veraticus/partial-match/pkg/monitor"
	"github.com/Veraticus/partial-match/pkg/report"
	"github.com/Veraticus/partial-match/pkg/status"
)

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config          *config.Config
	Logger          *zap.Logger
	Set             *matcher.Set
	Reporter        interfaces.ResultReporter
	InputMonitor    *monitor.InputMonitor
	StatusIndicator *status.Indicator
	StatusReporter  interfaces.StatusReporter
	stopChan        chan struct{}
}

// IO bundles the streams the application writes to
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
	// StatusEnabled turns on the live status line on Stderr
	StatusEnabled bool
}

// NewDependencies creates all dependencies with the given configuration
func NewDependencies(cfg *config.Config, streams IO, logger *zap.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		stopChan: make(chan struct{}),
	}

	// Compile the pattern set once
	opts := []matcher.Option{matcher.WithLogger(logger)}
	if cfg.Strict {
		opts = append(opts, matcher.WithStrict())
	}
	set, err := matcher.NewSet(cfg.Patterns, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern set: %w", err)
	}
	deps.Set = set

	// Create result reporter
	deps.Reporter, err = report.New(cfg.Format, streams.Stdout, report.Options{
		Color:           cfg.Color,
		TimestampFormat: cfg.TimestampFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	// Create input monitor
	deps.InputMonitor = monitor.NewInputMonitor(deps.Set, deps.Reporter, logger)

	// Create status indicator (only draws when enabled for a terminal)
	deps.StatusIndicator = status.NewIndicator(streams.Stderr, streams.StatusEnabled)
	switch cfg.Color {
	case config.ColorAlways:
		deps.StatusIndicator.SetColor(true)
	case config.ColorNever:
		deps.StatusIndicator.SetColor(false)
	}
	deps.StatusReporter = status.NewReporter(deps.StatusIndicator)
	if streams.StatusEnabled {
		deps.StatusIndicator.WatchResize(deps.stopChan)
	}

	logger.Debug("dependencies ready",
		zap.Strings("patterns", deps.Set.Names()),
		zap.String("format", cfg.Format),
		zap.Bool("strict", cfg.Strict),
	)

	return deps, nil
}

// Close cleans up all dependencies
func (d *Dependencies) Close() {
	if d.stopChan != nil {
		select {
		case <-d.stopChan:
			// Already closed
		default:
			close(d.stopChan)
		}
		d.stopChan = nil
	}

	// Clean up status indicator
	if d.StatusReporter != nil {
		d.StatusReporter.Clear()
	}

	if d.Logger != nil {
		_ = d.Logger.Sync() // Best effort
	}
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// MatchInputs matches and reports each input
func (a *Application) MatchInputs(inputs []string) {
	for _, input := range inputs {
		a.deps.InputMonitor.HandleLine(input)
	}
}

// RunStream reads r until EOF, matching and reporting every line
func (a *Application) RunStream(r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			a.deps.InputMonitor.HandleData(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			a.deps.InputMonitor.Flush()
			return nil
		}
		if err != nil {
			a.deps.InputMonitor.Flush()
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// HandleKeystroke updates the live status for the line being typed
func (a *Application) HandleKeystroke(line string) {
	a.deps.StatusReporter.ReportStatus(line, a.deps.Set.Match(line))
}

// SubmitLine reports a finished line
func (a *Application) SubmitLine(line string) {
	a.deps.StatusReporter.Clear()
	a.deps.InputMonitor.HandleLine(line)
}

// ExitCode returns 0 when the last reported input matched some pattern
// completely and 1 otherwise
func (a *Application) ExitCode() int {
	last, ok := a.deps.InputMonitor.LastResult()
	if !ok {
		return 1
	}
	if _, complete := last.Best(); complete {
		return 0
	}
	return 1
}
