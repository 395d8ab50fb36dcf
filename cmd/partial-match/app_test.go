package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Veraticus/partial-match/pkg/config"
	"github.com/Veraticus/partial-match/pkg/testutil"
	"github.com/Veraticus/partial-match/pkg/types"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Color = config.ColorNever
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	deps, err := NewDependencies(cfg, IO{Stdout: out, Stderr: &bytes.Buffer{}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(deps.Close)
	return NewApplication(deps), out
}

func TestNewDependencies(t *testing.T) {
	cfg := testConfig()

	deps, err := NewDependencies(cfg, IO{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Config != cfg {
		t.Error("expected config to be set")
	}

	if deps.Logger == nil {
		t.Error("expected a no-op logger when none is given")
	}

	if deps.Set == nil || deps.Set.Len() != 2 {
		t.Error("expected pattern set with two patterns")
	}

	if deps.Reporter == nil {
		t.Error("expected reporter to be created")
	}

	if deps.InputMonitor == nil {
		t.Error("expected input monitor to be created")
	}

	if deps.StatusIndicator == nil {
		t.Error("expected status indicator to be created")
	}

	if deps.StatusReporter == nil {
		t.Error("expected status reporter to be created")
	}

	deps.Close()
}

func TestNewDependenciesErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.Config
	}{
		{
			name: "unknown format",
			cfg: func() *config.Config {
				cfg := testConfig()
				cfg.Format = "xml"
				return cfg
			},
		},
		{
			name: "strict with broken pattern",
			cfg: func() *config.Config {
				cfg := testConfig()
				cfg.Strict = true
				cfg.Patterns = []types.Pattern{{Name: "broken", Expr: "ab[0-9"}}
				return cfg
			},
		},
		{
			name: "bad timestamp format",
			cfg: func() *config.Config {
				cfg := testConfig()
				cfg.TimestampFormat = "%Q"
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDependencies(tt.cfg(), IO{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}, nil)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDependenciesClose(t *testing.T) {
	deps, err := NewDependencies(testConfig(), IO{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Close should not panic
	deps.Close()

	// Double close should not panic
	deps.Close()
}

func TestApplicationMatchInputs(t *testing.T) {
	app, out := newTestApp(t, testConfig())

	app.MatchInputs([]string{"#12", "#1234", "xyz"})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 report lines, got %d: %q", len(lines), out.String())
	}

	if !strings.Contains(lines[0], "partial: 3hex=\"#12\", 6hex=\"#12\"") {
		t.Errorf("unexpected report for #12: %q", lines[0])
	}

	if !strings.Contains(lines[1], "complete: 3hex=\"#123\" (rest \"4\")") || !strings.Contains(lines[1], "best: 3hex") {
		t.Errorf("unexpected report for #1234: %q", lines[1])
	}

	if !strings.Contains(lines[2], "no match") {
		t.Errorf("unexpected report for xyz: %q", lines[2])
	}
}

func TestApplicationRunStream(t *testing.T) {
	cfg := testConfig()
	cfg.Format = config.FormatJSON
	app, out := newTestApp(t, cfg)

	// Last line has no trailing newline and must still be reported
	err := app.RunStream(strings.NewReader("#abc\r\n#ab\n#abcdef"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dec := json.NewDecoder(out)
	var inputs []string
	for dec.More() {
		var rec struct {
			Input     string            `json:"input"`
			Complete  map[string]string `json:"complete"`
			BestMatch string            `json:"bestMatch"`
		}
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("failed to decode record: %v", err)
		}
		inputs = append(inputs, rec.Input)
		if rec.Input == "#abcdef" && rec.BestMatch != "6hex" {
			t.Errorf("expected best match 6hex for #abcdef, got %q", rec.BestMatch)
		}
	}

	want := []string{"#abc", "#ab", "#abcdef"}
	if strings.Join(inputs, "|") != strings.Join(want, "|") {
		t.Errorf("expected inputs %v, got %v", want, inputs)
	}

	if app.ExitCode() != 0 {
		t.Errorf("expected exit code 0, got %d", app.ExitCode())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestApplicationRunStreamError(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	err := app.RunStream(failingReader{})
	if !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestApplicationKeystrokes(t *testing.T) {
	app, out := newTestApp(t, testConfig())
	mockStatus := testutil.NewMockStatusReporter()
	app.deps.StatusReporter = mockStatus

	for _, typed := range []string{"#", "#1", "#12", "#123"} {
		app.HandleKeystroke(typed)
	}

	inputs := mockStatus.GetInputs()
	if len(inputs) != 4 {
		t.Fatalf("expected 4 status updates, got %d", len(inputs))
	}

	last, ok := mockStatus.LastResult()
	if !ok {
		t.Fatal("expected a status result")
	}
	if best, _ := last.Best(); best != "3hex" {
		t.Errorf("expected best 3hex after #123, got %q", best)
	}

	// Keystrokes alone never produce reports
	if out.Len() != 0 {
		t.Errorf("expected no report output, got %q", out.String())
	}

	app.SubmitLine("#123")
	if mockStatus.GetClearCount() != 1 {
		t.Errorf("expected status to be cleared once, got %d", mockStatus.GetClearCount())
	}
	if !strings.Contains(out.String(), "best: 3hex") {
		t.Errorf("expected submitted line to be reported, got %q", out.String())
	}
}

func TestApplicationExitCode(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   int
	}{
		{name: "nothing reported", inputs: nil, want: 1},
		{name: "complete", inputs: []string{"#fff"}, want: 0},
		{name: "partial only", inputs: []string{"#ff"}, want: 1},
		{name: "last input decides", inputs: []string{"#fff", "nope"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, testConfig())
			app.MatchInputs(tt.inputs)
			if got := app.ExitCode(); got != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := testConfig()

	err := applyFlags(cfg, []string{"digits=[0-9]+", "word=\\w{2,}"}, "JSON", "always", true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Patterns) != 2 || cfg.Patterns[0].Name != "digits" || cfg.Patterns[1].Expr != "\\w{2,}" {
		t.Errorf("expected flag patterns to replace config, got %+v", cfg.Patterns)
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.Color != config.ColorAlways {
		t.Errorf("expected color always, got %q", cfg.Color)
	}
	if !cfg.Strict || !cfg.Debug {
		t.Error("expected strict and debug to be set")
	}
}

func TestApplyFlagsErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		format   string
	}{
		{name: "missing separator", patterns: []string{"noequals"}},
		{name: "duplicate name", patterns: []string{"a=x", "a=y"}},
		{name: "bad format", format: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := applyFlags(testConfig(), tt.patterns, tt.format, "", false, false); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIsatty(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = f.Close() }()

	if isatty(f.Fd()) {
		t.Error("expected a regular file not to be a terminal")
	}
}
