package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
)

// JSONReporter writes one JSON object per line
type JSONReporter struct {
	mu      sync.Mutex
	enc     *json.Encoder
	stamper *stamper
}

// Ensure JSONReporter implements ResultReporter
var _ interfaces.ResultReporter = (*JSONReporter)(nil)

// NewJSONReporter creates a new JSON lines reporter
func NewJSONReporter(w io.Writer, opts Options) (*JSONReporter, error) {
	s, err := newStamper(opts)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONReporter{enc: enc, stamper: s}, nil
}

// ReportResult writes the record for input
func (r *JSONReporter) ReportResult(input string, result matcher.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.enc.Encode(NewRecord(input, result, r.stamper.stamp()))
}

// YAMLReporter writes one YAML document per input
type YAMLReporter struct {
	mu      sync.Mutex
	w       io.Writer
	stamper *stamper
}

// Ensure YAMLReporter implements ResultReporter
var _ interfaces.ResultReporter = (*YAMLReporter)(nil)

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer, opts Options) (*YAMLReporter, error) {
	s, err := newStamper(opts)
	if err != nil {
		return nil, err
	}
	return &YAMLReporter{w: w, stamper: s}, nil
}

// ReportResult writes the document for input
func (r *YAMLReporter) ReportResult(input string, result matcher.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(NewRecord(input, result, r.stamper.stamp()))
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := io.WriteString(r.w, "---\n"); err != nil {
		return err
	}
	_, err = r.w.Write(data)
	return err
}
