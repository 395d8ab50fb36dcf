package testutil

import (
	"sync"

	"github.com/Veraticus/partial-match/pkg/matcher"
)

// MockStatusReporter is a mock implementation of interfaces.StatusReporter for testing
type MockStatusReporter struct {
	mu      sync.Mutex
	inputs  []string
	results []matcher.Result
	clears  int
}

// NewMockStatusReporter creates a new mock status reporter
func NewMockStatusReporter() *MockStatusReporter {
	return &MockStatusReporter{}
}

// ReportStatus implements the StatusReporter interface
func (m *MockStatusReporter) ReportStatus(input string, result matcher.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	m.results = append(m.results, result)
}

// Clear implements the StatusReporter interface
func (m *MockStatusReporter) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
}

// GetInputs returns every input reported so far
func (m *MockStatusReporter) GetInputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inputs...)
}

// LastResult returns the most recent result, if any
func (m *MockStatusReporter) LastResult() (matcher.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) == 0 {
		return matcher.Result{}, false
	}
	return m.results[len(m.results)-1], true
}

// GetClearCount returns how many times Clear was called
func (m *MockStatusReporter) GetClearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
