package testutil

import (
	"sync"
	"time"

	"github.com/Veraticus/partial-match/pkg/matcher"
)

// Report is one call recorded by MockReporter
type Report struct {
	Input  string
	Result matcher.Result
}

// MockReporter is a thread-safe mock implementation of interfaces.ResultReporter for testing
type MockReporter struct {
	mu       sync.Mutex
	reports  []Report
	attempts []Report // Track all report attempts
	err      error
	delay    time.Duration
}

// NewMockReporter creates a new mock reporter
func NewMockReporter() *MockReporter {
	return &MockReporter{
		reports:  []Report{},
		attempts: []Report{},
	}
}

// ReportResult implements the ResultReporter interface
func (m *MockReporter) ReportResult(input string, result matcher.Result) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Always track the attempt
	r := Report{Input: input, Result: result}
	m.attempts = append(m.attempts, r)

	if m.err != nil {
		return m.err
	}

	m.reports = append(m.reports, r)
	return nil
}

// GetReports returns a copy of successful reports
func (m *MockReporter) GetReports() []Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Report, len(m.reports))
	copy(result, m.reports)
	return result
}

// GetAttempts returns a copy of all report attempts
func (m *MockReporter) GetAttempts() []Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Report, len(m.attempts))
	copy(result, m.attempts)
	return result
}

// SetError sets an error to be returned by ReportResult
func (m *MockReporter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay sets a delay applied before each report
func (m *MockReporter) SetDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = delay
}

// Clear clears all recorded reports
func (m *MockReporter) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = []Report{}
	m.attempts = []Report{}
}
