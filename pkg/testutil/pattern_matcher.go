package testutil

import (
	"sync"

	"github.com/Veraticus/partial-match/pkg/matcher"
)

// MockMatcher is a mock implementation of interfaces.Matcher for testing
type MockMatcher struct {
	mu     sync.Mutex
	result matcher.Result
	inputs []string
}

// NewMockMatcher creates a new mock matcher that always returns result
func NewMockMatcher(result matcher.Result) *MockMatcher {
	return &MockMatcher{result: result}
}

// Match implements the Matcher interface
func (m *MockMatcher) Match(input string) matcher.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	return m.result
}

// SetResult sets what Match will return
func (m *MockMatcher) SetResult(result matcher.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = result
}

// GetInputs returns the inputs Match was called with
func (m *MockMatcher) GetInputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inputs...)
}

// GetMatchCallCount returns how many times Match was called
func (m *MockMatcher) GetMatchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}
