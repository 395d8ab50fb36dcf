package status

import (
	"github.com/Veraticus/partial-match/pkg/interfaces"
	"github.com/Veraticus/partial-match/pkg/matcher"
)

// Reporter adapts the Indicator to implement interfaces.StatusReporter
type Reporter struct {
	indicator *Indicator
}

// NewReporter creates a new status reporter
func NewReporter(indicator *Indicator) *Reporter {
	return &Reporter{
		indicator: indicator,
	}
}

// Ensure Reporter implements StatusReporter
var _ interfaces.StatusReporter = (*Reporter)(nil)

// ReportStatus shows the status for the input typed so far
func (r *Reporter) ReportStatus(input string, result matcher.Result) {
	if r.indicator != nil {
		r.indicator.SetResult(input, result)
	}
}

// Clear removes the status line
func (r *Reporter) Clear() {
	if r.indicator != nil {
		_ = r.indicator.Clear() // Best effort
	}
}
