// Package interfaces defines the core interfaces used throughout the application.
package interfaces

import "github.com/Veraticus/partial-match/pkg/matcher"

// Matcher classifies input against a pattern set.
type Matcher interface {
	Match(input string) matcher.Result
}

// LineHandler processes complete input lines.
type LineHandler interface {
	HandleLine(line string)
}

// DataHandler processes raw input data.
type DataHandler interface {
	LineHandler
	HandleData(data []byte)
	Flush()
}

// ResultReporter receives the result of matching one input.
type ResultReporter interface {
	ReportResult(input string, result matcher.Result) error
}

// StatusReporter shows the live status of the input being typed.
type StatusReporter interface {
	ReportStatus(input string, result matcher.Result)
	Clear()
}
