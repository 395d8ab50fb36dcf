package pattern

import "fmt"

// CompileError describes where and why a pattern stopped compiling.
type CompileError struct {
	Source    string // full pattern text
	Offset    int    // byte offset of the unit that failed
	Remainder string // unparsed text starting at Offset
	Reason    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("unable to parse pattern %q at offset %d (%q): %s", e.Source, e.Offset, e.Remainder, e.Reason)
}
