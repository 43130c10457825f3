package rules

import "fmt"

// ParseError represents a sidecar file whose structure could not be parsed.
// The whole declaration is rejected; the directory behaves as undeclared.
type ParseError struct {
	Message string
	Line    int // 0 when not tied to a specific line
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("sidecar parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("sidecar parse error: %s", e.Message)
}

// UnknownEntryError represents a sequence entry whose YAML tag is not a
// recognized rule shape.
type UnknownEntryError struct {
	Tag  string
	Line int
}

// Error implements the error interface.
func (e *UnknownEntryError) Error() string {
	return fmt.Sprintf("unknown rule entry %q at line %d (expected %s or %s)",
		e.Tag, e.Line, TagFilePattern, TagDirectoryTag)
}

// Warning describes a rule that was dropped during parsing because its
// filename pattern does not compile. Parsing continues past it.
type Warning struct {
	Index   int    // entry position in the sidecar sequence
	Pattern string // the offending filename pattern
	Err     error
}

// String returns a log-friendly description of the dropped rule.
func (w Warning) String() string {
	return fmt.Sprintf("rule %d dropped: pattern %q: %v", w.Index, w.Pattern, w.Err)
}
