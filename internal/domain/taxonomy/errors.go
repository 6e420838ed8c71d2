package taxonomy

import "fmt"

// ValidationError reports an unrecognized enumerant on an import record or
// create request. It is raised before any write happens.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// ParseError reports malformed import input. The whole import is rejected
// with zero writes.
type ParseError struct {
	Stream string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Stream, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ImportError reports a write failure mid-import. Record names the diagnosis
// that failed; progress up to the last committed batch is retained and the
// import can be re-run to resume.
type ImportError struct {
	Record string
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import record %q: %v", e.Record, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
