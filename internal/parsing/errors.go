package parsing

import "fmt"

// SchemaViolationError indicates the text-generation service returned
// something other than a single valid JSON document. The raw upstream text
// is retained for diagnosis; the parser never guesses or patches it into
// shape, because "fixing" model output risks fabricating data fields.
type SchemaViolationError struct {
	RawOutput string
	Cause     error
}

func (e *SchemaViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI parsing failed: received non-JSON output: %v", e.Cause)
	}
	return "AI parsing failed: received non-JSON output"
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}

// EmptyInputError indicates there was no resume text to parse.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no resume text provided for parsing"
}
