package document

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// UnsupportedFormatError indicates the document format is not one the
// extractor handles. The message names the attempted extension and the
// supported set because the caller UI renders it directly.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	exts := make([]string, 0, len(types.SupportedFormats()))
	for _, f := range types.SupportedFormats() {
		exts = append(exts, "."+string(f))
	}
	return fmt.Sprintf("unsupported file type: .%s. Supported formats: PDF (.pdf), Word (%s)",
		e.Extension, strings.Join(exts[1:], ", "))
}

// ExtractionError indicates extraction ran for a valid format but failed.
// The format is recorded so PDF failures are never reported in Word terms
// and vice versa.
type ExtractionError struct {
	Format  types.Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// LegacyFormatError indicates a legacy binary .doc file could not be read.
// Old .doc files fail at a much higher rate than .docx, so the caller gets
// an explicit remediation hint instead of a generic extraction failure.
type LegacyFormatError struct {
	Cause error
}

func (e *LegacyFormatError) Error() string {
	return "unable to process this .doc file. Some older .doc formats may not be supported. " +
		"Please try converting to PDF or .docx format"
}

func (e *LegacyFormatError) Unwrap() error {
	return e.Cause
}

// UnreadableError indicates extraction completed but produced nothing
// usable: the normalized text was empty or below the readability minimum.
type UnreadableError struct {
	Length int
}

func (e *UnreadableError) Error() string {
	return "could not extract readable text from the document. " +
		"The file may be empty, corrupted, image-based, or password protected"
}
