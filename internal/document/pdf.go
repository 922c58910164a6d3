package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-match/internal/types"
)

// extractPDF reads the embedded text layer of a PDF. Scanned or image-only
// PDFs parse successfully but yield no text; the readability gate in
// Extract catches those.
func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files instead of returning
	// an error.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{
				Format:  types.FormatPDF,
				Message: "failed to process PDF",
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{
			Format:  types.FormatPDF,
			Message: "failed to process PDF",
			Cause:   err,
		}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{
			Format:  types.FormatPDF,
			Message: "failed to process PDF",
			Cause:   err,
		}
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", &ExtractionError{
			Format:  types.FormatPDF,
			Message: "failed to read PDF text content",
			Cause:   err,
		}
	}
	return sb.String(), nil
}
