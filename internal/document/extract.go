// Package document converts raw resume documents (PDF, DOC, DOCX) into
// normalized plain text. Extraction is a pure transform of bytes to text;
// it performs no I/O beyond reading the supplied buffer.
package document

import (
	"unicode/utf8"

	"github.com/jonathan/resume-match/internal/types"
)

// MinReadableLength is the readability gate: normalized text shorter than
// this is treated as an extraction failure rather than a degenerate success.
const MinReadableLength = 10

// Extract converts a document into normalized text. The format is taken
// from the document's declared tag, falling back to the filename extension.
// Failures are typed: *UnsupportedFormatError, *ExtractionError,
// *LegacyFormatError, or *UnreadableError.
func Extract(doc types.Document) (*types.ExtractedText, error) {
	format, ok := doc.ResolveFormat()
	if !ok {
		return nil, &UnsupportedFormatError{Extension: string(format)}
	}

	var (
		raw string
		err error
	)
	switch format {
	case types.FormatPDF:
		raw, err = extractPDF(doc.Data)
	case types.FormatDOC, types.FormatDOCX:
		raw, err = extractWord(doc.Data, format)
	}
	if err != nil {
		return nil, err
	}

	text := Normalize(raw)
	// Character counts are runes, not bytes, so multi-byte names and
	// accented text are measured the way a reader would count them.
	runes := utf8.RuneCountInString(text)
	if runes < MinReadableLength {
		return nil, &UnreadableError{Length: runes}
	}

	return &types.ExtractedText{
		Text:           text,
		CharacterCount: runes,
		Format:         format,
	}, nil
}
