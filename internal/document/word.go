package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"

	"github.com/jonathan/resume-match/internal/types"
)

// documentXML mirrors the subset of word/document.xml needed for text
// extraction: paragraphs, their runs, and the text elements inside runs.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// extractWord reads the text of a Word document. Modern .docx files are ZIP
// archives containing word/document.xml; some files labeled .doc are
// actually .docx in disguise and open fine. A true legacy binary .doc file
// fails the ZIP open and gets the remediation error instead of a generic
// failure.
func extractWord(data []byte, format types.Format) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if format == types.FormatDOC {
			return "", &LegacyFormatError{Cause: err}
		}
		return "", &ExtractionError{
			Format:  format,
			Message: "failed to process Word document",
			Cause:   err,
		}
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", &ExtractionError{
				Format:  format,
				Message: "failed to open Word document content",
				Cause:   err,
			}
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", &ExtractionError{
				Format:  format,
				Message: "failed to read Word document content",
				Cause:   err,
			}
		}
		return parseDocumentXML(content, format)
	}

	return "", &ExtractionError{
		Format:  format,
		Message: "Word document has no readable content part",
	}
}

// parseDocumentXML extracts the text runs from word/document.xml,
// separating paragraphs with newlines.
func parseDocumentXML(content []byte, format types.Format) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", &ExtractionError{
			Format:  format,
			Message: "failed to parse Word document content",
			Cause:   err,
		}
	}

	var sb bytes.Buffer
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				sb.WriteString(t.Content)
			}
		}
	}
	return sb.String(), nil
}
