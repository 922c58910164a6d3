package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/types"
)

// buildDocx assembles a minimal .docx archive containing the given
// paragraphs, one run per paragraph.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<p><r><t>%s</t></r></p>`, p)
	}
	body.WriteString(`</body></document>`)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	data := buildDocx(t, "Jane Doe", "Senior Backend Engineer with 8 years of Go experience .")

	result, err := Extract(types.Document{Data: data, Format: types.FormatDOCX})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe Senior Backend Engineer with 8 years of Go experience.", result.Text)
	assert.Equal(t, len(result.Text), result.CharacterCount)
	assert.Equal(t, types.FormatDOCX, result.Format)
}

func TestExtractFormatFromFilename(t *testing.T) {
	data := buildDocx(t, "Experienced data engineer based in Toronto")

	result, err := Extract(types.Document{Data: data, Filename: "Resume.DOCX"})
	require.NoError(t, err)
	assert.Equal(t, types.FormatDOCX, result.Format)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	tests := []struct {
		name    string
		doc     types.Document
		wantExt string
	}{
		{"unknown extension", types.Document{Filename: "resume.xyz"}, "xyz"},
		{"no filename or format", types.Document{}, "unknown"},
		{"unsupported declared format", types.Document{Format: "rtf"}, "rtf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.doc)
			var unsupported *UnsupportedFormatError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.wantExt, unsupported.Extension)
			assert.Contains(t, err.Error(), "."+tt.wantExt)
			assert.Contains(t, err.Error(), ".pdf")
		})
	}
}

func TestExtractLegacyDoc(t *testing.T) {
	// A real legacy .doc is an OLE compound file, not a ZIP archive.
	legacy := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00, 0x00}

	_, err := Extract(types.Document{Data: legacy, Format: types.FormatDOC})
	var legacyErr *LegacyFormatError
	require.ErrorAs(t, err, &legacyErr)
	assert.Contains(t, err.Error(), "converting to PDF or .docx")
}

func TestExtractDocThatIsActuallyDocx(t *testing.T) {
	// Files renamed from .docx to .doc still open as ZIP archives.
	data := buildDocx(t, "Software developer with a focus on distributed systems")

	result, err := Extract(types.Document{Data: data, Format: types.FormatDOC})
	require.NoError(t, err)
	assert.Equal(t, types.FormatDOC, result.Format)
	assert.Contains(t, result.Text, "distributed systems")
}

// buildPDF assembles a minimal single-page PDF whose content stream
// draws the given text. Object offsets are measured while writing so
// the xref table is exact.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestExtractUnreadablePDF(t *testing.T) {
	// A well-formed PDF whose entire body is three characters. Parsing
	// succeeds but the result is too short to be a resume.
	data := buildPDF(t, "abc")

	_, err := Extract(types.Document{Data: data, Format: types.FormatPDF})
	var unreadable *UnreadableError
	require.ErrorAs(t, err, &unreadable)
	assert.LessOrEqual(t, unreadable.Length, 3)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract(types.Document{Data: []byte("not a pdf at all"), Format: types.FormatPDF})
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, types.FormatPDF, extractionErr.Format)
	assert.Contains(t, err.Error(), "PDF")
	assert.NotContains(t, err.Error(), "Word")
}

func TestExtractReadabilityGate(t *testing.T) {
	// Extraction succeeds but yields fewer than 10 characters; this is a
	// failure, not a degenerate success.
	data := buildDocx(t, "abc")

	_, err := Extract(types.Document{Data: data, Format: types.FormatDOCX})
	var unreadable *UnreadableError
	require.ErrorAs(t, err, &unreadable)
	assert.Equal(t, 3, unreadable.Length)
}

func TestExtractReadabilityGateCountsRunes(t *testing.T) {
	// Nine accented characters span seventeen bytes; the gate measures
	// characters, so this is still unreadable.
	data := buildDocx(t, "àéîõü çñå")

	_, err := Extract(types.Document{Data: data, Format: types.FormatDOCX})
	var unreadable *UnreadableError
	require.ErrorAs(t, err, &unreadable)
	assert.Equal(t, 9, unreadable.Length)
}

func TestExtractCharacterCountIsRunes(t *testing.T) {
	data := buildDocx(t, "Zoë Müller, Señor Gopher")

	result, err := Extract(types.Document{Data: data, Format: types.FormatDOCX})
	require.NoError(t, err)
	assert.Equal(t, utf8.RuneCountInString(result.Text), result.CharacterCount)
	assert.Less(t, result.CharacterCount, len(result.Text))
}

func TestExtractEmptyDocx(t *testing.T) {
	data := buildDocx(t)

	_, err := Extract(types.Document{Data: data, Format: types.FormatDOCX})
	var unreadable *UnreadableError
	require.ErrorAs(t, err, &unreadable)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses whitespace runs", "a  b\t\tc\n\nd", "a b c d"},
		{"removes space before period", "end of sentence .", "end of sentence."},
		{"removes space before comma", "first , second", "first, second"},
		{"trims leading and trailing", "  padded  ", "padded"},
		{"empty input", "", ""},
		{"whitespace only", " \n\t ", ""},
		{"combined artifacts", "  Go ,  Python ,  SQL .  ", "Go, Python, SQL."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
