package types

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

// SupportedFormats lists the formats the extractor handles, in display order.
func SupportedFormats() []Format {
	return []Format{FormatPDF, FormatDOC, FormatDOCX}
}

// Document is a raw uploaded document. It exists only for the duration of a
// single extraction call and is never persisted by this module.
type Document struct {
	Data     []byte
	Format   Format // optional; derived from Filename when empty
	Filename string // optional
}

// ResolveFormat returns the declared format, falling back to the filename
// extension (case-insensitive). The second return is false when neither
// source yields a format; the first return then carries the raw extension
// that was attempted, for error reporting.
func (d Document) ResolveFormat() (Format, bool) {
	if d.Format != "" {
		f := Format(strings.ToLower(string(d.Format)))
		switch f {
		case FormatPDF, FormatDOC, FormatDOCX:
			return f, true
		}
		return f, false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(d.Filename), "."))
	if ext == "" {
		return "unknown", false
	}
	switch Format(ext) {
	case FormatPDF, FormatDOC, FormatDOCX:
		return Format(ext), true
	}
	return Format(ext), false
}

// ExtractedText is the result of a successful extraction: normalized UTF-8
// text, its character count, and the source format.
type ExtractedText struct {
	Text           string `json:"extractedText"`
	CharacterCount int    `json:"characterCount"`
	Format         Format `json:"fileType"`
}

// Chunk is a contiguous word-bounded segment of a larger text.
type Chunk struct {
	Text  string
	Index int
}
