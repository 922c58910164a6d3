package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/document"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/types"
)

var (
	extractFile    string
	extractVerbose bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text from a resume document",
	Long:  `Extract and normalize the text content of a PDF or Word resume. The result is printed to stdout.`,
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to the resume document (required)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted summary instead of raw text")
	_ = extractCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(extractCmd)
}

// readDocument loads a file from disk as an extraction input. The format
// is resolved from the file extension.
func readDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return types.Document{Data: data, Filename: filepath.Base(path)}, nil
}

func runExtract(_ *cobra.Command, _ []string) error {
	doc, err := readDocument(extractFile)
	if err != nil {
		return err
	}

	extracted, err := document.Extract(doc)
	if err != nil {
		return err
	}

	if extractVerbose {
		observability.NewPrinter(os.Stdout).PrintExtractedText(extracted)
		return nil
	}

	fmt.Println(extracted.Text)
	return nil
}
