package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/pipeline"
	"github.com/jonathan/resume-match/internal/types"
)

var (
	ingestConfigPath string
	ingestFile       string
	ingestStrict     bool
	ingestVerbose    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract and parse a resume into a structured profile",
	Long:  `Run the ingestion pipeline on a resume document: text extraction followed by LLM parsing. The structured profile is printed as JSON.`,
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file")
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to the resume document (required)")
	ingestCmd.Flags().BoolVar(&ingestStrict, "strict", false, "Validate the parsed profile against the profile schema")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print a formatted profile summary")
	_ = ingestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(ingestConfigPath)
	if err != nil {
		return err
	}

	doc, err := readDocument(ingestFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var opts []pipeline.Option
	if ingestStrict {
		opts = append(opts, pipeline.WithStrictValidation())
	}

	matcher, client, err := buildMatcher(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer client.Close()

	timeout := pipeline.DefaultUpstreamTimeout
	if cfg.UpstreamTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
	}

	var profile *types.Profile
	err = withRetry(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var ingestErr error
		profile, ingestErr = matcher.Ingest(callCtx, doc)
		return ingestErr
	})
	if err != nil {
		return err
	}

	if ingestVerbose {
		observability.NewPrinter(os.Stdout).PrintProfile(profile)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(profile)
}
