package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/document"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/pipeline"
	"github.com/jonathan/resume-match/internal/store"
	"github.com/jonathan/resume-match/internal/types"
)

var (
	matchConfigPath string
	matchFile       string
	matchUserID     string
	matchTopN       int
	matchVerbose    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against the stored job corpus",
	Long: `Extract a resume, embed it, and rank it against the job postings in the
database. With --user the ranked result replaces that user's current
recommendation set.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file")
	matchCmd.Flags().StringVarP(&matchFile, "file", "f", "", "Path to the resume document (required)")
	matchCmd.Flags().StringVarP(&matchUserID, "user", "u", "", "User ID to persist the recommendation set for")
	matchCmd.Flags().IntVarP(&matchTopN, "top", "n", 10, "Number of matches to return")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted match summary")
	_ = matchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(matchConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	doc, err := readDocument(matchFile)
	if err != nil {
		return err
	}

	extracted, err := document.Extract(doc)
	if err != nil {
		return err
	}

	ctx := context.Background()

	matcher, client, err := buildMatcher(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer client.Close()

	corpus, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer corpus.Close()

	jobs, err := corpus.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("the job corpus is empty; add postings before matching")
	}

	timeout := pipeline.DefaultUpstreamTimeout
	if cfg.UpstreamTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
	}

	var results []types.MatchResult
	err = withRetry(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var matchErr error
		results, matchErr = matcher.MatchTopN(callCtx, extracted.Text, store.JobCandidates(jobs), matchTopN)
		return matchErr
	})
	if err != nil {
		return err
	}

	if matchUserID != "" {
		if err := corpus.ReplaceRecommendations(ctx, matchUserID, results); err != nil {
			return err
		}
	}

	if matchVerbose {
		observability.NewPrinter(os.Stdout).PrintMatches(results)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
