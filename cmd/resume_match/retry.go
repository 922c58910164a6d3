package main

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/resume-match/internal/pipeline"
)

const (
	retryAttempts = 3
	retryDelay    = 2 * time.Second
)

// withRetry runs fn up to retryAttempts times, backing off between
// attempts. Only transient failures are retried; bad input, schema
// violations, and cancellation fail immediately.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil || !pipeline.Retryable(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}

		log.Printf("attempt %d/%d failed: %v (retrying in %s)", attempt, retryAttempts, err, retryDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return err
}
