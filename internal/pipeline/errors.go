package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-match/internal/embedding"
	"github.com/jonathan/resume-match/internal/llm"
)

// Stage identifies the pipeline stage that produced a failure.
type Stage string

// Pipeline stages, in execution order.
const (
	StageExtract   Stage = "extraction"
	StageParse     Stage = "parsing"
	StageEmbed     Stage = "embedding"
	StageRank      Stage = "ranking"
	StageSummarize Stage = "summarization"
)

// StageError tags a failure with the stage that produced it. The underlying
// error is propagated verbatim; no stage ever returns a partial result.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsCanceled reports whether the failure came from the caller giving up,
// as opposed to a timeout or a service failure. Retry logic treats these
// differently: a canceled call must not be retried.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeout reports whether the failure came from the upstream call
// exceeding its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Retryable reports whether a fresh attempt could plausibly succeed.
// Transient upstream failures and timeouts qualify; cancellation, bad
// input, and schema violations do not. The pipeline itself never
// retries; this classification is for callers that do.
func Retryable(err error) bool {
	if IsCanceled(err) {
		return false
	}
	if IsTimeout(err) {
		return true
	}

	var upstreamErr *llm.UpstreamError
	var embedSvcErr *embedding.ServiceError
	return errors.As(err, &upstreamErr) || errors.As(err, &embedSvcErr)
}
