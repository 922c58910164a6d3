// Package embedding generates fixed-length vector representations of text
// via an external embedding service.
package embedding

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-match/internal/types"
)

// Embedder generates embedding vectors for a batch of texts in one call.
// Implementations must preserve input order: one vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([]types.Vector, error)
}

// ServiceError indicates a transport or service-side failure from the
// embedding service. The upstream message is carried verbatim; there are
// no silent partial results.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding generation failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ConfigurationError indicates the embedding service credential is absent.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}
