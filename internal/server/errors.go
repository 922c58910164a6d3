// Package server provides the HTTP REST API for resume ingestion and
// semantic matching.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-match/internal/document"
	"github.com/jonathan/resume-match/internal/embedding"
	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/parsing"
	"github.com/jonathan/resume-match/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a referenced resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Pipeline errors arrive wrapped in stage errors, so matching walks the
// chain rather than switching on the top-level type.
func HTTPStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		unsupportedErr *document.UnsupportedFormatError
		emptyInputErr  *parsing.EmptyInputError
		extractionErr  *document.ExtractionError
		legacyErr      *document.LegacyFormatError
		unreadableErr  *document.UnreadableError
		upstreamErr    *llm.UpstreamError
		embedSvcErr    *embedding.ServiceError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &unsupportedErr),
		errors.As(err, &emptyInputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &extractionErr),
		errors.As(err, &legacyErr),
		errors.As(err, &unreadableErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr),
		errors.As(err, &embedSvcErr):
		return http.StatusBadGateway
	default:
		// SchemaViolationError and ConfigurationError land here: the
		// request was fine, the system failed to honor it.
		return http.StatusInternalServerError
	}
}
