package llm

import "fmt"

// ConfigurationError indicates a required credential or setting is absent.
// It is deliberately distinct from an upstream service failure so operators
// fix configuration instead of assuming a transient outage.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// UpstreamError indicates a network or service-level failure calling the
// text-generation service. Always retryable by the caller.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI service error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
