// Package parsing converts free-form resume text into a structured Profile
// using LLM extraction against a fixed schema.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/prompts"
	"github.com/jonathan/resume-match/internal/types"
)

// Parser extracts structured profiles from resume text. It holds no mutable
// state; concurrent Parse calls are isolated.
type Parser struct {
	client llm.Client
}

// New creates a Parser backed by the given text-generation client.
func New(client llm.Client) *Parser {
	return &Parser{client: client}
}

// Parse issues a single extraction request and strictly decodes the
// response as JSON. A response that is not a bare JSON document — including
// one wrapped in conversational text — fails with *SchemaViolationError
// carrying the raw output. No partial recovery is attempted.
//
// Field-level schema validation beyond a successful decode is the caller's
// concern; compose it with the schemas package when needed.
func (p *Parser) Parse(ctx context.Context, resumeText string) (*types.Profile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &EmptyInputError{}
	}

	system := prompts.MustGet("parsing.json", "resume-system")
	prompt := prompts.Format(prompts.MustGet("parsing.json", "resume-extract"), map[string]string{
		"ResumeText": resumeText,
	})

	raw, err := p.client.GenerateJSON(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var profile types.Profile
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &profile); err != nil {
		return nil, &SchemaViolationError{RawOutput: raw, Cause: err}
	}

	// Decoding normalizes absent arrays to empty slices; this keeps the
	// invariant for profiles built through other paths too.
	profile.EnsureArrays()
	return &profile, nil
}
