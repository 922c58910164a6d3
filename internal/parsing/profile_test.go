package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/llm"
)

// mockClient is a test double for llm.Client that records the request and
// returns a canned response.
type mockClient struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (m *mockClient) GenerateContent(_ context.Context, system, prompt string, _ llm.ModelTier) (string, error) {
	m.lastSystem, m.lastPrompt = system, prompt
	return m.response, m.err
}

func (m *mockClient) GenerateJSON(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	return m.GenerateContent(ctx, system, prompt, tier)
}

func (m *mockClient) Close() error { return nil }

func TestParseValidResponse(t *testing.T) {
	client := &mockClient{response: `{
		"location": "Berlin, Germany",
		"bio": "Backend engineer focused on data platforms.",
		"skills": ["Go", "PostgreSQL"],
		"education": [{"degree": "BSc Computer Science", "institution": "TU Berlin", "startYear": "2012", "endYear": "2016"}],
		"experience": [{"role": "Backend Engineer", "company": "Acme", "startYear": "2016", "endYear": "Present", "expDescription": "Built ingestion pipelines."}]
	}`}

	profile, err := New(client).Parse(context.Background(), "Experienced backend engineer...")
	require.NoError(t, err)

	assert.Equal(t, "Berlin, Germany", profile.Location)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Present", profile.Experience[0].EndYear)
	assert.Equal(t, "Built ingestion pipelines.", profile.Experience[0].Description)

	// The request carries the schema and the resume text.
	assert.Contains(t, client.lastSystem, "valid JSON object")
	assert.Contains(t, client.lastPrompt, "Experienced backend engineer...")
	assert.Contains(t, client.lastPrompt, "REQUIRED JSON SCHEMA")
}

func TestParseConversationalWrapperIsSchemaViolation(t *testing.T) {
	raw := `Sure! Here is the JSON: {"location": "NYC", "bio": "", "skills": [], "education": [], "experience": []}`
	client := &mockClient{response: raw}

	_, err := New(client).Parse(context.Background(), "Experienced backend engineer...")

	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, raw, violation.RawOutput, "raw upstream output is retained for diagnosis")
}

func TestParseMissingArraysAreNormalized(t *testing.T) {
	client := &mockClient{response: `{"location": "Remote", "bio": "Short bio"}`}

	profile, err := New(client).Parse(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Experience)
	assert.Empty(t, profile.Skills)
}

func TestParseEmptyInput(t *testing.T) {
	client := &mockClient{response: "{}"}

	_, err := New(client).Parse(context.Background(), "   \n ")
	var empty *EmptyInputError
	assert.ErrorAs(t, err, &empty)
}

func TestParseUpstreamErrorPropagates(t *testing.T) {
	upstream := &llm.UpstreamError{Message: "rate limited", Cause: errors.New("429")}
	client := &mockClient{err: upstream}

	_, err := New(client).Parse(context.Background(), "resume text")

	var upErr *llm.UpstreamError
	require.ErrorAs(t, err, &upErr)
	// Never a partial profile on failure.
	assert.Contains(t, err.Error(), "rate limited")
}

func TestParseTruncatedJSONIsSchemaViolation(t *testing.T) {
	client := &mockClient{response: `{"location": "NYC", "skills": ["Go"`}

	_, err := New(client).Parse(context.Background(), "resume text")
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.NotEmpty(t, violation.RawOutput)
}
