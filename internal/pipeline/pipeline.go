// Package pipeline orchestrates document extraction, structured parsing,
// embedding generation, and similarity ranking. It is the only package
// aware of the full stage sequence; each stage's output feeds the next and
// a failure at any stage aborts the invocation with that stage's error.
//
// Every invocation is stateless and one-shot: the Pipeline holds only
// immutable collaborators, so concurrent invocations are naturally
// isolated.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-match/internal/chunker"
	"github.com/jonathan/resume-match/internal/document"
	"github.com/jonathan/resume-match/internal/embedding"
	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/parsing"
	"github.com/jonathan/resume-match/internal/prompts"
	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
)

// DefaultUpstreamTimeout bounds a single embedding or text-generation call.
// Callers apply it with context.WithTimeout around pipeline operations.
const DefaultUpstreamTimeout = 90 * time.Second

// Pipeline wires the stages together. Construct once at process start and
// reuse across calls.
type Pipeline struct {
	client      llm.Client
	parser      *parsing.Parser
	embedder    embedding.Embedder
	chunks      *chunker.Chunker
	aggregation embedding.Aggregation
	strict      bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChunker overrides the default 500/50 chunk geometry.
func WithChunker(c *chunker.Chunker) Option {
	return func(p *Pipeline) { p.chunks = c }
}

// WithAggregation selects how multiple chunk vectors collapse into the
// document's representative vector. Default is first-chunk.
func WithAggregation(a embedding.Aggregation) Option {
	return func(p *Pipeline) { p.aggregation = a }
}

// WithStrictValidation enables field-level JSON Schema validation of parsed
// profiles on top of the parser's strict decode.
func WithStrictValidation() Option {
	return func(p *Pipeline) { p.strict = true }
}

// New creates a Pipeline from its two external collaborators.
func New(client llm.Client, embedder embedding.Embedder, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:      client,
		parser:      parsing.New(client),
		embedder:    embedder,
		chunks:      chunker.Default(),
		aggregation: embedding.AggregateFirst,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract converts a raw document into normalized text. Extraction is
// local and CPU-bound; no network calls.
func (p *Pipeline) Extract(doc types.Document) (*types.ExtractedText, error) {
	extracted, err := document.Extract(doc)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}
	return extracted, nil
}

// Ingest runs extraction then structured parsing. A failure at either
// stage aborts with that stage's error; a partial profile is never
// returned.
func (p *Pipeline) Ingest(ctx context.Context, doc types.Document) (*types.Profile, error) {
	extracted, err := p.Extract(doc)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, extracted.Text)
}

// Parse converts resume text into a structured profile.
func (p *Pipeline) Parse(ctx context.Context, resumeText string) (*types.Profile, error) {
	profile, err := p.parser.Parse(ctx, resumeText)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	if p.strict {
		if err := schemas.ValidateProfile(profile); err != nil {
			return nil, &StageError{Stage: StageParse, Err: err}
		}
	}
	return profile, nil
}

// Embed chunks the text, requests embeddings for all chunks in one batched
// call, and collapses them into a single representative vector using the
// configured aggregation policy. When chunking yields nothing — whitespace
// input — the original text is embedded instead; an embedding request is
// never issued with zero inputs.
func (p *Pipeline) Embed(ctx context.Context, text string) (types.Vector, error) {
	texts := chunker.Texts(p.chunks.Chunk(text))
	if len(texts) == 0 {
		texts = []string{text}
	}

	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return types.Vector{}, &StageError{Stage: StageEmbed, Err: err}
	}

	vector, err := embedding.Aggregate(vectors, p.aggregation)
	if err != nil {
		return types.Vector{}, &StageError{Stage: StageEmbed, Err: err}
	}
	return vector, nil
}

// Search embeds the query text and ranks the candidates against it,
// keeping results strictly above the semantic-search threshold.
func (p *Pipeline) Search(ctx context.Context, queryText string, candidates []types.Candidate) ([]types.MatchResult, error) {
	return p.match(ctx, queryText, candidates, matching.SearchOptions())
}

// MatchTopN embeds the resume text and returns the best n candidates with
// no score threshold. The caller owns persisting the result set as the
// user's current recommendations.
func (p *Pipeline) MatchTopN(ctx context.Context, resumeText string, candidates []types.Candidate, n int) ([]types.MatchResult, error) {
	return p.match(ctx, resumeText, candidates, matching.TopNOptions(n))
}

func (p *Pipeline) match(ctx context.Context, queryText string, candidates []types.Candidate, opts matching.Options) ([]types.MatchResult, error) {
	query, err := p.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}

	results, err := matching.Rank(query, candidates, opts)
	if err != nil {
		return nil, &StageError{Stage: StageRank, Err: err}
	}
	return results, nil
}

// Summarize condenses a career-related article into a short paragraph via
// one text-generation call.
func (p *Pipeline) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", &StageError{Stage: StageSummarize, Err: &parsing.EmptyInputError{}}
	}

	system := prompts.MustGet("summarize.json", "career-article")
	summary, err := p.client.GenerateContent(ctx, system, content, llm.TierLite)
	if err != nil {
		return "", &StageError{Stage: StageSummarize, Err: err}
	}
	return strings.TrimSpace(summary), nil
}
