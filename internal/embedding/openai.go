package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jonathan/resume-match/internal/types"
)

// DefaultModel is the embedding model matching the vectors already stored
// for the candidate corpus. Changing it invalidates stored embeddings.
const DefaultModel = "text-embedding-ada-002"

// OpenAIEmbedder calls the OpenAI embeddings endpoint. One invocation is
// one network call, batched across all input texts.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder. The key is required; its absence
// is a configuration error, not a service failure.
func NewOpenAIEmbedder(apiKey, model string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "OpenAI API key is required"}
	}
	if model == "" {
		model = DefaultModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEmbedder{client: &client, model: model}, nil
}

// Embed returns one vector per input text, in input order. An empty input
// is rejected before any network call: callers that chunked their text are
// responsible for falling back to the original text first.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([]types.Vector, error) {
	if len(texts) == 0 {
		return nil, &ServiceError{Message: "no texts to embed"}
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, &ServiceError{Message: "embeddings request failed", Cause: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &ServiceError{
			Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Data)),
		}
	}

	// The API tags each embedding with its input index; place by index so
	// the output order matches the input order regardless of wire order.
	vectors := make([]types.Vector, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, &ServiceError{
				Message: fmt.Sprintf("embedding index %d out of range", d.Index),
			}
		}
		vectors[d.Index] = types.Vector{Values: d.Embedding, Model: resp.Model}
	}
	return vectors, nil
}
