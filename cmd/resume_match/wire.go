package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-match/internal/chunker"
	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/embedding"
	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/pipeline"
)

// resolveConfig merges the optional config file over environment values
// and validates the result. File values win; env fills the gaps.
func resolveConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildMatcher constructs the LLM client, embedder, and pipeline from
// configuration. The returned client must be closed by the caller.
func buildMatcher(ctx context.Context, cfg config.Config, extra ...pipeline.Option) (*pipeline.Pipeline, llm.Client, error) {
	var llmCfg *llm.Config
	var apiKey string
	switch cfg.Provider {
	case "gemini":
		llmCfg = llm.DefaultGeminiConfig()
		apiKey = cfg.GeminiAPIKey
	default:
		llmCfg = llm.DefaultOpenAIConfig()
		apiKey = cfg.OpenAIAPIKey
	}

	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := embedding.NewOpenAIEmbedder(cfg.OpenAIAPIKey, "")
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	var opts []pipeline.Option
	if cfg.ChunkSize > 0 {
		overlap := cfg.ChunkOverlap
		c, err := chunker.New(cfg.ChunkSize, overlap)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		opts = append(opts, pipeline.WithChunker(c))
	}
	if cfg.Aggregation != "" {
		opts = append(opts, pipeline.WithAggregation(embedding.Aggregation(cfg.Aggregation)))
	}
	opts = append(opts, extra...)

	return pipeline.New(client, embedder, opts...), client, nil
}
