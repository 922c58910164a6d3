// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via environment variables or CLI flags.
type Config struct {
	// Keys
	OpenAIAPIKey string `json:"openai_api_key,omitempty"` // OpenAI API key (parsing + embeddings)
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key (alternative text provider)

	// Behavior
	Provider    string `json:"provider,omitempty"`    // Text-generation provider: "openai" or "gemini"
	Aggregation string `json:"aggregation,omitempty"` // Chunk vector aggregation: "first" or "mean"
	Verbose     bool   `json:"verbose,omitempty"`     // Print detailed debug information

	// Chunking
	ChunkSize    int `json:"chunk_size,omitempty"`    // Words per chunk
	ChunkOverlap int `json:"chunk_overlap,omitempty"` // Words shared between adjacent chunks

	// Server
	Port        string `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Limits
	UpstreamTimeoutSeconds int `json:"upstream_timeout_seconds,omitempty"` // Per-call AI service timeout
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. File values take
// precedence when merged; env fills the gaps.
func FromEnv() Config {
	cfg := Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Provider:     os.Getenv("LLM_PROVIDER"),
		Aggregation:  os.Getenv("EMBEDDING_AGGREGATION"),
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UpstreamTimeoutSeconds = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: required-field checks happen after merging, at the point of use.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("config error: unknown provider %q (want \"openai\" or \"gemini\")", c.Provider)
	}

	switch c.Aggregation {
	case "", "first", "mean":
	default:
		return fmt.Errorf("config error: unknown aggregation %q (want \"first\" or \"mean\")", c.Aggregation)
	}

	if c.ChunkSize < 0 {
		return fmt.Errorf("config error: 'chunk_size' must be non-negative")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("config error: 'chunk_overlap' must be non-negative")
	}
	if c.ChunkSize > 0 && c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("config error: 'chunk_overlap' must be smaller than 'chunk_size'")
	}
	if c.UpstreamTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'upstream_timeout_seconds' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. File values act as defaults for env, and env for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Aggregation == "" {
		result.Aggregation = defaults.Aggregation
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.ChunkSize == 0 {
		result.ChunkSize = defaults.ChunkSize
	}
	if result.ChunkOverlap == 0 {
		result.ChunkOverlap = defaults.ChunkOverlap
	}
	if result.UpstreamTimeoutSeconds == 0 {
		result.UpstreamTimeoutSeconds = defaults.UpstreamTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
