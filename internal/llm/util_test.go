package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"generic fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"conversational wrapper preserved", `Sure! Here is the JSON: {"a": 1}`, `Sure! Here is the JSON: {"a": 1}`},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultOpenAIConfig()
	assert.Equal(t, "gpt-3.5-turbo", cfg.GetModel(TierStandard))

	// Unknown tier falls back to standard.
	assert.Equal(t, "gpt-3.5-turbo", cfg.GetModel(ModelTier("advanced")))

	empty := &Config{Provider: ProviderOpenAI}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(DefaultOpenAIConfig(), "")
	var confErr *ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

func TestConfigWithModel(t *testing.T) {
	base := DefaultOpenAIConfig()
	custom := base.WithModel(TierStandard, "gpt-4o-mini")

	assert.Equal(t, "gpt-4o-mini", custom.GetModel(TierStandard))
	assert.Equal(t, "gpt-3.5-turbo", base.GetModel(TierStandard), "original config unchanged")
}
