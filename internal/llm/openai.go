package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client using the official OpenAI SDK.
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "OpenAI API key is required"}
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: &client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier.
func (c *OpenAIClient) GenerateContent(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, system, prompt, tier)
}

// GenerateJSON generates JSON content using the specified model tier. The
// JSON-only constraint comes from the system instruction; models still
// occasionally wrap output in markdown fences, which are stripped here.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, system, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) generate(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ConfigurationError{Message: "no model configured for tier " + string(tier)}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(modelName),
		Messages:    messages,
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", &UpstreamError{Message: "failed to generate content", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Close releases resources held by the client. The OpenAI SDK holds no
// long-lived connections that need explicit shutdown.
func (c *OpenAIClient) Close() error {
	return nil
}
