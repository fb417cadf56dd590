package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIGenerator implements Generator using the official openai-go SDK
// (chat completions).
type OpenAIGenerator struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIGenerator creates an OpenAI-backed generator.
func NewOpenAIGenerator(settings Settings) (*OpenAIGenerator, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	model := settings.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	return &OpenAIGenerator{model: model, opts: opts}, nil
}

// Name returns the backend identifier.
func (o *OpenAIGenerator) Name() string {
	return "openai"
}

// Generate produces text for the given prompt via the chat completions API.
func (o *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
