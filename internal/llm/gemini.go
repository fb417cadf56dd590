package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements Generator using the Google Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(settings Settings) (*GeminiGenerator, error) {
	if settings.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	model := settings.Model
	if model == "" {
		model = "gemini-1.5-flash-latest"
	}
	return &GeminiGenerator{apiKey: settings.APIKey, model: model}, nil
}

// Name returns the backend identifier.
func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// Generate produces text for the given prompt via the Gemini API.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", errors.New("gemini returned no text parts")
	}
	return out, nil
}
