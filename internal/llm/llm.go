// Package llm provides optional text-generation backends for pipeline
// stages. Every stage synthesizes text from deterministic templates by
// default; a Generator, when configured, can be attached behind the
// same stage contract to replace a template path with a model call.
package llm

import (
	"context"
	"errors"
)

// ErrUnsupportedBackend is returned for an unrecognized provider name.
var ErrUnsupportedBackend = errors.New("unsupported generation backend")

// Generator abstracts a text-generation model call.
type Generator interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the backend identifier (e.g. "gemini", "openai").
	Name() string
}

// Settings holds the configuration shared by all generator backends.
type Settings struct {
	Provider string // "gemini" or "openai"; empty disables generation
	Model    string
	APIKey   string
	BaseURL  string // Optional override, OpenAI-compatible endpoints only
}

// NewGenerator creates the generator selected by settings, or nil when
// no provider is configured. A nil Generator is valid: stages fall back
// to their template renderers.
func NewGenerator(settings Settings) (Generator, error) {
	switch settings.Provider {
	case "":
		return nil, nil
	case "gemini":
		return NewGeminiGenerator(settings)
	case "openai":
		return NewOpenAIGenerator(settings)
	default:
		return nil, ErrUnsupportedBackend
	}
}
