package search

import (
	"context"
	"time"
)

// Provider defines the unified interface for search providers consumed
// by the research stage.
type Provider interface {
	// Search performs a search and returns up to Config.MaxResults results.
	Search(ctx context.Context, query string, config Config) ([]Result, error)

	// Name returns the name of the search provider.
	Name() string
}

// Config holds configuration for search requests.
type Config struct {
	MaxResults int           // Maximum number of results to return
	Timeout    time.Duration // Per-call budget; zero means the provider default
	Language   string        // Language preference (e.g., "en")
}

// Result represents a unified search result.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
	Source  string `json:"source"` // Provider-specific source identifier
	Rank    int    `json:"rank"`   // Position in search results
}

// ProviderType represents the type of search provider.
type ProviderType string

const (
	ProviderTypeDuckDuckGo ProviderType = "duckduckgo"
	ProviderTypeGoogle     ProviderType = "google"
	ProviderTypeMock       ProviderType = "mock"
)

// ProviderFactory creates search providers based on type and configuration.
type ProviderFactory struct{}

// NewProviderFactory creates a new provider factory.
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// CreateProvider creates a search provider of the specified type.
func (f *ProviderFactory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeDuckDuckGo:
		return NewDuckDuckGoProvider(), nil
	case ProviderTypeGoogle:
		apiKey, exists := config["api_key"]
		if !exists {
			return nil, ErrMissingAPIKey
		}
		searchID, exists := config["search_id"]
		if !exists {
			return nil, ErrMissingSearchID
		}
		return NewGoogleProvider(apiKey, searchID), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// AvailableProviders returns the list of supported provider types.
func (f *ProviderFactory) AvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeDuckDuckGo,
		ProviderTypeGoogle,
		ProviderTypeMock,
	}
}
