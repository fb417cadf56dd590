package search

import (
	"context"
	"errors"
	"testing"
)

func TestProviderFactoryCreatesMock(t *testing.T) {
	factory := NewProviderFactory()

	provider, err := factory.CreateProvider(ProviderTypeMock, nil)
	if err != nil {
		t.Fatalf("Failed to create mock provider: %v", err)
	}
	if provider.Name() != "Mock" {
		t.Errorf("Expected provider name 'Mock', got %s", provider.Name())
	}
}

func TestProviderFactoryGoogleRequiresCredentials(t *testing.T) {
	factory := NewProviderFactory()

	_, err := factory.CreateProvider(ProviderTypeGoogle, map[string]string{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}

	_, err = factory.CreateProvider(ProviderTypeGoogle, map[string]string{"api_key": "key"})
	if !errors.Is(err, ErrMissingSearchID) {
		t.Errorf("Expected ErrMissingSearchID, got %v", err)
	}
}

func TestProviderFactoryUnsupportedType(t *testing.T) {
	factory := NewProviderFactory()

	_, err := factory.CreateProvider(ProviderType("bing"), nil)
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("Expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestMockProviderLimitsResults(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "test query", Config{MaxResults: 2})
	if err != nil {
		t.Fatalf("Mock search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestMockProviderError(t *testing.T) {
	provider := NewMockProvider()
	provider.SetError(ErrProviderUnavailable)

	_, err := provider.Search(context.Background(), "test query", Config{MaxResults: 5})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestExtractFinalURL(t *testing.T) {
	provider := NewDuckDuckGoProvider()

	cases := []struct {
		raw  string
		want string
	}{
		{"/l/?uddg=https%3A%2F%2Fexample.com%2Fpost&rut=abc", "https://example.com/post"},
		{"https://example.org/direct", "https://example.org/direct"},
		{"javascript:void(0)", ""},
	}

	for _, tc := range cases {
		if got := provider.extractFinalURL(tc.raw); got != tc.want {
			t.Errorf("extractFinalURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	if got := extractDomain("https://www.example.com/path"); got != "example.com" {
		t.Errorf("Expected domain 'example.com', got %s", got)
	}
}
