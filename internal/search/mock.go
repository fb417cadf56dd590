package search

import (
	"context"
)

// MockProvider implements Provider for testing purposes.
type MockProvider struct {
	name    string
	results []Result
	err     error
}

// NewMockProvider creates a new mock search provider with a small set of
// canned results.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []Result{
			{
				URL:     "https://example.edu/research/article1",
				Title:   "Research Study on the Topic",
				Snippet: "This is a mock search result used in tests. Studies show that adoption is growing rapidly across industries.",
				Domain:  "example.edu",
				Source:  "Mock",
				Rank:    1,
			},
			{
				URL:     "https://news.example.com/article2",
				Title:   "Latest Analysis and Trends",
				Snippet: "Another mock result. According to recent surveys, 75% of organizations report measurable improvements.",
				Domain:  "news.example.com",
				Source:  "Mock",
				Rank:    2,
			},
			{
				URL:     "https://blog.example.net/article3",
				Title:   "A Practical Overview",
				Snippet: "Third mock result to simulate multiple search results with varied content and perspectives.",
				Domain:  "blog.example.net",
				Source:  "Mock",
				Rank:    3,
			},
		},
	}
}

// Name returns the name of this provider.
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns the configured mock results, or the configured error.
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	if m.err != nil {
		return nil, m.err
	}

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	results := make([]Result, maxResults)
	copy(results, m.results[:maxResults])
	return results, nil
}

// SetResults allows customization of mock results for testing.
func (m *MockProvider) SetResults(results []Result) {
	m.results = results
}

// SetError makes every subsequent Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.err = err
}
