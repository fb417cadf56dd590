package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"contentforge/internal/logger"
)

// GoogleProvider implements Provider using the Google Custom Search API.
type GoogleProvider struct {
	apiKey    string
	searchID  string
	client    *http.Client
	rateLimit time.Duration
	lastCall  time.Time
}

// NewGoogleProvider creates a new Google Custom Search provider.
func NewGoogleProvider(apiKey, searchID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:    apiKey,
		searchID:  searchID,
		client:    &http.Client{Timeout: 10 * time.Second},
		rateLimit: 100 * time.Millisecond,
	}
}

// Name returns the name of this provider.
func (g *GoogleProvider) Name() string {
	return "Google Custom Search"
}

// Search performs a search using the Google Custom Search API.
func (g *GoogleProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	if elapsed := time.Since(g.lastCall); elapsed < g.rateLimit {
		time.Sleep(g.rateLimit - elapsed)
	}
	g.lastCall = time.Now()

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > 10 {
		maxResults = 10 // Google CSE allows max 10 results per request
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.searchID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))
	if config.Language != "" {
		params.Set("lr", "lang_"+config.Language)
	}

	fullURL := "https://www.googleapis.com/customsearch/v1?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google CSE request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Google CSE request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google CSE request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Google CSE response: %w", err)
	}

	if apiResponse.Error.Code != 0 {
		return nil, fmt.Errorf("google CSE API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	var results []Result
	for i, item := range apiResponse.Items {
		results = append(results, Result{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Domain:  extractDomain(item.Link),
			Source:  "Google",
			Rank:    i + 1,
		})
	}

	logger.Debug("Google CSE search completed", "query", query, "results_found", len(results))

	return results, nil
}
