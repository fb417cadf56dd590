package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"contentforge/internal/logger"
)

// DuckDuckGoProvider implements the Provider interface by scraping the
// DuckDuckGo HTML endpoint.
type DuckDuckGoProvider struct {
	client    *http.Client
	userAgent string
	rateLimit time.Duration
	lastCall  time.Time
}

// NewDuckDuckGoProvider creates a new DuckDuckGo search provider.
func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		rateLimit: 2 * time.Second, // Be respectful with rate limiting
	}
}

// Name returns the name of this provider.
func (d *DuckDuckGoProvider) Name() string {
	return "DuckDuckGo"
}

// Search performs a search using DuckDuckGo and returns results.
func (d *DuckDuckGoProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	if elapsed := time.Since(d.lastCall); elapsed < d.rateLimit {
		time.Sleep(d.rateLimit - elapsed)
	}
	d.lastCall = time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", d.buildSearchURL(query, config), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := d.parseSearchResults(doc, config.MaxResults)

	logger.Debug("DuckDuckGo search completed", "query", query, "results_found", len(results))

	return results, nil
}

// buildSearchURL constructs the DuckDuckGo search URL with parameters.
func (d *DuckDuckGoProvider) buildSearchURL(query string, config Config) string {
	baseURL := "https://html.duckduckgo.com/html/"
	params := url.Values{}
	params.Set("q", query)
	params.Set("b", "0")
	params.Set("kl", "us-en")
	return baseURL + "?" + params.Encode()
}

// parseSearchResults extracts search results from the DuckDuckGo HTML page.
func (d *DuckDuckGoProvider) parseSearchResults(doc *goquery.Document, maxResults int) []Result {
	var results []Result

	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if maxResults > 0 && len(results) >= maxResults {
			return false
		}

		titleLink := s.Find("a.result__a").First()
		title := strings.TrimSpace(titleLink.Text())
		rawURL, _ := titleLink.Attr("href")
		snippet := strings.TrimSpace(s.Find("a.result__snippet").First().Text())

		finalURL := d.extractFinalURL(rawURL)
		if title == "" || finalURL == "" {
			return true
		}

		results = append(results, Result{
			URL:     finalURL,
			Title:   title,
			Snippet: snippet,
			Domain:  extractDomain(finalURL),
			Source:  "DuckDuckGo",
			Rank:    len(results) + 1,
		})
		return true
	})

	return results
}

// extractFinalURL extracts the actual URL from DuckDuckGo's redirect URL.
// DuckDuckGo links look like /l/?uddg=https%3A//example.com/...&rut=...
func (d *DuckDuckGoProvider) extractFinalURL(redirectURL string) string {
	if strings.HasPrefix(redirectURL, "/l/?") || strings.HasPrefix(redirectURL, "//duckduckgo.com/l/?") {
		parsed, err := url.Parse(redirectURL)
		if err != nil {
			return ""
		}
		if uddg := parsed.Query().Get("uddg"); uddg != "" {
			decoded, err := url.QueryUnescape(uddg)
			if err != nil {
				return ""
			}
			return decoded
		}
	}

	if strings.HasPrefix(redirectURL, "http") {
		return redirectURL
	}

	return ""
}

// extractDomain returns the host portion of a URL, without a www prefix.
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
