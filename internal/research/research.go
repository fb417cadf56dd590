// Package research implements the research stage: it turns a topic and
// requirements into a structured research artifact by querying a search
// provider and deriving summary, facts, statistics, quotes, sources,
// outline, and gap findings from the raw snippets.
package research

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentforge/internal/core"
	"contentforge/internal/logger"
	"contentforge/internal/search"
)

// SourceReference is one credible source backing the research.
type SourceReference struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Snippet     string  `json:"snippet"`
	Credibility float64 `json:"credibility"` // Heuristic trust estimate in [0, 1]
}

// CredibilityAssessment summarizes the trustworthiness of all sources.
type CredibilityAssessment struct {
	OverallScore          float64 `json:"overall_score"` // Mean per-source credibility in [0, 1]
	TotalSources          int     `json:"total_sources"`
	HighCredibilitySource int     `json:"high_credibility_sources"` // Sources scoring >= 0.8
	Assessment            string  `json:"assessment"`
}

// Artifact is the research stage output, read-only input to the writer.
type Artifact struct {
	Topic            string                `json:"topic"`
	ResearchSummary  string                `json:"research_summary"`
	KeyFacts         []string              `json:"key_facts"`  // At most 5
	Statistics       []string              `json:"statistics"` // At most 3
	ExpertQuotes     []string              `json:"expert_quotes"`
	SourceReferences []SourceReference     `json:"source_references"` // Sorted by credibility, descending
	ContentOutline   []string              `json:"content_outline"`
	ResearchGaps     []string              `json:"research_gaps"`
	Credibility      CredibilityAssessment `json:"credibility_assessment"`
}

// Options configures the research stage.
type Options struct {
	MaxQueries      int           // Upper bound on generated queries
	ResultsPerQuery int           // Results requested from the provider per query
	SearchTimeout   time.Duration // Budget for a single provider call
}

// DefaultOptions returns the research stage defaults.
func DefaultOptions() Options {
	return Options{
		MaxQueries:      8,
		ResultsPerQuery: 5,
		SearchTimeout:   10 * time.Second,
	}
}

// Researcher conducts topic research through a search provider. It is
// stateless after construction.
type Researcher struct {
	provider search.Provider
	opts     Options
}

// NewResearcher creates a research stage backed by the given provider.
func NewResearcher(provider search.Provider, opts Options) *Researcher {
	if opts.MaxQueries <= 0 {
		opts.MaxQueries = 8
	}
	if opts.ResultsPerQuery <= 0 {
		opts.ResultsPerQuery = 5
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 10 * time.Second
	}
	return &Researcher{provider: provider, opts: opts}
}

// Conduct researches the topic and derives a structured artifact.
// Provider failures degrade individual queries; they never fail the run.
func (r *Researcher) Conduct(ctx context.Context, topic string, req core.Requirements) (*Artifact, error) {
	req = req.Normalize()
	queries := r.generateQueries(topic, req)

	var results []search.Result
	for _, query := range queries {
		batch, err := r.runQuery(ctx, query)
		if err != nil {
			logger.Warn("search query failed, continuing without it", "query", query, "provider", r.provider.Name(), "reason", err.Error())
			continue
		}
		results = append(results, batch...)
	}

	artifact := &Artifact{
		Topic:            topic,
		ResearchSummary:  r.buildSummary(topic, results),
		KeyFacts:         extractKeyFacts(results),
		Statistics:       extractStatistics(results),
		ExpertQuotes:     extractQuotes(results),
		SourceReferences: compileSources(results),
		ContentOutline:   suggestOutline(topic, req.ContentType),
		ResearchGaps:     identifyGaps(results),
		Credibility:      assessCredibility(results),
	}

	logger.Info("research completed", "topic", topic, "queries", len(queries), "results", len(results), "sources", len(artifact.SourceReferences))

	return artifact, nil
}

func (r *Researcher) runQuery(ctx context.Context, query string) ([]search.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.SearchTimeout)
	defer cancel()

	return r.provider.Search(ctx, query, search.Config{
		MaxResults: r.opts.ResultsPerQuery,
		Timeout:    r.opts.SearchTimeout,
	})
}

// generateQueries builds up to MaxQueries search queries: six base
// variants, up to two audience-qualified forms, and up to three
// keyword-qualified forms from the leading SEO keywords.
func (r *Researcher) generateQueries(topic string, req core.Requirements) []string {
	queries := []string{
		topic,
		topic + " definition",
		topic + " benefits",
		topic + " challenges",
		topic + " statistics",
		topic + " recent developments",
	}

	if audience := strings.TrimSpace(req.TargetAudience); audience != "" {
		queries = append(queries,
			fmt.Sprintf("%s for %s", topic, audience),
			fmt.Sprintf("%s %s case studies", topic, audience),
		)
	}

	keywords := req.SEOKeywords
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	for _, keyword := range keywords {
		queries = append(queries, keyword+" "+topic)
	}

	if len(queries) > r.opts.MaxQueries {
		queries = queries[:r.opts.MaxQueries]
	}
	return queries
}

var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"from": true, "up": true, "about": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true, "below": true,
	"between": true, "among": true, "around": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "can": true, "this": true,
	"that": true, "these": true, "those": true, "a": true, "an": true,
}

// buildSummary assembles the templated research summary with the top
// five theme words and a confidence label derived from source count.
func (r *Researcher) buildSummary(topic string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("Limited research available on %s. Recommend using authoritative sources.", topic)
	}

	capped := results
	if len(capped) > 10 {
		capped = capped[:10]
	}
	var combined strings.Builder
	for _, result := range capped {
		combined.WriteString(result.Snippet)
		combined.WriteString(" ")
	}

	confidence := "Low"
	switch {
	case len(results) >= 5:
		confidence = "High"
	case len(results) >= 3:
		confidence = "Medium"
	}

	return strings.TrimSpace(fmt.Sprintf(`Research Summary: %s

Overview: Based on analysis of %d sources, %s appears to be a significant subject with multiple dimensions worth exploring.

Key Themes Identified:
- %s

Current Status: The topic shows ongoing relevance with recent developments and continued interest from various stakeholders.

Research Confidence: %s`, topic, len(results), topic, mainThemes(combined.String()), confidence))
}

// mainThemes returns the five most frequent non-stopword words longer
// than three characters, joined with commas.
func mainThemes(text string) string {
	freq := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?\";:()[]{}")
		if len(word) > 3 && !stopwords[word] {
			freq[word]++
		}
	}

	type wordCount struct {
		word  string
		count int
	}
	counts := make([]wordCount, 0, len(freq))
	for word, count := range freq {
		counts = append(counts, wordCount{word, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].word < counts[j].word
	})

	if len(counts) > 5 {
		counts = counts[:5]
	}
	themes := make([]string, len(counts))
	for i, wc := range counts {
		themes[i] = wc.word
	}
	if len(themes) == 0 {
		return "General information and insights"
	}
	return strings.Join(themes, ", ")
}

var factIndicators = []string{"is", "are", "was", "were", "has", "have", "can", "will", "according"}

// extractKeyFacts picks up to five substantial sentences that carry a
// verb indicator, from the first five results.
func extractKeyFacts(results []search.Result) []string {
	var facts []string

	capped := results
	if len(capped) > 5 {
		capped = capped[:5]
	}
	for _, result := range capped {
		for _, sentence := range strings.Split(result.Snippet, ".") {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= 50 {
				continue
			}
			lower := strings.ToLower(sentence)
			for _, indicator := range factIndicators {
				if strings.Contains(lower, indicator) {
					facts = append(facts, sentence)
					break
				}
			}
			if len(facts) >= 5 {
				return facts
			}
		}
	}

	return facts
}

var statPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),                                      // Percentages
	regexp.MustCompile(`\$[\d,]+`),                                  // Dollar amounts
	regexp.MustCompile(`(?i)\d+\.\d+\s*(million|billion|thousand)`), // Scaled numbers
	regexp.MustCompile(`(?i)\d+\s*(times|fold)`),                    // Multipliers
}

// extractStatistics collects up to three numeric findings with a
// 50-character context window around each match.
func extractStatistics(results []search.Result) []string {
	var statistics []string

	for _, result := range results {
		snippet := result.Snippet
		for _, pattern := range statPatterns {
			for _, match := range pattern.FindAllString(snippet, -1) {
				idx := strings.Index(snippet, match)
				if idx < 0 {
					continue
				}
				start := int(math.Max(0, float64(idx-50)))
				end := idx + 50
				if end > len(snippet) {
					end = len(snippet)
				}
				statistics = append(statistics, fmt.Sprintf("%s: %s", match, strings.TrimSpace(snippet[start:end])))
				if len(statistics) >= 3 {
					return statistics
				}
			}
		}
	}

	return statistics
}

// extractQuotes pulls up to three double-quoted passages longer than 20
// characters, attributed to the source title.
func extractQuotes(results []search.Result) []string {
	var quotes []string

	for _, result := range results {
		if !strings.Contains(result.Snippet, `"`) {
			continue
		}
		parts := strings.Split(result.Snippet, `"`)
		// Odd-indexed segments sit between quote marks.
		for i := 1; i < len(parts); i += 2 {
			if len(parts[i]) > 20 {
				quotes = append(quotes, fmt.Sprintf("%q - %s", parts[i], result.Title))
				if len(quotes) >= 3 {
					return quotes
				}
			}
		}
	}

	return quotes
}

var (
	highTrustDomains   = []string{".edu", ".gov", ".org", "wikipedia", "scholar.google"}
	mediumTrustDomains = []string{".com", "news", "journal", "research"}
	qualityIndicators  = []string{"research", "study", "analysis", "report", "official"}
)

// sourceCredibility estimates trust for one source: base 0.5, a domain
// bonus, and a title quality bonus, capped at 1.0.
func sourceCredibility(result search.Result) float64 {
	url := strings.ToLower(result.URL)
	title := strings.ToLower(result.Title)

	score := 0.5

	matched := false
	for _, domain := range highTrustDomains {
		if strings.Contains(url, domain) {
			score += 0.3
			matched = true
			break
		}
	}
	if !matched {
		for _, domain := range mediumTrustDomains {
			if strings.Contains(url, domain) {
				score += 0.1
				break
			}
		}
	}

	for _, indicator := range qualityIndicators {
		if strings.Contains(title, indicator) {
			score += 0.1
			break
		}
	}

	return math.Min(1.0, score)
}

// compileSources keeps the first five results as attributed references,
// sorted by credibility, descending.
func compileSources(results []search.Result) []SourceReference {
	capped := results
	if len(capped) > 5 {
		capped = capped[:5]
	}

	sources := make([]SourceReference, 0, len(capped))
	for _, result := range capped {
		title := result.Title
		if title == "" {
			title = "Unknown Title"
		}
		snippet := result.Snippet
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		sources = append(sources, SourceReference{
			ID:          uuid.NewString(),
			Title:       title,
			URL:         result.URL,
			Snippet:     snippet + "...",
			Credibility: sourceCredibility(result),
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Credibility > sources[j].Credibility
	})
	return sources
}

// suggestOutline returns a content-type-specific section outline.
func suggestOutline(topic, contentType string) []string {
	switch strings.ToLower(contentType) {
	case "guide", "tutorial", "how-to":
		return []string{
			"Introduction to " + topic,
			"Prerequisites and Requirements",
			"Step-by-Step Process",
			"Best Practices",
			"Common Mistakes to Avoid",
			"Advanced Tips",
			"Conclusion and Next Steps",
		}
	case "review", "comparison":
		return []string{
			"Overview of " + topic,
			"Methodology",
			"Detailed Analysis",
			"Pros and Cons",
			"Comparisons",
			"Recommendations",
			"Final Verdict",
		}
	default:
		return []string{
			"Introduction to " + topic,
			"What is " + topic + "?",
			"Key Benefits of " + topic,
			"Challenges and Considerations",
			"Current Trends and Developments",
			"Practical Applications",
			"Future Outlook",
			"Conclusion",
		}
	}
}

var recencyIndicators = []string{"2026", "2025", "recent", "latest", "new", "current"}

// identifyGaps reports weaknesses in the gathered material: thin source
// coverage, stale information, or a single-perspective snippet pool.
func identifyGaps(results []search.Result) []string {
	var gaps []string

	if len(results) < 3 {
		gaps = append(gaps, "Limited source diversity - recommend finding additional authoritative sources")
	}

	var combined strings.Builder
	for _, result := range results {
		combined.WriteString(strings.ToLower(result.Snippet))
		combined.WriteString(" ")
		combined.WriteString(strings.ToLower(result.Title))
		combined.WriteString(" ")
	}
	text := combined.String()

	recent := false
	for _, indicator := range recencyIndicators {
		if strings.Contains(text, indicator) {
			recent = true
			break
		}
	}
	if !recent {
		gaps = append(gaps, "Lack of recent information - consider finding more current sources")
	}

	if !strings.Contains(text, "however") && !strings.Contains(text, "but") {
		gaps = append(gaps, "Limited perspective diversity - consider finding contrasting viewpoints")
	}

	return gaps
}

// assessCredibility averages per-source credibility and assigns a
// banded textual assessment.
func assessCredibility(results []search.Result) CredibilityAssessment {
	if len(results) == 0 {
		return CredibilityAssessment{Assessment: "No valid sources found"}
	}

	total := 0.0
	high := 0
	for _, result := range results {
		score := sourceCredibility(result)
		total += score
		if score >= 0.8 {
			high++
		}
	}
	avg := total / float64(len(results))

	assessment := "Low credibility - additional authoritative sources needed"
	switch {
	case avg >= 0.8:
		assessment = "High credibility - sources are trustworthy and authoritative"
	case avg >= 0.6:
		assessment = "Good credibility - sources are generally reliable"
	case avg >= 0.4:
		assessment = "Medium credibility - sources should be verified"
	}

	return CredibilityAssessment{
		OverallScore:          math.Round(avg*100) / 100,
		TotalSources:          len(results),
		HighCredibilitySource: high,
		Assessment:            assessment,
	}
}
