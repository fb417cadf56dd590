package research

import (
	"context"
	"strings"
	"testing"

	"contentforge/internal/core"
	"contentforge/internal/search"
)

func TestGenerateQueriesCapped(t *testing.T) {
	r := NewResearcher(search.NewMockProvider(), DefaultOptions())

	req := core.Requirements{
		TargetAudience: "developers",
		SEOKeywords:    []string{"go", "golang", "backend", "api"},
	}
	queries := r.generateQueries("microservices", req)

	if len(queries) != 8 {
		t.Errorf("expected 8 queries, got %d", len(queries))
	}
	if queries[0] != "microservices" {
		t.Errorf("expected bare topic first, got %q", queries[0])
	}
	found := false
	for _, q := range queries {
		if q == "microservices for developers" {
			found = true
		}
	}
	if !found {
		t.Error("expected an audience-qualified query")
	}
}

func TestGenerateQueriesNoAudienceNoKeywords(t *testing.T) {
	r := NewResearcher(search.NewMockProvider(), DefaultOptions())

	queries := r.generateQueries("microservices", core.Requirements{TargetAudience: " "})
	if len(queries) != 6 {
		t.Errorf("expected 6 base queries, got %d", len(queries))
	}
}

func TestConductProducesSources(t *testing.T) {
	provider := search.NewMockProvider()
	r := NewResearcher(provider, DefaultOptions())

	artifact, err := r.Conduct(context.Background(), "cloud computing", core.DefaultRequirements("cloud computing"))
	if err != nil {
		t.Fatalf("Conduct returned error: %v", err)
	}

	if len(artifact.SourceReferences) == 0 {
		t.Fatal("expected at least one source reference")
	}
	if len(artifact.SourceReferences) > 5 {
		t.Errorf("expected at most 5 sources, got %d", len(artifact.SourceReferences))
	}
	for i, source := range artifact.SourceReferences {
		if source.Credibility < 0 || source.Credibility > 1 {
			t.Errorf("source %d credibility %f out of [0, 1]", i, source.Credibility)
		}
		if source.ID == "" {
			t.Errorf("source %d missing ID", i)
		}
		if i > 0 && artifact.SourceReferences[i-1].Credibility < source.Credibility {
			t.Error("sources not sorted by credibility descending")
		}
	}
	if !strings.Contains(artifact.ResearchSummary, "cloud computing") {
		t.Error("summary should mention the topic")
	}
	if artifact.Credibility.TotalSources == 0 {
		t.Error("expected a populated credibility assessment")
	}
}

func TestConductDegradesOnProviderFailure(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetError(search.ErrProviderUnavailable)
	r := NewResearcher(provider, DefaultOptions())

	artifact, err := r.Conduct(context.Background(), "quantum computing", core.DefaultRequirements("quantum computing"))
	if err != nil {
		t.Fatalf("Conduct should not fail on provider errors, got: %v", err)
	}

	if !strings.Contains(artifact.ResearchSummary, "Limited research available") {
		t.Errorf("expected degraded summary, got %q", artifact.ResearchSummary)
	}
	if len(artifact.SourceReferences) != 0 {
		t.Errorf("expected no sources, got %d", len(artifact.SourceReferences))
	}
	if artifact.Credibility.Assessment != "No valid sources found" {
		t.Errorf("unexpected assessment: %q", artifact.Credibility.Assessment)
	}
	if len(artifact.ContentOutline) == 0 {
		t.Error("outline should still be suggested without results")
	}
}

func TestSuggestOutlineByContentType(t *testing.T) {
	guide := suggestOutline("docker", "Tutorial")
	if len(guide) != 7 || guide[2] != "Step-by-Step Process" {
		t.Errorf("unexpected tutorial outline: %v", guide)
	}

	review := suggestOutline("editors", "review")
	if len(review) != 7 || review[len(review)-1] != "Final Verdict" {
		t.Errorf("unexpected review outline: %v", review)
	}

	def := suggestOutline("kubernetes", "Blog post")
	if len(def) != 8 || def[0] != "Introduction to kubernetes" {
		t.Errorf("unexpected default outline: %v", def)
	}
}

func TestExtractStatistics(t *testing.T) {
	results := []search.Result{
		{Snippet: "Adoption grew by 45% last year, with spending reaching $2,500 per team."},
		{Snippet: "Throughput improved 3 times after the migration."},
	}

	stats := extractStatistics(results)
	if len(stats) != 3 {
		t.Fatalf("expected 3 statistics, got %d: %v", len(stats), stats)
	}
	if !strings.HasPrefix(stats[0], "45%:") {
		t.Errorf("expected percentage stat first, got %q", stats[0])
	}
}

func TestExtractQuotes(t *testing.T) {
	results := []search.Result{
		{
			Title:   "Industry Report",
			Snippet: `An expert said "this shift fundamentally changes how teams operate" during the panel.`,
		},
		{Title: "No Quotes Here", Snippet: "Plain snippet without quotations."},
	}

	quotes := extractQuotes(results)
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if !strings.Contains(quotes[0], "Industry Report") {
		t.Errorf("quote should be attributed to the source title, got %q", quotes[0])
	}
}

func TestSourceCredibilityBands(t *testing.T) {
	edu := sourceCredibility(search.Result{URL: "https://example.edu/paper", Title: "A Research Study"})
	if edu != 0.9 {
		t.Errorf("expected 0.9 for .edu with quality title, got %f", edu)
	}

	com := sourceCredibility(search.Result{URL: "https://example.com/post", Title: "Some Post"})
	if com != 0.6 {
		t.Errorf("expected 0.6 for plain .com, got %f", com)
	}

	capped := sourceCredibility(search.Result{URL: "https://research.example.gov/official", Title: "Official Research Report"})
	if capped > 1.0 {
		t.Errorf("credibility must be capped at 1.0, got %f", capped)
	}
}

func TestIdentifyGaps(t *testing.T) {
	sparse := identifyGaps([]search.Result{
		{Title: "One", Snippet: "A lone snippet with no contrasting words and nothing timely."},
	})
	if len(sparse) != 3 {
		t.Errorf("expected all three gaps for a sparse stale corpus, got %v", sparse)
	}

	rich := identifyGaps([]search.Result{
		{Title: "A", Snippet: "The latest figures show growth. However, some disagree."},
		{Title: "B", Snippet: "Recent reporting covers multiple angles."},
		{Title: "C", Snippet: "Current developments continue."},
	})
	if len(rich) != 0 {
		t.Errorf("expected no gaps, got %v", rich)
	}
}

func TestMainThemesDeterministic(t *testing.T) {
	text := "kubernetes kubernetes clusters clusters scaling scaling alpha beta gamma delta"
	first := mainThemes(text)
	for i := 0; i < 5; i++ {
		if got := mainThemes(text); got != first {
			t.Fatalf("themes not deterministic: %q vs %q", got, first)
		}
	}
	if !strings.Contains(first, "kubernetes") {
		t.Errorf("expected dominant word in themes, got %q", first)
	}
}
