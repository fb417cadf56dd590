package seo

import (
	"strings"
	"testing"

	"contentforge/internal/core"
)

func TestOptimizeTitle(t *testing.T) {
	got := optimizeTitle("# A Practical Guide\n\nBody.", []string{"kubernetes"})
	if !strings.HasPrefix(got, "# kubernetes: A Practical Guide") {
		t.Errorf("keyword not prepended to title: %q", got)
	}

	got = optimizeTitle("# Old Name: Deep Dive\n\nBody.", []string{"kubernetes"})
	if !strings.HasPrefix(got, "# kubernetes: Deep Dive") {
		t.Errorf("subtitle should be kept on colon titles: %q", got)
	}

	unchanged := "# Kubernetes Operations\n\nBody."
	if got := optimizeTitle(unchanged, []string{"kubernetes"}); got != unchanged {
		t.Errorf("title already containing the keyword must not change: %q", got)
	}
}

func TestOptimizeHeadings(t *testing.T) {
	content := "# Title\n\n## Overview\n\n## Key Benefits and Advantages\n\n## Challenges and Considerations"
	got := optimizeHeadings(content, []string{"terraform", "pulumi"})

	if !strings.Contains(got, "## terraform Benefits and Advantages") {
		t.Errorf("benefits heading not rewritten: %q", got)
	}
	if !strings.Contains(got, "## pulumi Challenges and Solutions") {
		t.Errorf("challenges heading should consume the next keyword: %q", got)
	}
	if !strings.Contains(got, "## Overview") {
		t.Errorf("unmatched heading must stay unchanged: %q", got)
	}
}

func TestOptimizeHeadingsSkipsSubheadings(t *testing.T) {
	content := "### Benefits of something deeper"
	if got := optimizeHeadings(content, []string{"terraform"}); got != content {
		t.Errorf("third-level headings must not be rewritten: %q", got)
	}
}

func TestBoostKeywordDensity(t *testing.T) {
	para := "Many teams adopt this approach because the gains are easy to demonstrate once the rollout reaches the point where measurable results start appearing across multiple departments and quarters."
	got := boostKeywordDensity(para, []string{"automation"})

	if !strings.Contains(got, "automation") {
		t.Errorf("generic referent not replaced with keyword: %q", got)
	}
	if strings.Contains(got, "this approach") {
		t.Errorf("replaced term should be gone: %q", got)
	}
}

func TestBoostKeywordDensitySkipsShortParagraphs(t *testing.T) {
	para := "A short note about this approach."
	if got := boostKeywordDensity(para, []string{"automation"}); got != para {
		t.Errorf("short paragraphs must not be rewritten: %q", got)
	}
}

func TestAppendSEOSections(t *testing.T) {
	base := "# Title\n\nBody paragraph."

	two := appendSEOSections(base, []string{"go", "rust"})
	if !strings.Contains(two, "## Frequently Asked Questions about go") {
		t.Error("FAQ block missing with two keywords")
	}
	if !strings.Contains(two, "## Related Topics") {
		t.Error("related topics block missing")
	}

	one := appendSEOSections(base, []string{"go"})
	if strings.Contains(one, "Frequently Asked Questions") {
		t.Error("FAQ requires at least two keywords")
	}
	if !strings.Contains(one, "## Related Topics") {
		t.Error("related topics block missing with one keyword")
	}

	if got := appendSEOSections(base, nil); got != base {
		t.Errorf("no keywords should append nothing: %q", got)
	}

	already := base + "\n\n## Related Topics\n\n- go Best Practices"
	if got := appendSEOSections(already, []string{"go"}); strings.Count(strings.ToLower(got), "related topics") != 1 {
		t.Errorf("related topics must not be duplicated: %q", got)
	}
}

func TestGenerateMetaTags(t *testing.T) {
	long := "# " + strings.Repeat("word ", 20) + "end\n\nFirst paragraph."
	tags := generateMetaTags(long, nil, core.DefaultRequirements("topic"))
	if len(tags.Title) != 60 || !strings.HasSuffix(tags.Title, "...") {
		t.Errorf("long title should truncate to 60 chars with ellipsis, got %q (%d)", tags.Title, len(tags.Title))
	}

	req := core.DefaultRequirements("topic")
	req.SEOKeywords = []string{"observability", "tracing"}
	tags = generateMetaTags("# Short\n\nTiny body.", req.SEOKeywords, req)
	if !strings.HasPrefix(tags.Title, "observability - ") {
		t.Errorf("short title should get the primary keyword prefix, got %q", tags.Title)
	}
	if !strings.Contains(tags.Description, "Learn about observability, tracing and more.") {
		t.Errorf("short description should be padded with keywords, got %q", tags.Description)
	}
	if tags.OGType != "article" || tags.Robots != "index, follow" {
		t.Errorf("fixed tags wrong: %+v", tags)
	}
	if !strings.HasPrefix(tags.Canonical, "https://example.com/") || strings.Contains(tags.Canonical, " ") {
		t.Errorf("canonical should be a slug URL, got %q", tags.Canonical)
	}
}

func TestBuildKeywordReport(t *testing.T) {
	content := "# gardening tips\n\ngardening is rewarding. gardening needs patience. Soil and light matter a lot for every garden plot."
	report := buildKeywordReport(content, []string{"gardening", "hydroponics"})

	usage := report.KeywordAnalysis["gardening"]
	if usage.Count != 3 {
		t.Errorf("gardening count = %d, want 3", usage.Count)
	}
	if !usage.InTitle || !usage.InHeadings || !usage.InFirstParagraph {
		t.Errorf("placement flags wrong: %+v", usage)
	}
	if report.Placement["gardening"].Score != 3 || report.Placement["gardening"].Assessment != "Excellent" {
		t.Errorf("placement report wrong: %+v", report.Placement["gardening"])
	}

	missing := report.KeywordAnalysis["hydroponics"]
	if missing.Count != 0 || missing.Density != 0 {
		t.Errorf("absent keyword should report zero usage: %+v", missing)
	}
	if report.DensityAnalysis["hydroponics"] != "Too low - increase usage" {
		t.Errorf("density assessment wrong: %q", report.DensityAnalysis["hydroponics"])
	}
	if report.Placement["hydroponics"].Assessment != "Needs improvement" {
		t.Errorf("placement assessment wrong: %+v", report.Placement["hydroponics"])
	}
}

func TestOptimizeEndToEnd(t *testing.T) {
	content := "# A Practical Guide\n\nMany teams adopt this approach because the gains are easy to demonstrate once the rollout reaches the point where measurable results start appearing across departments.\n\n## Key Benefits and Advantages\n\nThe upside is substantial for most adopters in the long run across several dimensions of cost and speed."
	req := core.DefaultRequirements("automation")
	req.SEOKeywords = []string{"automation", "tooling"}

	o := NewOptimizer()
	result, err := o.Optimize(content, req)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}

	if !strings.Contains(result.OptimizedContent, "# automation:") {
		t.Error("title not optimized for the primary keyword")
	}
	if !strings.Contains(result.OptimizedContent, "Frequently Asked Questions") {
		t.Error("FAQ section missing")
	}
	if result.SEOScore < 0 || result.SEOScore > 100 {
		t.Errorf("seo score %f out of [0, 100]", result.SEOScore)
	}
	if len(result.OptimizationsMade) == 0 {
		t.Error("expected tracked optimizations")
	}
	if result.OriginalContent != content {
		t.Error("original content should be preserved")
	}
	if _, ok := result.KeywordReport.KeywordAnalysis["automation"]; !ok {
		t.Error("keyword report missing the primary keyword")
	}
}

func TestOptimizeWithoutKeywords(t *testing.T) {
	content := "# Plain Title\n\nA body paragraph that mentions nothing special at all."

	o := NewOptimizer()
	result, err := o.Optimize(content, core.DefaultRequirements("plain"))
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}

	if result.OptimizedContent != content {
		t.Errorf("no keywords should leave content untouched: %q", result.OptimizedContent)
	}
	if len(result.KeywordReport.KeywordAnalysis) != 0 {
		t.Errorf("keyword report should be empty: %+v", result.KeywordReport)
	}
	if result.MetaTags.Keywords != "" {
		t.Errorf("meta keywords should be empty, got %q", result.MetaTags.Keywords)
	}
}

func TestCapParagraphLength(t *testing.T) {
	sentence := "This sentence carries exactly ten words to measure chunk growth."
	long := strings.TrimSpace(strings.Repeat(sentence+" ", 25))
	got := capParagraphLength(long)

	for _, line := range strings.Split(got, "\n") {
		if core.CountWords(line) > 200 {
			t.Errorf("line still over 200 words: %d", core.CountWords(line))
		}
	}
	if !strings.Contains(got, "\n") {
		t.Error("long paragraph should have been split")
	}
}
