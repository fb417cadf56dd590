package analyze

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeKeywordDensity(t *testing.T) {
	a := NewSEOAnalyzer()

	// "remote work" appears twice in 10 words: 2/10 * 100 = 20%.
	content := "remote work is great and remote work helps teams focus."
	report := a.Analyze(content, []string{"remote work"})

	density := report.Keywords.KeywordDensity["remote work"]
	if math.Abs(density-20.0) > 0.01 {
		t.Errorf("Expected density 20.0, got %.2f", density)
	}
	if len(report.Keywords.MissingKeywords) != 0 {
		t.Errorf("Expected no missing keywords, got %v", report.Keywords.MissingKeywords)
	}
}

func TestAnalyzeEmptyContentDensity(t *testing.T) {
	a := NewSEOAnalyzer()
	report := a.Analyze("", []string{"anything"})

	if density := report.Keywords.KeywordDensity["anything"]; density != 0 {
		t.Errorf("Expected zero density on empty content, got %.2f", density)
	}
	if len(report.Keywords.MissingKeywords) != 1 {
		t.Errorf("Expected keyword reported missing, got %v", report.Keywords.MissingKeywords)
	}
}

func TestAnalyzeMissingKeywordPenalty(t *testing.T) {
	a := NewSEOAnalyzer()
	content := "# Title\n\n" + strings.Repeat("word ", 400) + "end."

	with := a.Analyze(content, nil)
	without := a.Analyze(content, []string{"absent"})

	if without.SEOScore != with.SEOScore-10 {
		t.Errorf("Expected 10 point penalty for missing keyword: %.1f vs %.1f", with.SEOScore, without.SEOScore)
	}
}

func TestAnalyzeStructure(t *testing.T) {
	a := NewSEOAnalyzer()
	content := "# Main Title\n\n## Section One\n\nParagraph text here.\n\n- item one\n- item two\n\nSee [related](https://example.com/post) for more."

	report := a.Analyze(content, nil)

	if !report.Structure.HasHeadings {
		t.Error("Expected headings to be detected")
	}
	if len(report.Structure.HeadingHierarchy) != 2 {
		t.Errorf("Expected 2 headings in hierarchy, got %d", len(report.Structure.HeadingHierarchy))
	}
	if report.Structure.HeadingHierarchy[0] != "H1: Main Title" {
		t.Errorf("Unexpected hierarchy entry: %s", report.Structure.HeadingHierarchy[0])
	}
	if !report.Structure.HasLists {
		t.Error("Expected list to be detected")
	}
	if report.Structure.InternalLinks != 1 {
		t.Errorf("Expected 1 internal link, got %d", report.Structure.InternalLinks)
	}
}

func TestAnalyzeNoHeadingsPenalty(t *testing.T) {
	a := NewSEOAnalyzer()
	content := strings.Repeat("plain text without structure ", 80) + "end."

	report := a.Analyze(content, nil)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "headings") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected heading recommendation, got %v", report.Recommendations)
	}
	if report.SEOScore > 80 {
		t.Errorf("Expected score penalized for missing headings, got %.1f", report.SEOScore)
	}
}

func TestMetaSuggestionsTruncation(t *testing.T) {
	a := NewSEOAnalyzer()
	long := strings.Repeat("x", 200) + ". More text follows here."

	report := a.Analyze(long, nil)

	if len(report.MetaSuggestions.Title) > 63 {
		t.Errorf("Title suggestion too long: %d chars", len(report.MetaSuggestions.Title))
	}
	if !strings.HasSuffix(report.MetaSuggestions.Title, "...") {
		t.Error("Expected truncated title to end with ellipsis")
	}
	if len(report.MetaSuggestions.Description) > 158 {
		t.Errorf("Description suggestion too long: %d chars", len(report.MetaSuggestions.Description))
	}
}

func TestKeywordPositions(t *testing.T) {
	a := NewSEOAnalyzer()
	content := "alpha beta alpha"

	report := a.Analyze(content, []string{"alpha"})

	positions := report.Keywords.KeywordPosition["alpha"]
	if len(positions) != 2 || positions[0] != 0 || positions[1] != 11 {
		t.Errorf("Unexpected positions: %v", positions)
	}
}
