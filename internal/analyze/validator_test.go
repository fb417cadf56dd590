package analyze

import (
	"strings"
	"testing"
)

func TestValidateWordCount(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one", 1},
		{"one two three.", 3},
		{"  spaced   out \n words  here. ", 4},
	}

	for _, tc := range cases {
		report := v.Validate(tc.content)
		if report.WordCount != tc.want {
			t.Errorf("Validate(%q).WordCount = %d, want %d", tc.content, report.WordCount, tc.want)
		}
	}
}

func TestValidateEmptyContent(t *testing.T) {
	v := NewValidator()
	report := v.Validate("")

	if report.WordCount != 0 {
		t.Errorf("Expected word count 0, got %d", report.WordCount)
	}
	if report.SentenceCount != 0 {
		t.Errorf("Expected sentence count 0, got %d", report.SentenceCount)
	}
	if report.QualityScore < 0 {
		t.Errorf("Expected quality score clamped to >= 0, got %.1f", report.QualityScore)
	}
}

func TestValidateSentenceCount(t *testing.T) {
	v := NewValidator()
	report := v.Validate("First sentence. Second sentence! Third sentence?")

	if report.SentenceCount != 3 {
		t.Errorf("Expected 3 sentences, got %d", report.SentenceCount)
	}
}

func TestValidateParagraphCount(t *testing.T) {
	v := NewValidator()
	content := "First paragraph here.\n\nSecond paragraph here.\n\n\n\nThird paragraph."
	report := v.Validate(content)

	if report.ParagraphCount != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", report.ParagraphCount)
	}
}

func TestValidateFlagsMissingPunctuation(t *testing.T) {
	v := NewValidator()
	report := v.Validate("This content has no terminal punctuation")

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "punctuation") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected missing punctuation issue, got %v", report.Issues)
	}
}

func TestValidateFlagsLongParagraph(t *testing.T) {
	v := NewValidator()
	long := strings.Repeat("filler ", 201) + "end."
	report := v.Validate(long)

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "very long") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected long paragraph issue, got %v", report.Issues)
	}
}

func TestValidateFlagsRepetitiveWords(t *testing.T) {
	v := NewValidator()
	content := strings.Repeat("productivity matters. ", 12)
	report := v.Validate(content)

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "productivity") && strings.Contains(issue, "repetitive") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected repetitive word issue for 'productivity', got %v", report.Issues)
	}
}

func TestQualityScoreClamped(t *testing.T) {
	v := NewValidator()

	// Short content with several penalties should still bottom out at 0.
	report := v.Validate(strings.Repeat("repetition ", 60))
	if report.QualityScore < 0 || report.QualityScore > 100 {
		t.Errorf("Quality score out of range: %.1f", report.QualityScore)
	}
}

func TestReadabilityScore(t *testing.T) {
	v := NewValidator()

	// Ten words in one sentence: 100 - 10*2 = 80.
	report := v.Validate("one two three four five six seven eight nine ten.")
	if report.ReadabilityScore != 80 {
		t.Errorf("Expected readability 80, got %.1f", report.ReadabilityScore)
	}
}
