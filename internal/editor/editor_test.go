package editor

import (
	"strings"
	"testing"

	"contentforge/internal/core"
)

func TestNormalizeHeadings(t *testing.T) {
	got := normalizeHeadings("##   Messy Heading\n\nBody text.\n\n###Tight")
	if !strings.Contains(got, "## Messy Heading") {
		t.Errorf("heading not normalized: %q", got)
	}
	if !strings.Contains(got, "### Tight") {
		t.Errorf("hash run without space not normalized: %q", got)
	}
}

func TestNormalizeParagraphs(t *testing.T) {
	got := normalizeParagraphs("First line\ncontinued here.\n\n\n\nSecond paragraph.  ")
	want := "First line continued here.\n\nSecond paragraph."
	if got != want {
		t.Errorf("normalizeParagraphs = %q, want %q", got, want)
	}
}

func TestNormalizeParagraphsKeepsLists(t *testing.T) {
	block := "- first item\n- second item"
	got := normalizeParagraphs("Intro.\n\n" + block)
	if !strings.Contains(got, block) {
		t.Errorf("list block should keep line breaks: %q", got)
	}
}

func TestCondensePhrases(t *testing.T) {
	got := condensePhrases("We do this in order to succeed, due to the fact that it matters.")
	if strings.Contains(got, "in order to") || strings.Contains(got, "due to the fact that") {
		t.Errorf("wordy phrases not replaced: %q", got)
	}
	if !strings.Contains(got, "to succeed, because it matters") {
		t.Errorf("unexpected replacement result: %q", got)
	}
}

func TestInsertTransitions(t *testing.T) {
	first := "The initial paragraph sets context for everything that follows in this piece of writing today."
	second := "One major challenge organizations face is finding enough skilled people to operate these complex systems reliably at the required scale every single day."
	got := insertTransitions(first + "\n\n" + second)

	if !strings.Contains(got, "However, One major challenge") {
		t.Errorf("challenge paragraph should get a However transition: %q", got)
	}

	// A second pass must not stack another transition.
	again := insertTransitions(got)
	if strings.Contains(again, "However, However,") {
		t.Error("transition insertion is not idempotent")
	}
}

func TestInsertTransitionsSkipsShortAndFirst(t *testing.T) {
	content := "A short challenge note.\n\nAnother brief challenge."
	if got := insertTransitions(content); got != content {
		t.Errorf("short paragraphs should be untouched: %q", got)
	}
}

func TestSplitLongSentences(t *testing.T) {
	long := "The system processes every incoming record through a series of carefully ordered validation steps that check formatting and completeness and the results are stored in a durable queue for later replay by downstream consumers."
	got := splitLongSentences(long)

	if strings.Count(got, ".") < 2 {
		t.Errorf("expected the long sentence to be split: %q", got)
	}
	for _, sentence := range strings.Split(got, ". ") {
		if core.CountWords(sentence) > 30 {
			t.Errorf("sentence still over 30 words: %q", sentence)
		}
	}
}

func TestSplitLongSentencesLeavesHeadings(t *testing.T) {
	heading := "# A Heading That Happens To Be Long Enough To Trip The Limit If It Were Treated As Prose Which It Should Never Be Because Headings Are Structural And Not Sentences At All Even When Very Long"
	if got := splitLongSentences(heading); got != heading {
		t.Errorf("headings must not be split: %q", got)
	}
}

func TestFixGrammarSpacing(t *testing.T) {
	got := fixGrammarSpacing("This is wrong , very wrong . next sentence starts here. and another one.")
	if strings.Contains(got, " ,") || strings.Contains(got, " .") {
		t.Errorf("spacing before punctuation not fixed: %q", got)
	}
	if !strings.Contains(got, ". And another one.") {
		t.Errorf("capitalization after period not applied: %q", got)
	}
}

func TestEditEndToEnd(t *testing.T) {
	content := "# Cloud Migration\n\nMoving workloads in order to reduce cost is a common driver for cloud migration projects across many industries and regions today.\n\nOne significant challenge teams encounter is rewriting legacy integrations that were never designed for distributed environments and still carry assumptions about shared state."
	e := NewEditor()

	result, err := e.Edit(content, core.DefaultRequirements("cloud migration"))
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}

	if result.OriginalContent != content {
		t.Error("original content should be preserved")
	}
	if strings.Contains(result.EditedContent, "in order to") {
		t.Error("wordy phrase survived editing")
	}
	if !strings.Contains(result.EditedContent, "However,") {
		t.Errorf("expected a transition before the challenge paragraph: %q", result.EditedContent)
	}
	if len(result.ImprovementsMade) == 0 {
		t.Error("expected tracked improvements")
	}
	if len(result.Recommendations) == 0 || len(result.Recommendations) > 5 {
		t.Errorf("recommendations out of bounds: %v", result.Recommendations)
	}
	if result.FinalQualityScore < 0 || result.FinalQualityScore > 100 {
		t.Errorf("final quality score %f out of [0, 100]", result.FinalQualityScore)
	}
}

func TestEditIdempotent(t *testing.T) {
	content := "# Topic\n\nA clean paragraph that already reads well and needs no changes from anyone.\n\nAnother tidy paragraph with short sentences. It flows fine."
	e := NewEditor()

	first, err := e.Edit(content, core.DefaultRequirements("topic"))
	if err != nil {
		t.Fatalf("first edit failed: %v", err)
	}
	second, err := e.Edit(first.EditedContent, core.DefaultRequirements("topic"))
	if err != nil {
		t.Fatalf("second edit failed: %v", err)
	}

	if second.EditedContent != first.EditedContent {
		t.Errorf("editing is not stable:\nfirst:  %q\nsecond: %q", first.EditedContent, second.EditedContent)
	}
}

func TestRecommendationsMissingKeywords(t *testing.T) {
	e := NewEditor()
	req := core.DefaultRequirements("gardening")
	req.SEOKeywords = []string{"compost", "mulch"}

	result, err := e.Edit("# Gardening\n\nA very short note about plants.", req)
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}

	found := false
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "compost") && strings.Contains(rec, "mulch") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing-keyword recommendation, got %v", result.Recommendations)
	}
}
