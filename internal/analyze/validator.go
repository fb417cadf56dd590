package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"contentforge/internal/core"
)

// ContentReport contains the quality metrics produced by the Validator.
type ContentReport struct {
	WordCount        int      `json:"word_count"`
	CharacterCount   int      `json:"character_count"`
	SentenceCount    int      `json:"sentence_count"`
	ParagraphCount   int      `json:"paragraph_count"`
	ReadabilityScore float64  `json:"readability_score"` // 0-100, higher reads easier
	Issues           []string `json:"issues"`
	QualityScore     float64  `json:"quality_score"` // 0-100 overall content health
}

// Validator computes heuristic quality metrics over plain text. It holds
// no mutable state and is safe to share across pipeline runs.
type Validator struct{}

// NewValidator creates a new content validator.
func NewValidator() *Validator {
	return &Validator{}
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	terminalPunctRe = regexp.MustCompile(`[.!?]$`)
	wordTrimCutset  = ".,!?\";:()[]{}"
)

// Validate analyzes content and returns its quality report.
func (v *Validator) Validate(content string) ContentReport {
	report := ContentReport{
		WordCount:        core.CountWords(content),
		CharacterCount:   utf8.RuneCountInString(content),
		SentenceCount:    countSentences(content),
		ParagraphCount:   len(core.Paragraphs(content)),
		ReadabilityScore: readability(content),
	}
	report.Issues = v.identifyIssues(content)
	report.QualityScore = qualityScore(report)
	return report
}

// countSentences counts segments delimited by runs of sentence-ending
// punctuation, excluding the trailing empty segment after the final mark.
func countSentences(content string) int {
	n := len(sentenceSplitRe.Split(content, -1)) - 1
	if n < 0 {
		n = 0
	}
	return n
}

// readability scores text 0-100 from average sentence length alone:
// 100 minus twice the average number of words per sentence.
func readability(content string) float64 {
	sentences := countSentences(content)
	if sentences == 0 {
		return 0
	}
	avg := float64(core.CountWords(content)) / float64(sentences)
	return core.Clamp(100-avg*2, 0, 100)
}

func (v *Validator) identifyIssues(content string) []string {
	var issues []string

	for i, para := range core.Paragraphs(content) {
		if words := core.CountWords(para); words > 200 {
			issues = append(issues, fmt.Sprintf("Paragraph %d is very long (%d words)", i+1, words))
		}
	}

	// Repetition check only considers words longer than five characters;
	// short function words repeat legitimately.
	freq := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(content)) {
		word = strings.Trim(word, wordTrimCutset)
		if len(word) > 5 {
			freq[word]++
		}
	}
	repetitive := make([]string, 0)
	for word, n := range freq {
		if n > 10 {
			repetitive = append(repetitive, word)
		}
	}
	sort.Strings(repetitive)
	for _, word := range repetitive {
		issues = append(issues, fmt.Sprintf("Word '%s' appears %d times (potentially repetitive)", word, freq[word]))
	}

	if !terminalPunctRe.MatchString(strings.TrimSpace(content)) {
		issues = append(issues, "Content doesn't end with proper punctuation")
	}

	return issues
}

// qualityScore starts at 100 and subtracts fixed penalties for issues,
// poor readability, and out-of-band length, clamped to [0, 100].
func qualityScore(report ContentReport) float64 {
	score := 100.0

	score -= float64(len(report.Issues)) * 5

	if report.ReadabilityScore < 30 {
		score -= 20
	} else if report.ReadabilityScore < 50 {
		score -= 10
	}

	switch {
	case report.WordCount < 100:
		score -= 30
	case report.WordCount < 300:
		score -= 15
	case report.WordCount > 3000:
		score -= 10
	}

	return core.Clamp(score, 0, 100)
}
