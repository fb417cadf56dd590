// Package editor implements the editing stage: an ordered sequence of
// deterministic text transforms plus before/after quality comparison
// through the content validator.
package editor

import (
	"fmt"
	"strings"

	"contentforge/internal/analyze"
	"contentforge/internal/core"
	"contentforge/internal/logger"
)

// Edit is the editing stage output.
type Edit struct {
	OriginalContent   string                `json:"original_content"`
	EditedContent     string                `json:"edited_content"`
	QualityAnalysis   analyze.ContentReport `json:"quality_analysis"` // Validator report on the input
	ImprovementsMade  []string              `json:"improvements_made"`
	EditingNotes      []string              `json:"editing_notes"`
	FinalQualityScore float64               `json:"final_quality_score"`
	Recommendations   []string              `json:"recommendations"`
}

// Editor applies the editing transforms. Stateless after construction.
type Editor struct {
	validator *analyze.Validator
}

// NewEditor creates the editing stage.
func NewEditor() *Editor {
	return &Editor{validator: analyze.NewValidator()}
}

// Edit runs the transform sequence over content and reports the
// before/after quality delta.
func (e *Editor) Edit(content string, req core.Requirements) (*Edit, error) {
	req = req.Normalize()
	before := e.validator.Validate(content)

	edited := content
	edited = normalizeHeadings(edited)
	edited = normalizeParagraphs(edited)
	edited = condensePhrases(edited)
	edited = insertTransitions(edited)
	edited = splitLongSentences(edited)
	edited = fixGrammarSpacing(edited)

	after := e.validator.Validate(edited)

	result := &Edit{
		OriginalContent:   content,
		EditedContent:     edited,
		QualityAnalysis:   before,
		ImprovementsMade:  trackImprovements(content, edited),
		EditingNotes:      editingNotes(before, after, req),
		FinalQualityScore: after.QualityScore,
		Recommendations:   e.recommendations(edited, after, req),
	}

	logger.Info("editing completed", "quality_before", before.QualityScore, "quality_after", after.QualityScore, "words", after.WordCount)

	return result, nil
}

// normalizeHeadings rewrites heading lines with a single space between
// the hash run and the text.
func normalizeHeadings(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
		text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		lines[i] = strings.Repeat("#", level) + " " + text
	}
	return strings.Join(lines, "\n")
}

// normalizeParagraphs trims paragraph whitespace, drops empty blocks,
// and collapses single line breaks inside a paragraph to spaces.
// Bullet-list blocks keep their internal line breaks.
func normalizeParagraphs(content string) string {
	var cleaned []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if !isListBlock(para) {
			para = strings.Join(strings.Fields(strings.ReplaceAll(para, "\n", " ")), " ")
		}
		cleaned = append(cleaned, para)
	}
	return strings.Join(cleaned, "\n\n")
}

func isListBlock(para string) bool {
	for _, line := range strings.Split(para, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
			return true
		}
	}
	return false
}

// wordyPhrases maps wordy constructions to concise replacements,
// applied in a fixed order.
var wordyPhrases = []struct {
	wordy   string
	concise string
}{
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"at this point in time", "now"},
	{"for the purpose of", "to"},
	{"in the event that", "if"},
	{"take into consideration", "consider"},
	{"make a decision", "decide"},
	{"come to a conclusion", "conclude"},
	{"it is important to note that", ""},
	{"it should be mentioned that", ""},
	{"it is worth noting that", ""},
}

func condensePhrases(content string) string {
	for _, sub := range wordyPhrases {
		content = strings.ReplaceAll(content, sub.wordy, sub.concise)
	}
	return content
}

var transitionStarters = []string{
	"However,", "Furthermore,", "Additionally,", "Moreover,",
	"In contrast,", "Similarly,", "Therefore,", "Consequently,",
}

// insertTransitions prepends a transition word to substantial
// paragraphs that lack one, chosen from the adjacent paragraph's
// sentiment keywords.
func insertTransitions(content string) string {
	paragraphs := strings.Split(content, "\n\n")

	for i, para := range paragraphs {
		if i == 0 || core.CountWords(para) <= 20 || strings.HasPrefix(para, "#") {
			continue
		}
		if startsWithTransition(para) {
			continue
		}

		lower := strings.ToLower(para)
		prevLower := strings.ToLower(paragraphs[i-1])
		switch {
		case strings.Contains(lower, "benefit") || strings.Contains(lower, "advantage"):
			if strings.Contains(prevLower, "challenge") {
				paragraphs[i] = "However, " + para
			} else {
				paragraphs[i] = "Additionally, " + para
			}
		case strings.Contains(lower, "challenge") || strings.Contains(lower, "difficult"):
			paragraphs[i] = "However, " + para
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

func startsWithTransition(para string) bool {
	trimmed := strings.TrimSpace(para)
	for _, starter := range transitionStarters {
		if strings.HasPrefix(trimmed, starter) {
			return true
		}
	}
	return false
}

// splitLongSentences breaks sentences over 30 words in two, at the
// first " and " or " which " junction. Headings and list blocks are
// left alone, and paragraph boundaries are preserved.
func splitLongSentences(content string) string {
	paragraphs := strings.Split(content, "\n\n")

	for i, para := range paragraphs {
		if strings.HasPrefix(para, "#") || isListBlock(para) {
			continue
		}

		trailing := strings.HasSuffix(para, ".")
		var sentences []string
		for _, sentence := range strings.Split(para, ".") {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			if core.CountWords(sentence) > 30 {
				if first, second, ok := strings.Cut(sentence, " and "); ok {
					sentences = append(sentences, strings.TrimSpace(first), strings.TrimSpace(second))
					continue
				}
				if first, second, ok := strings.Cut(sentence, " which "); ok {
					sentences = append(sentences, strings.TrimSpace(first), "This "+strings.TrimSpace(second))
					continue
				}
			}
			sentences = append(sentences, sentence)
		}

		if len(sentences) == 0 {
			continue
		}
		joined := strings.Join(sentences, ". ")
		if trailing {
			joined += "."
		}
		paragraphs[i] = joined
	}

	return strings.Join(paragraphs, "\n\n")
}

// grammarFixes collapses spacing and punctuation slips, applied in a
// fixed order.
var grammarFixes = []struct {
	incorrect string
	correct   string
}{
	{" ,", ","},
	{" .", "."},
	{",,", ","},
	{"..", "."},
	{"  ", " "},
}

// fixGrammarSpacing applies the substitution table and capitalizes the
// first letter after a sentence boundary.
func fixGrammarSpacing(content string) string {
	for _, fix := range grammarFixes {
		content = strings.ReplaceAll(content, fix.incorrect, fix.correct)
	}

	sentences := strings.Split(content, ". ")
	for i, sentence := range sentences {
		if sentence == "" {
			continue
		}
		first := sentence[0]
		if first >= 'a' && first <= 'z' {
			sentences[i] = strings.ToUpper(sentence[:1]) + sentence[1:]
		}
	}
	return strings.Join(sentences, ". ")
}

// trackImprovements diffs word, heading, paragraph, and transition
// counts between the original and edited text.
func trackImprovements(original, edited string) []string {
	var improvements []string

	originalWords := core.CountWords(original)
	editedWords := core.CountWords(edited)
	switch {
	case editedWords < originalWords:
		improvements = append(improvements, fmt.Sprintf("Reduced word count by %d words for better conciseness", originalWords-editedWords))
	case editedWords > originalWords:
		improvements = append(improvements, fmt.Sprintf("Expanded content by %d words for better clarity", editedWords-originalWords))
	}

	if strings.Count(edited, "#") > strings.Count(original, "#") {
		improvements = append(improvements, "Added headings to improve content structure")
	}

	if len(core.Paragraphs(edited)) != len(core.Paragraphs(original)) {
		improvements = append(improvements, "Reorganized content into better paragraph structure")
	}

	transitions := []string{"However", "Furthermore", "Additionally", "Moreover", "Therefore"}
	originalTransitions, editedTransitions := 0, 0
	for _, t := range transitions {
		originalTransitions += strings.Count(original, t)
		editedTransitions += strings.Count(edited, t)
	}
	if editedTransitions > originalTransitions {
		improvements = append(improvements, "Added transition words to improve flow")
	}

	if len(improvements) == 0 {
		improvements = append(improvements, "Made minor improvements to clarity and readability")
	}

	return improvements
}

// editingNotes compares the validator reports before and after the
// transforms.
func editingNotes(before, after analyze.ContentReport, req core.Requirements) []string {
	var notes []string

	if after.QualityScore > before.QualityScore {
		notes = append(notes, fmt.Sprintf("Quality score improved from %.0f to %.0f", before.QualityScore, after.QualityScore))
	}
	if len(after.Issues) < len(before.Issues) {
		notes = append(notes, fmt.Sprintf("Resolved %d content issues", len(before.Issues)-len(after.Issues)))
	}
	if after.ReadabilityScore > before.ReadabilityScore {
		notes = append(notes, fmt.Sprintf("Improved readability score from %.1f to %.1f", before.ReadabilityScore, after.ReadabilityScore))
	}

	target := req.WordCount
	diff := after.WordCount - target
	if diff < 0 {
		diff = -diff
	}
	if float64(diff) <= float64(target)*0.1 {
		notes = append(notes, fmt.Sprintf("Content length optimized to target (%d words)", after.WordCount))
	}

	notes = append(notes,
		"Applied standard editorial best practices",
		"Ensured consistency in tone and style")

	return notes
}

// recommendations returns up to five follow-up suggestions: a quality
// band verdict, the top remaining issues, word count alignment, and
// missing keywords.
func (e *Editor) recommendations(edited string, report analyze.ContentReport, req core.Requirements) []string {
	var recs []string

	switch {
	case report.QualityScore >= 90:
		recs = append(recs,
			"Excellent content quality - ready for publication",
			"Consider this content for featured placement or promotion")
	case report.QualityScore >= 80:
		recs = append(recs,
			"Good content quality - minor improvements may enhance impact",
			"Content is ready for publication")
	case report.QualityScore >= 70:
		recs = append(recs,
			"Content needs minor improvements before publication",
			"Consider additional review of structure and clarity")
	default:
		recs = append(recs,
			"Content requires significant improvements",
			"Recommend additional editing pass before publication")
	}

	issues := report.Issues
	if len(issues) > 3 {
		issues = issues[:3]
	}
	for _, issue := range issues {
		recs = append(recs, "Address: "+issue)
	}

	words := report.WordCount
	target := req.WordCount
	if float64(words) < float64(target)*0.9 {
		recs = append(recs, fmt.Sprintf("Consider expanding content to reach target word count (%d words)", target))
	} else if float64(words) > float64(target)*1.1 {
		recs = append(recs, fmt.Sprintf("Consider condensing content to meet target word count (%d words)", target))
	}

	if len(req.SEOKeywords) > 0 {
		lower := strings.ToLower(edited)
		var missing []string
		for _, kw := range req.SEOKeywords {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				missing = append(missing, kw)
			}
		}
		if len(missing) > 0 {
			recs = append(recs, "Consider incorporating missing SEO keywords: "+strings.Join(missing, ", "))
		}
	}

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
