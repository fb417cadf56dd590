package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"contentforge/internal/core"
)

// KeywordAnalysis reports how the target keywords appear in the content.
type KeywordAnalysis struct {
	TargetKeywords  []string           `json:"target_keywords"`
	KeywordDensity  map[string]float64 `json:"keyword_density"`   // Percentage of total words per keyword
	KeywordPosition map[string][]int   `json:"keyword_positions"` // Character offsets of each occurrence
	MissingKeywords []string           `json:"missing_keywords"`
}

// ContentStructure reports structural SEO signals in the content.
type ContentStructure struct {
	HasHeadings      bool     `json:"has_headings"`
	HeadingHierarchy []string `json:"heading_hierarchy"` // "H{level}: {text}" per heading, in order
	ParagraphCount   int      `json:"paragraph_count"`
	AvgParagraphLen  float64  `json:"avg_paragraph_length"` // Words per paragraph
	HasLists         bool     `json:"has_lists"`
	InternalLinks    int      `json:"internal_links"`
	WordCount        int      `json:"word_count"`
}

// MetaSuggestions holds meta tag candidates derived from the content body.
type MetaSuggestions struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SEOReport is the full output of the SEO analyzer.
type SEOReport struct {
	Keywords        KeywordAnalysis  `json:"keyword_analysis"`
	Structure       ContentStructure `json:"content_structure"`
	MetaSuggestions MetaSuggestions  `json:"meta_suggestions"`
	SEOScore        float64          `json:"seo_score"` // 0-100
	Recommendations []string         `json:"recommendations"`
}

// SEOAnalyzer scores content against target keywords and structural SEO
// heuristics. Stateless; safe for concurrent use.
type SEOAnalyzer struct{}

// NewSEOAnalyzer creates a new SEO analyzer.
func NewSEOAnalyzer() *SEOAnalyzer {
	return &SEOAnalyzer{}
}

var (
	headingMarkRe = regexp.MustCompile(`#+\s`)
	headingLineRe = regexp.MustCompile(`(?m)^(#+)\s+(.+)$`)
	listMarkRe    = regexp.MustCompile(`(?m)^\s*[-*+]\s`)
	linkRe        = regexp.MustCompile(`\[.*?\]\(.*?\)`)
)

// Analyze evaluates content against the target keywords and returns a
// full SEO report with score and recommendations.
func (a *SEOAnalyzer) Analyze(content string, targetKeywords []string) SEOReport {
	report := SEOReport{
		Keywords:        a.analyzeKeywords(content, targetKeywords),
		Structure:       a.analyzeStructure(content),
		MetaSuggestions: a.metaSuggestions(content),
	}
	report.SEOScore = seoScore(report)
	report.Recommendations = recommendations(report)
	return report
}

func (a *SEOAnalyzer) analyzeKeywords(content string, keywords []string) KeywordAnalysis {
	analysis := KeywordAnalysis{
		TargetKeywords:  keywords,
		KeywordDensity:  make(map[string]float64),
		KeywordPosition: make(map[string][]int),
	}

	lower := strings.ToLower(content)
	totalWords := core.CountWords(content)

	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		count := strings.Count(lower, kw)

		// Density is defined as zero for empty content.
		density := 0.0
		if totalWords > 0 {
			density = float64(count) / float64(totalWords) * 100
		}
		analysis.KeywordDensity[keyword] = density

		positions := []int{}
		for start := 0; ; {
			pos := strings.Index(lower[start:], kw)
			if pos < 0 {
				break
			}
			positions = append(positions, start+pos)
			start += pos + 1
		}
		analysis.KeywordPosition[keyword] = positions

		if count == 0 {
			analysis.MissingKeywords = append(analysis.MissingKeywords, keyword)
		}
	}

	return analysis
}

func (a *SEOAnalyzer) analyzeStructure(content string) ContentStructure {
	structure := ContentStructure{
		HasHeadings:    headingMarkRe.MatchString(content),
		ParagraphCount: len(core.Paragraphs(content)),
		HasLists:       listMarkRe.MatchString(content),
		InternalLinks:  len(linkRe.FindAllString(content, -1)),
		WordCount:      core.CountWords(content),
	}

	for _, m := range headingLineRe.FindAllStringSubmatch(content, -1) {
		structure.HeadingHierarchy = append(structure.HeadingHierarchy, fmt.Sprintf("H%d: %s", len(m[1]), m[2]))
	}

	paras := core.Paragraphs(content)
	if len(paras) > 0 {
		total := 0
		for _, p := range paras {
			total += core.CountWords(p)
		}
		structure.AvgParagraphLen = float64(total) / float64(len(paras))
	}

	return structure
}

func (a *SEOAnalyzer) metaSuggestions(content string) MetaSuggestions {
	first := ""
	if parts := sentenceSplitRe.Split(content, -1); len(parts) > 0 {
		first = strings.TrimSpace(parts[0])
	}

	title := first
	if len(title) > 60 {
		title = title[:60] + "..."
	}

	description := content
	if len(description) > 155 {
		description = description[:155] + "..."
	}
	description = strings.TrimSpace(strings.ReplaceAll(description, "\n", " "))

	return MetaSuggestions{Title: title, Description: description}
}

// seoScore starts at 100 and subtracts fixed penalties for missing
// keywords and weak structure, clamped to [0, 100].
func seoScore(report SEOReport) float64 {
	score := 100.0

	score -= float64(len(report.Keywords.MissingKeywords)) * 10

	if !report.Structure.HasHeadings {
		score -= 20
	}
	if report.Structure.WordCount < 300 {
		score -= 15
	}
	if report.Structure.AvgParagraphLen > 150 {
		score -= 10
	}

	return core.Clamp(score, 0, 100)
}

func recommendations(report SEOReport) []string {
	var recs []string

	if len(report.Keywords.MissingKeywords) > 0 {
		recs = append(recs, fmt.Sprintf("Include missing keywords: %s", strings.Join(report.Keywords.MissingKeywords, ", ")))
	}
	if !report.Structure.HasHeadings {
		recs = append(recs, "Add headings to improve content structure")
	}
	if report.Structure.WordCount < 300 {
		recs = append(recs, "Increase content length to at least 300 words")
	}
	if report.Structure.AvgParagraphLen > 150 {
		recs = append(recs, "Break up long paragraphs for better readability")
	}
	if !report.Structure.HasLists {
		recs = append(recs, "Consider adding bullet points or numbered lists")
	}
	if report.Structure.InternalLinks == 0 {
		recs = append(recs, "Add internal links to related content")
	}

	return recs
}
