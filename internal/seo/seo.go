// Package seo implements the optimization stage: keyword injection into
// title and headings, natural density boosting, structural fixes, and
// appended FAQ and related-topics blocks, bracketed by before/after
// analyzer runs.
package seo

import (
	"fmt"
	"math"
	"strings"

	"contentforge/internal/analyze"
	"contentforge/internal/core"
	"contentforge/internal/logger"
)

// KeywordUsage describes one keyword's presence in the optimized text.
type KeywordUsage struct {
	Count            int     `json:"count"`
	Density          float64 `json:"density"` // Percentage of total words
	InTitle          bool    `json:"in_title"`
	InHeadings       bool    `json:"in_headings"`
	InFirstParagraph bool    `json:"in_first_paragraph"`
	OptimalDensity   bool    `json:"optimal_density"` // Density within [1.0, 2.5]
}

// PlacementReport scores where a keyword landed: title, headings, and
// the opening paragraph each count one point.
type PlacementReport struct {
	Score      int    `json:"score"` // 0-3
	Assessment string `json:"assessment"`
}

// KeywordReport is the per-keyword usage breakdown for the final text.
type KeywordReport struct {
	TotalWords      int                        `json:"total_words"`
	KeywordAnalysis map[string]KeywordUsage    `json:"keyword_analysis"`
	DensityAnalysis map[string]string          `json:"density_analysis"`
	Placement       map[string]PlacementReport `json:"placement_analysis"`
}

// MetaTags holds the generated meta tag set.
type MetaTags struct {
	Title         string `json:"title"` // Kept in the 30-60 character band when possible
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	OGTitle       string `json:"og:title"`
	OGDescription string `json:"og:description"`
	OGType        string `json:"og:type"`
	Robots        string `json:"robots"`
	Canonical     string `json:"canonical"`
}

// Optimization is the SEO stage output.
type Optimization struct {
	OriginalContent   string            `json:"original_content"`
	OptimizedContent  string            `json:"optimized_content"`
	TargetKeywords    []string          `json:"target_keywords"`
	SEOAnalysis       analyze.SEOReport `json:"seo_analysis"` // Analyzer report on the input
	FinalSEOAnalysis  analyze.SEOReport `json:"final_seo_analysis"`
	MetaTags          MetaTags          `json:"meta_tags"`
	OptimizationsMade []string          `json:"optimizations_made"`
	SEOScore          float64           `json:"seo_score"`
	Recommendations   []string          `json:"recommendations"`
	KeywordReport     KeywordReport     `json:"keyword_report"`
}

// Optimizer applies the SEO transforms. Stateless after construction.
type Optimizer struct {
	analyzer *analyze.SEOAnalyzer
}

// NewOptimizer creates the SEO stage.
func NewOptimizer() *Optimizer {
	return &Optimizer{analyzer: analyze.NewSEOAnalyzer()}
}

// Optimize rewrites content for the requirement's keywords and reports
// the analyzer delta. With no keywords every injection step is a no-op.
func (o *Optimizer) Optimize(content string, req core.Requirements) (*Optimization, error) {
	req = req.Normalize()
	keywords := req.SEOKeywords

	before := o.analyzer.Analyze(content, keywords)

	optimized := content
	optimized = optimizeTitle(optimized, keywords)
	optimized = optimizeHeadings(optimized, keywords)
	optimized = boostKeywordDensity(optimized, keywords)
	optimized = capParagraphLength(optimized)
	optimized = appendSEOSections(optimized, keywords)

	after := o.analyzer.Analyze(optimized, keywords)

	result := &Optimization{
		OriginalContent:   content,
		OptimizedContent:  optimized,
		TargetKeywords:    keywords,
		SEOAnalysis:       before,
		FinalSEOAnalysis:  after,
		MetaTags:          generateMetaTags(optimized, keywords, req),
		OptimizationsMade: trackOptimizations(content, optimized, keywords),
		SEOScore:          after.SEOScore,
		Recommendations:   after.Recommendations,
		KeywordReport:     buildKeywordReport(optimized, keywords),
	}

	logger.Info("seo optimization completed", "keywords", len(keywords), "score_before", before.SEOScore, "score_after", after.SEOScore)

	return result, nil
}

// optimizeTitle injects the primary keyword into the first top-level
// heading if absent. Titles with a ":" keep their subtitle.
func optimizeTitle(content string, keywords []string) string {
	if len(keywords) == 0 {
		return content
	}
	primary := keywords[0]

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		title := strings.TrimSpace(line[2:])
		if strings.Contains(strings.ToLower(title), strings.ToLower(primary)) {
			break
		}
		if before, subtitle, ok := strings.Cut(title, ":"); ok {
			if !strings.Contains(strings.ToLower(before), strings.ToLower(primary)) {
				title = primary + ": " + strings.TrimSpace(subtitle)
			}
		} else {
			title = primary + ": " + title
		}
		lines[i] = "# " + title
		break
	}
	return strings.Join(lines, "\n")
}

// optimizeHeadings rewrites recognizable second-level headings around
// the keywords, consuming keywords round-robin. Headings that match no
// rewrite pattern are left unchanged and do not consume a keyword.
func optimizeHeadings(content string, keywords []string) string {
	if len(keywords) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	keywordIndex := 0

	for i, line := range lines {
		if keywordIndex >= len(keywords) {
			break
		}
		if !strings.HasPrefix(line, "##") || strings.HasPrefix(line, "###") {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(line, "#"))
		keyword := keywords[keywordIndex]
		if strings.Contains(strings.ToLower(text), strings.ToLower(keyword)) {
			continue
		}

		lower := strings.ToLower(text)
		var rewritten string
		switch {
		case strings.Contains(lower, "benefits"), strings.Contains(lower, "advantages"):
			rewritten = keyword + " Benefits and Advantages"
		case strings.Contains(lower, "challenges"):
			rewritten = keyword + " Challenges and Solutions"
		case strings.Contains(lower, "best practices"):
			rewritten = "Best Practices for " + keyword
		case strings.Contains(lower, "future"):
			rewritten = "Future of " + keyword
		default:
			continue
		}

		lines[i] = "## " + rewritten
		keywordIndex++
	}

	return strings.Join(lines, "\n")
}

// genericReferents are replaceable stand-in terms, most specific first.
var genericReferents = []string{"this technology", "this approach", "this method", "this solution", "it"}

// boostKeywordDensity raises each keyword toward a 1.5% density target
// by replacing generic referent terms in substantial paragraphs.
func boostKeywordDensity(content string, keywords []string) string {
	for _, keyword := range keywords {
		totalWords := core.CountWords(content)
		current := strings.Count(strings.ToLower(content), strings.ToLower(keyword))
		target := int(float64(totalWords) * 0.015)
		if target < 1 {
			target = 1
		}
		if current >= target {
			continue
		}
		content = injectKeyword(content, keyword, target-current)
	}
	return content
}

func injectKeyword(content, keyword string, needed int) string {
	paragraphs := strings.Split(content, "\n\n")
	added := 0

	for i, para := range paragraphs {
		if added >= needed {
			break
		}
		if strings.HasPrefix(para, "#") || core.CountWords(para) < 20 {
			continue
		}
		if strings.Contains(strings.ToLower(para), strings.ToLower(keyword)) {
			continue
		}

		sentences := strings.Split(para, ".")
		changed := false
		for j, sentence := range sentences {
			if added >= needed {
				break
			}
			if core.CountWords(sentence) <= 10 {
				continue
			}
			lower := strings.ToLower(sentence)
			for _, term := range genericReferents {
				idx := strings.Index(lower, term)
				if idx < 0 {
					continue
				}
				sentences[j] = sentence[:idx] + keyword + sentence[idx+len(term):]
				added++
				changed = true
				break
			}
		}
		if changed {
			paragraphs[i] = strings.Join(sentences, ".")
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

// capParagraphLength resplits prose lines over 200 words into roughly
// 100-word chunks at sentence boundaries.
func capParagraphLength(content string) string {
	lines := strings.Split(content, "\n")
	var out []string

	for _, line := range lines {
		if strings.HasPrefix(line, "#") || core.CountWords(line) <= 200 {
			out = append(out, line)
			continue
		}

		var chunk []string
		for _, sentence := range strings.Split(line, ".") {
			chunk = append(chunk, sentence)
			if core.CountWords(strings.Join(chunk, " ")) > 100 {
				out = append(out, strings.TrimSpace(strings.Join(chunk, "."))+".")
				out = append(out, "")
				chunk = nil
			}
		}
		if len(chunk) > 0 {
			trailing := strings.TrimSpace(strings.Join(chunk, "."))
			if trailing != "" {
				out = append(out, trailing)
			}
		}
	}

	return strings.Join(out, "\n")
}

// appendSEOSections adds the FAQ block (two or more keywords) and the
// related-topics block (unless one is already present).
func appendSEOSections(content string, keywords []string) string {
	if len(keywords) >= 2 {
		content += "\n\n" + faqSection(keywords[0])
	}
	if len(keywords) > 0 && !strings.Contains(strings.ToLower(content), "related topics") {
		content += "\n\n" + relatedTopicsSection(keywords)
	}
	return content
}

func faqSection(primary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Frequently Asked Questions about %s\n\n", primary)

	faqs := []string{
		fmt.Sprintf("**What is %s?**\n%s is a comprehensive approach that offers numerous benefits for organizations and individuals looking to improve their outcomes.", primary, primary),
		fmt.Sprintf("**How does %s work?**\nThe implementation of %s involves several key steps and considerations that must be carefully planned and executed.", primary, primary),
		fmt.Sprintf("**What are the benefits of %s?**\nThe main benefits include improved efficiency, better results, cost-effectiveness, and competitive advantages in the marketplace.", primary),
	}
	for _, faq := range faqs {
		b.WriteString(faq)
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}

func relatedTopicsSection(keywords []string) string {
	var b strings.Builder
	b.WriteString("## Related Topics\n\n")
	b.WriteString("Explore these related subjects to deepen your understanding:\n\n")

	capped := keywords
	if len(capped) > 4 {
		capped = capped[:4]
	}
	for _, keyword := range capped {
		fmt.Fprintf(&b, "- %s Best Practices\n", keyword)
		fmt.Fprintf(&b, "- %s Implementation Guide\n", keyword)
	}

	b.WriteString("\nThese topics provide additional insights and practical guidance for your journey.")
	return b.String()
}

// generateMetaTags derives the tag set from the optimized content.
func generateMetaTags(content string, keywords []string, req core.Requirements) MetaTags {
	title := req.Topic
	if title == "" {
		title = "Untitled"
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(line[2:])
			break
		}
	}

	if len(title) > 60 {
		title = title[:57] + "..."
	} else if len(title) < 30 {
		if primary := req.PrimaryKeyword(); primary != "" && !strings.Contains(title, primary) {
			title = primary + " - " + title
		}
	}

	description := ""
	for _, para := range core.Paragraphs(content) {
		if strings.HasPrefix(para, "#") {
			continue
		}
		description = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		break
	}
	if len(description) > 160 {
		description = description[:157] + "..."
	} else if len(description) < 120 && len(keywords) > 0 {
		mention := keywords
		if len(mention) > 2 {
			mention = mention[:2]
		}
		description += fmt.Sprintf(" Learn about %s and more.", strings.Join(mention, ", "))
	}

	metaKeywords := keywords
	if len(metaKeywords) > 5 {
		metaKeywords = metaKeywords[:5]
	}

	return MetaTags{
		Title:         title,
		Description:   description,
		Keywords:      strings.Join(metaKeywords, ", "),
		OGTitle:       title,
		OGDescription: description,
		OGType:        "article",
		Robots:        "index, follow",
		Canonical:     "https://example.com/" + slugify(title),
	}
}

func slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

// trackOptimizations diffs keyword counts, headings, appended blocks,
// and the title between the original and optimized text.
func trackOptimizations(original, optimized string, keywords []string) []string {
	var optimizations []string

	originalLower := strings.ToLower(original)
	optimizedLower := strings.ToLower(optimized)

	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		before := strings.Count(originalLower, kw)
		after := strings.Count(optimizedLower, kw)
		if after > before {
			optimizations = append(optimizations, fmt.Sprintf("Increased '%s' mentions from %d to %d", keyword, before, after))
		}
	}

	if countHeadings(optimized) > countHeadings(original) {
		optimizations = append(optimizations, "Added SEO-optimized headings")
	}
	if strings.Contains(optimizedLower, "frequently asked questions") && !strings.Contains(originalLower, "frequently asked questions") {
		optimizations = append(optimizations, "Added FAQ section for long-tail keyword targeting")
	}
	if strings.Contains(optimizedLower, "related topics") && !strings.Contains(originalLower, "related topics") {
		optimizations = append(optimizations, "Added related topics section for internal linking")
	}
	if firstTitleLine(original) != firstTitleLine(optimized) {
		optimizations = append(optimizations, "Optimized title for primary keyword")
	}

	if len(optimizations) == 0 {
		optimizations = append(optimizations, "Applied general SEO best practices")
	}

	return optimizations
}

func countHeadings(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "##") {
			count++
		}
	}
	return count
}

func firstTitleLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return line
		}
	}
	return ""
}

// buildKeywordReport computes per-keyword counts, density with banded
// assessment, and placement scoring for the optimized text.
func buildKeywordReport(content string, keywords []string) KeywordReport {
	report := KeywordReport{
		TotalWords:      core.CountWords(content),
		KeywordAnalysis: make(map[string]KeywordUsage, len(keywords)),
		DensityAnalysis: make(map[string]string, len(keywords)),
		Placement:       make(map[string]PlacementReport, len(keywords)),
	}

	lower := strings.ToLower(content)
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		count := strings.Count(lower, kw)

		density := 0.0
		if report.TotalWords > 0 {
			density = float64(count) / float64(report.TotalWords) * 100
		}
		density = math.Round(density*100) / 100

		inTitle := strings.Contains(firstN(lower, 100), kw)
		inHeadings := false
		for _, line := range strings.Split(content, "\n") {
			if strings.HasPrefix(line, "#") && strings.Contains(strings.ToLower(line), kw) {
				inHeadings = true
				break
			}
		}
		inFirstPara := strings.Contains(firstN(lower, 500), kw)

		report.KeywordAnalysis[keyword] = KeywordUsage{
			Count:            count,
			Density:          density,
			InTitle:          inTitle,
			InHeadings:       inHeadings,
			InFirstParagraph: inFirstPara,
			OptimalDensity:   density >= 1.0 && density <= 2.5,
		}

		switch {
		case density < 0.5:
			report.DensityAnalysis[keyword] = "Too low - increase usage"
		case density > 3.0:
			report.DensityAnalysis[keyword] = "Too high - reduce usage"
		default:
			report.DensityAnalysis[keyword] = "Optimal range"
		}

		score := 0
		for _, hit := range []bool{inTitle, inHeadings, inFirstPara} {
			if hit {
				score++
			}
		}
		assessment := "Needs improvement"
		switch {
		case score >= 2:
			assessment = "Excellent"
		case score == 1:
			assessment = "Good"
		}
		report.Placement[keyword] = PlacementReport{Score: score, Assessment: assessment}
	}

	return report
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
