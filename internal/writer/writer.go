// Package writer implements the drafting stage: it plans sections from
// the research outline, renders each through a section-kind specific
// template, and reports readability, tone, and structure metadata for
// the assembled draft.
package writer

import (
	"context"
	"fmt"
	"strings"

	"contentforge/internal/core"
	"contentforge/internal/llm"
	"contentforge/internal/logger"
	"contentforge/internal/research"
)

// SectionKind classifies an outline section so the right renderer runs.
type SectionKind int

const (
	SectionGeneral SectionKind = iota
	SectionIntroduction
	SectionConclusion
	SectionBenefits
	SectionChallenges
	SectionBestPractices
	SectionFuture
)

func (k SectionKind) String() string {
	switch k {
	case SectionIntroduction:
		return "introduction"
	case SectionConclusion:
		return "conclusion"
	case SectionBenefits:
		return "benefits"
	case SectionChallenges:
		return "challenges"
	case SectionBestPractices:
		return "best practices"
	case SectionFuture:
		return "future outlook"
	default:
		return "general"
	}
}

// ClassifySection maps an outline title to its section kind by keyword.
func ClassifySection(title string) SectionKind {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "introduction"):
		return SectionIntroduction
	case strings.Contains(lower, "conclusion"):
		return SectionConclusion
	case strings.Contains(lower, "benefit"), strings.Contains(lower, "advantage"):
		return SectionBenefits
	case strings.Contains(lower, "challenge"), strings.Contains(lower, "consideration"):
		return SectionChallenges
	case strings.Contains(lower, "practice"), strings.Contains(lower, "tip"):
		return SectionBestPractices
	case strings.Contains(lower, "future"), strings.Contains(lower, "outlook"):
		return SectionFuture
	default:
		return SectionGeneral
	}
}

// ContentPlan is the section-level plan the draft is rendered from.
type ContentPlan struct {
	Topic              string         `json:"topic"`
	TargetWordCount    int            `json:"target_word_count"`
	Tone               core.Tone      `json:"tone"`
	TargetAudience     string         `json:"target_audience"`
	ContentType        string         `json:"content_type"`
	Outline            []string       `json:"outline"`
	KeyPoints          []string       `json:"key_points"`
	Statistics         []string       `json:"statistics"`
	Quotes             []string       `json:"quotes"`
	SectionWordTargets map[string]int `json:"section_word_targets"`
}

// ReadabilityMetrics reports sentence-length based readability for the
// draft. The score runs 0 to 100, higher is easier to read.
type ReadabilityMetrics struct {
	Score             float64  `json:"score"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	Assessment        string   `json:"assessment"`
	Recommendations   []string `json:"recommendations"`
}

// ToneAnalysis compares the detected writing tone against the target.
type ToneAnalysis struct {
	TargetTone      core.Tone `json:"target_tone"`
	DetectedTone    core.Tone `json:"detected_tone"`
	ToneMatch       bool      `json:"tone_match"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations"`
}

// StructureAnalysis summarizes the draft's heading and paragraph shape.
type StructureAnalysis struct {
	ParagraphCount     int     `json:"paragraph_count"`
	HeadingCount       int     `json:"heading_count"`
	AvgParagraphLength float64 `json:"avg_paragraph_length"`
	HasProperStructure bool    `json:"has_proper_structure"`
	StructureScore     int     `json:"structure_score"`
}

// Draft is the writing stage output.
type Draft struct {
	Content      string             `json:"content"`
	Plan         ContentPlan        `json:"content_plan"`
	WordCount    int                `json:"word_count"`
	Readability  ReadabilityMetrics `json:"readability_metrics"`
	ToneAnalysis ToneAnalysis       `json:"tone_analysis"`
	Structure    StructureAnalysis  `json:"structure_analysis"`
	WritingNotes []string           `json:"writing_notes"`
}

// Writer renders research into a structured draft. Rendering is fully
// template-driven; an optional Generator replaces the per-section
// templates when configured and falls back to them on failure.
type Writer struct {
	generator llm.Generator
}

// NewWriter creates a template-backed writing stage.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterWithGenerator creates a writing stage that asks generator
// for each section body and keeps the templates as the fallback path.
func NewWriterWithGenerator(generator llm.Generator) *Writer {
	return &Writer{generator: generator}
}

// Draft plans sections from the research artifact and requirements,
// renders and assembles them, and computes draft metadata.
func (w *Writer) Draft(ctx context.Context, artifact *research.Artifact, req core.Requirements) (*Draft, error) {
	req = req.Normalize()
	plan := w.buildPlan(artifact, req)

	sections := make([]string, 0, len(plan.Outline))
	for _, title := range plan.Outline {
		target := plan.SectionWordTargets[title]
		if target == 0 {
			target = 150
		}
		sections = append(sections, w.renderSection(ctx, title, plan, target))
	}

	content := assemble(plan.Topic, plan.Outline, sections)

	draft := &Draft{
		Content:      content,
		Plan:         plan,
		WordCount:    core.CountWords(content),
		Readability:  analyzeReadability(content),
		ToneAnalysis: analyzeTone(content, req.Tone),
		Structure:    analyzeStructure(content),
	}
	draft.WritingNotes = writingNotes(plan, draft.WordCount)

	logger.Info("draft created", "topic", plan.Topic, "sections", len(plan.Outline), "words", draft.WordCount)

	return draft, nil
}

// buildPlan derives the content plan: the research outline (or a
// default), copied research findings, and per-section word targets.
func (w *Writer) buildPlan(artifact *research.Artifact, req core.Requirements) ContentPlan {
	topic := req.Topic
	var outline, keyPoints, statistics, quotes []string
	if artifact != nil {
		if artifact.Topic != "" {
			topic = artifact.Topic
		}
		outline = artifact.ContentOutline
		keyPoints = artifact.KeyFacts
		statistics = artifact.Statistics
		quotes = artifact.ExpertQuotes
	}
	if len(outline) == 0 {
		outline = defaultOutline(topic)
	}

	return ContentPlan{
		Topic:              topic,
		TargetWordCount:    req.WordCount,
		Tone:               req.Tone,
		TargetAudience:     req.TargetAudience,
		ContentType:        req.ContentType,
		Outline:            outline,
		KeyPoints:          keyPoints,
		Statistics:         statistics,
		Quotes:             quotes,
		SectionWordTargets: sectionWordTargets(outline, req.WordCount),
	}
}

func defaultOutline(topic string) []string {
	return []string{
		"Introduction to " + topic,
		"Understanding " + topic,
		"Key Benefits and Advantages",
		"Challenges and Considerations",
		"Best Practices and Tips",
		"Future Outlook",
		"Conclusion",
	}
}

// sectionWordTargets distributes the total budget: 15% to the first
// section, 10% to the last, the rest split evenly, 50 words minimum.
func sectionWordTargets(outline []string, totalWords int) map[string]int {
	targets := make(map[string]int, len(outline))
	n := len(outline)
	if n == 0 {
		return targets
	}

	mainWeight := 0.0
	if n > 2 {
		mainWeight = 0.75 / float64(n-2)
	}
	for i, title := range outline {
		var weight float64
		switch {
		case i == 0:
			weight = 0.15
		case i == n-1:
			weight = 0.10
		default:
			weight = mainWeight
		}
		words := int(float64(totalWords) * weight)
		if words < 50 {
			words = 50
		}
		targets[title] = words
	}
	return targets
}

// renderSection produces one section body. The generator path is tried
// first when configured; any failure falls through to the templates.
func (w *Writer) renderSection(ctx context.Context, title string, plan ContentPlan, targetWords int) string {
	if w.generator != nil {
		prompt := fmt.Sprintf("Write the %q section of a %s about %s for %s in a %s tone, around %d words.",
			title, strings.ToLower(plan.ContentType), plan.Topic, plan.TargetAudience, strings.ToLower(string(plan.Tone)), targetWords)
		text, err := w.generator.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			logger.Warn("generator failed, using template section", "section", title, "backend", w.generator.Name(), "reason", err.Error())
		}
	}

	switch ClassifySection(title) {
	case SectionIntroduction:
		return renderIntroduction(plan.Topic, plan.Tone, targetWords)
	case SectionConclusion:
		return renderConclusion(plan.Topic, plan.Tone, targetWords)
	case SectionBenefits:
		return renderBenefits(plan.Topic, plan.KeyPoints, plan.Statistics)
	case SectionChallenges:
		return renderChallenges(plan.Topic)
	case SectionBestPractices:
		return renderBestPractices(plan.Topic)
	case SectionFuture:
		return renderFuture(plan.Topic)
	default:
		return renderGeneral(title, plan.Topic, plan.KeyPoints)
	}
}

// toneKey collapses the tone set to the three template families.
// Academic and anything unrecognized render with the Professional
// templates.
func toneKey(tone core.Tone) core.Tone {
	switch tone {
	case core.ToneCasual, core.ToneTechnical:
		return tone
	default:
		return core.ToneProfessional
	}
}

func renderIntroduction(topic string, tone core.Tone, targetWords int) string {
	templates := map[core.Tone]string{
		core.ToneProfessional: fmt.Sprintf("In today's rapidly evolving landscape, %s has emerged as a critical factor for success. Understanding its implications and applications can provide significant advantages for organizations and individuals alike. This comprehensive guide explores the essential aspects of %s, providing insights that can help you navigate this important subject effectively.", topic, topic),
		core.ToneCasual:       fmt.Sprintf("Have you ever wondered about %s? You're not alone! This fascinating subject has been gaining attention lately, and for good reason. Whether you're just getting started or looking to deepen your understanding, this guide will walk you through everything you need to know about %s in a clear, accessible way.", topic, topic),
		core.ToneTechnical:    fmt.Sprintf("%s represents a significant development in the field, offering both opportunities and challenges for implementation. This analysis provides a comprehensive examination of %s, including its technical foundations, practical applications, and strategic implications for stakeholders.", topic, topic),
	}

	intro := templates[toneKey(tone)]
	if core.CountWords(intro) < targetWords {
		intro += fmt.Sprintf("\n\nThroughout this article, we'll examine the key components of %s, discuss its benefits and challenges, and provide practical insights that you can apply immediately. Our goal is to equip you with the knowledge and understanding necessary to make informed decisions about %s.", topic, topic)
	}
	return intro
}

func renderConclusion(topic string, tone core.Tone, targetWords int) string {
	templates := map[core.Tone]string{
		core.ToneProfessional: fmt.Sprintf("In conclusion, %s represents a significant opportunity for those who approach it strategically. The key to success lies in understanding its fundamental principles, recognizing both opportunities and challenges, and implementing best practices consistently. As the landscape continues to evolve, staying informed and adaptable will be crucial for maximizing the benefits of %s.", topic, topic),
		core.ToneCasual:       fmt.Sprintf("So there you have it, everything you need to know about %s! Remember, the key is to start small, stay consistent, and keep learning as you go. Don't be afraid to experiment and find what works best for your situation. With the right approach, %s can make a real difference in achieving your goals.", topic, topic),
		core.ToneTechnical:    fmt.Sprintf("The analysis of %s reveals significant potential for implementation across various contexts. Success depends on careful planning, thorough understanding of requirements, and systematic execution of best practices. Future developments in this area warrant continued monitoring and evaluation.", topic),
	}

	conclusion := templates[toneKey(tone)]
	if core.CountWords(conclusion) < targetWords {
		conclusion += fmt.Sprintf("\n\nAs you move forward with implementing %s, remember that continuous learning and adaptation are key. Consider how these insights apply to your specific situation and take the first steps toward implementation today.", topic)
	}
	return conclusion
}

func renderBenefits(topic string, keyPoints, statistics []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The advantages of %s are numerous and significant. Here are the key benefits you should know about:\n\n", topic)

	benefits := []string{
		fmt.Sprintf("**Enhanced Efficiency**: %s streamlines processes and reduces unnecessary complexity.", topic),
		fmt.Sprintf("**Improved Outcomes**: Organizations implementing %s often see measurable improvements in results.", topic),
		"**Cost-Effectiveness**: The long-term benefits typically outweigh initial implementation costs.",
	}
	for _, benefit := range benefits {
		b.WriteString(benefit)
		b.WriteString("\n\n")
	}

	if len(statistics) > 0 {
		b.WriteString("The data supports these benefits:\n\n")
		for _, stat := range capStrings(statistics, 2) {
			fmt.Fprintf(&b, "- %s\n", stat)
		}
		b.WriteString("\n")
	}

	if len(keyPoints) > 0 {
		b.WriteString("Research indicates that:\n\n")
		for _, point := range capStrings(keyPoints, 2) {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}

	return strings.TrimSpace(b.String())
}

func renderChallenges(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "While %s offers significant benefits, it's important to be aware of potential challenges and considerations:\n\n", topic)

	challenges := []string{
		fmt.Sprintf("**Implementation Complexity**: Getting started with %s may require significant planning and resources.", topic),
		"**Learning Curve**: Team members may need training and time to adapt to new approaches.",
		"**Initial Costs**: Upfront investment may be substantial, though long-term ROI is typically positive.",
		"**Change Management**: Organizations must be prepared to manage the transition effectively.",
	}
	for _, challenge := range challenges {
		b.WriteString(challenge)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Despite these challenges, most organizations find that the benefits of %s far outweigh the difficulties. The key is proper planning and realistic expectations.", topic)

	return strings.TrimSpace(b.String())
}

func renderBestPractices(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To maximize success with %s, consider these proven best practices:\n\n", topic)

	practices := []string{
		"**Start Small**: Begin with a pilot project to test approaches and learn before scaling up.",
		fmt.Sprintf("**Set Clear Goals**: Define specific, measurable objectives for your %s initiative.", topic),
		"**Invest in Training**: Ensure team members have the knowledge and skills needed for success.",
		"**Monitor Progress**: Regularly track metrics and adjust approaches based on results.",
		"**Stay Flexible**: Be prepared to adapt strategies as you learn and circumstances change.",
		"**Seek Expert Guidance**: Consider working with experienced professionals to accelerate progress.",
	}
	for _, practice := range practices {
		b.WriteString(practice)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Remember, success with %s is often a journey rather than a destination. Continuous improvement and learning are essential components of long-term success.", topic)

	return strings.TrimSpace(b.String())
}

func renderFuture(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Looking ahead, the future of %s appears bright with several exciting developments on the horizon:\n\n", topic)
	fmt.Fprintf(&b, "**Emerging Trends**: New approaches and technologies are constantly being developed, making %s more accessible and effective than ever before.\n\n", topic)
	fmt.Fprintf(&b, "**Increased Adoption**: As more organizations recognize the value of %s, we can expect to see broader implementation across industries.\n\n", topic)
	b.WriteString("**Innovation Opportunities**: The field continues to evolve, creating new possibilities for creative applications and solutions.\n\n")
	b.WriteString("**Integration Advances**: Future developments will likely focus on better integration with existing systems and processes.\n\n")
	fmt.Fprintf(&b, "For those considering %s, now is an excellent time to begin exploring its potential. Early adopters often have the advantage of learning and adapting before widespread adoption makes the field more competitive.", topic)

	return strings.TrimSpace(b.String())
}

func renderGeneral(title, topic string, keyPoints []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "When examining %s in the context of %s, several important factors emerge.\n\n", topic, strings.ToLower(title))

	if len(keyPoints) > 0 {
		b.WriteString("Key considerations include:\n\n")
		for _, point := range capStrings(keyPoints, 3) {
			fmt.Fprintf(&b, "- %s\n", point)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Understanding these aspects of %s is crucial for making informed decisions and achieving optimal results. Each element plays a vital role in the overall success of any %s initiative.\n\n", topic, topic)
	fmt.Fprintf(&b, "As you consider how %s relates to your specific situation, remember that context matters significantly. What works in one scenario may need adaptation for another, making careful analysis and planning essential components of success.", strings.ToLower(title))

	return strings.TrimSpace(b.String())
}

func capStrings(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

// assemble joins the title heading and sections. Sections that already
// open with a heading marker keep their own heading.
func assemble(topic string, outline, sections []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: A Comprehensive Guide\n\n", topic)

	for i, body := range sections {
		if !strings.HasPrefix(body, "#") {
			fmt.Fprintf(&b, "## %s\n\n", outline[i])
		}
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}

// analyzeReadability scores the draft on average sentence length.
func analyzeReadability(content string) ReadabilityMetrics {
	sentences := 0
	for _, s := range strings.Split(content, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := core.CountWords(content)

	if sentences == 0 {
		return ReadabilityMetrics{Assessment: "No readable content"}
	}

	avg := float64(words) / float64(sentences)
	score := 100 - avg*1.5
	if score < 0 {
		score = 0
	}

	assessment := "Difficult"
	switch {
	case score >= 80:
		assessment = "Excellent"
	case score >= 60:
		assessment = "Good"
	case score >= 40:
		assessment = "Needs Improvement"
	}

	var recommendations []string
	if score < 60 {
		recommendations = append(recommendations, "Consider breaking up long sentences for better readability")
	}
	if avg > 25 {
		recommendations = append(recommendations, "Average sentence length is high - aim for 15-20 words per sentence")
	}
	if score >= 80 {
		recommendations = append(recommendations, "Excellent readability - content is easy to understand")
	}

	return ReadabilityMetrics{
		Score:             round1(score),
		AvgSentenceLength: round1(avg),
		Assessment:        assessment,
		Recommendations:   recommendations,
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

var toneIndicators = map[core.Tone][]string{
	core.ToneProfessional: {"analysis", "implementation", "strategic", "comprehensive", "significant"},
	core.ToneCasual:       {"you", "your", "easy", "simple", "great", "awesome"},
	core.ToneTechnical:    {"system", "process", "methodology", "parameters", "optimization"},
}

// toneOrder fixes the tie-break order for tone detection.
var toneOrder = []core.Tone{core.ToneProfessional, core.ToneCasual, core.ToneTechnical}

// analyzeTone detects the dominant tone from indicator-word hits and
// compares it to the target.
func analyzeTone(content string, target core.Tone) ToneAnalysis {
	lower := strings.ToLower(content)

	detected := core.ToneProfessional
	best := -1
	bestHits := 0
	for _, tone := range toneOrder {
		hits := 0
		for _, indicator := range toneIndicators[tone] {
			if strings.Contains(lower, indicator) {
				hits++
			}
		}
		if hits > best {
			best = hits
			bestHits = hits
			detected = tone
		}
	}

	match := detected == target
	analysis := ToneAnalysis{
		TargetTone:   target,
		DetectedTone: detected,
		ToneMatch:    match,
		Confidence:   float64(bestHits) / float64(len(toneIndicators[detected])),
	}
	if !match {
		analysis.Recommendations = []string{fmt.Sprintf("Content tone appears more %s than %s", detected, target)}
	}
	return analysis
}

// analyzeStructure counts headings and paragraphs and scores the shape.
func analyzeStructure(content string) StructureAnalysis {
	headings := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			headings++
		}
	}

	paragraphs := core.Paragraphs(content)
	avgLen := 0.0
	if len(paragraphs) > 0 {
		total := 0
		for _, p := range paragraphs {
			total += core.CountWords(p)
		}
		avgLen = float64(total) / float64(len(paragraphs))
	}

	paraScore := len(paragraphs)
	if paraScore > 8 {
		paraScore = 8
	}
	score := headings*20 + paraScore*10
	if score > 100 {
		score = 100
	}

	return StructureAnalysis{
		ParagraphCount:     len(paragraphs),
		HeadingCount:       headings,
		AvgParagraphLength: avgLen,
		HasProperStructure: headings > 0 && len(paragraphs) > 2,
		StructureScore:     score,
	}
}

// writingNotes records observations about length, research usage, and
// audience targeting.
func writingNotes(plan ContentPlan, actualWords int) []string {
	var notes []string

	target := plan.TargetWordCount
	switch {
	case float64(actualWords) < float64(target)*0.9:
		notes = append(notes, fmt.Sprintf("Content is shorter than target (%d vs %d words)", actualWords, target))
	case float64(actualWords) > float64(target)*1.1:
		notes = append(notes, fmt.Sprintf("Content is longer than target (%d vs %d words)", actualWords, target))
	default:
		notes = append(notes, fmt.Sprintf("Content length is appropriate (%d words)", actualWords))
	}

	if len(plan.Statistics) > 0 {
		notes = append(notes, fmt.Sprintf("Incorporated %d statistics from research", len(plan.Statistics)))
	}
	if len(plan.Quotes) > 0 {
		notes = append(notes, fmt.Sprintf("Referenced %d expert quotes", len(plan.Quotes)))
	}

	notes = append(notes,
		"Content follows planned outline structure",
		fmt.Sprintf("Tone optimized for %s audience", plan.TargetAudience))

	return notes
}
