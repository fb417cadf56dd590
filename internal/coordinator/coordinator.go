// Package coordinator implements the planning and review stage: it
// turns requirements into a task plan with quality criteria, validates
// finished content against that plan, and assembles the final run
// report.
package coordinator

import (
	"fmt"
	"strings"
	"time"

	"contentforge/internal/core"
	"contentforge/internal/editor"
	"contentforge/internal/logger"
	"contentforge/internal/research"
	"contentforge/internal/seo"
	"contentforge/internal/writer"
)

// Task is one step in the content creation plan.
type Task struct {
	Name          string   `json:"name"`
	Agent         string   `json:"agent"`
	Description   string   `json:"description"`
	Deliverables  []string `json:"deliverables"`
	Dependencies  []string `json:"dependencies,omitempty"`
	EstimatedTime string   `json:"estimated_time"`
}

// Range bounds an acceptable numeric band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StructureRequirements lists the structural elements content must have.
type StructureRequirements struct {
	HasIntroduction    bool `json:"has_introduction"`
	HasConclusion      bool `json:"has_conclusion"`
	HasHeadings        bool `json:"has_headings"`
	MaxParagraphLength int  `json:"max_paragraph_length"`
}

// SEORequirements lists the SEO bands content should land in.
type SEORequirements struct {
	KeywordDensity        Range `json:"keyword_density"` // Percentage band
	MetaTitleLength       Range `json:"meta_title_length"`
	MetaDescriptionLength Range `json:"meta_description_length"`
}

// QualityCriteria is the acceptance bar derived from the requirements.
type QualityCriteria struct {
	MinimumWordCount float64               `json:"minimum_word_count"` // 90% of target
	MaximumWordCount float64               `json:"maximum_word_count"` // 110% of target
	RequiredKeywords []string              `json:"required_keywords"`
	ReadabilityScore float64               `json:"readability_score"` // Minimum acceptable
	Structure        StructureRequirements `json:"structure_requirements"`
	SEO              SEORequirements       `json:"seo_requirements"`
}

// Timeline estimates the run duration per phase.
type Timeline struct {
	EstimatedDuration string `json:"estimated_duration"`
	ResearchPhase     string `json:"research_phase"`
	WritingPhase      string `json:"writing_phase"`
	EditingPhase      string `json:"editing_phase"`
	SEOPhase          string `json:"seo_phase"`
	ReviewPhase       string `json:"review_phase"`
}

// Plan is the coordinator's blueprint for one content creation run.
type Plan struct {
	Topic           string          `json:"topic"`
	TargetAudience  string          `json:"target_audience"`
	WordCount       int             `json:"word_count"`
	Tone            core.Tone       `json:"tone"`
	SEOKeywords     []string        `json:"seo_keywords"`
	ContentType     string          `json:"content_type"`
	Tasks           []Task          `json:"tasks"`
	QualityCriteria QualityCriteria `json:"quality_criteria"`
	Timeline        Timeline        `json:"timeline"`
}

// WordCountCheck reports the length validation outcome.
type WordCountCheck struct {
	Current     int    `json:"current"`
	TargetRange string `json:"target_range"`
	Passed      bool   `json:"passed"`
}

// StructureCheck reports the structural validation outcome.
type StructureCheck struct {
	HasIntroduction bool `json:"has_introduction"`
	HasConclusion   bool `json:"has_conclusion"`
	HasHeadings     bool `json:"has_headings"`
	Passed          bool `json:"passed"`
}

// Validation is the outcome of checking content against a plan.
type Validation struct {
	OverallScore       float64        `json:"overall_score"` // 0-100, share of passed checks
	Passed             bool           `json:"passed"`        // OverallScore >= 80
	WordCount          WordCountCheck `json:"word_count"`
	Structure          StructureCheck `json:"structure"`
	Feedback           []string       `json:"feedback"`
	ImprovementsNeeded []string       `json:"improvements_needed"`
}

// Contributions references every stage output for the final report.
type Contributions struct {
	Research *research.Artifact `json:"research,omitempty"`
	Writing  *writer.Draft      `json:"writing,omitempty"`
	Editing  *editor.Edit       `json:"editing,omitempty"`
	SEO      *seo.Optimization  `json:"seo,omitempty"`
}

// ContentMetadata describes the finished content.
type ContentMetadata struct {
	Topic          string    `json:"topic"`
	WordCount      int       `json:"word_count"`
	TargetAudience string    `json:"target_audience"`
	ContentType    string    `json:"content_type"`
	CreationDate   time.Time `json:"creation_date"`
}

// FinalReport is the coordinator's closing summary of a run.
type FinalReport struct {
	Metadata        ContentMetadata `json:"content_metadata"`
	Quality         Validation      `json:"quality_assessment"`
	Contributions   Contributions   `json:"agent_contributions"`
	SEOScore        float64         `json:"seo_summary"`
	Recommendations []string        `json:"recommendations"`
	NextSteps       []string        `json:"next_steps"`
}

// Coordinator plans runs and reviews their output. Stateless.
type Coordinator struct {
	now func() time.Time
}

// NewCoordinator creates the planning and review stage.
func NewCoordinator() *Coordinator {
	return &Coordinator{now: time.Now}
}

// CreatePlan derives the task sequence, quality criteria, and timeline
// from the requirements. Missing fields fall back to defaults; plan
// creation never fails.
func (c *Coordinator) CreatePlan(req core.Requirements) *Plan {
	req = req.Normalize()

	plan := &Plan{
		Topic:           req.Topic,
		TargetAudience:  req.TargetAudience,
		WordCount:       req.WordCount,
		Tone:            req.Tone,
		SEOKeywords:     req.SEOKeywords,
		ContentType:     req.ContentType,
		Tasks:           taskSequence(req),
		QualityCriteria: qualityCriteria(req),
		Timeline:        estimateTimeline(req.WordCount),
	}

	logger.Info("content plan created", "topic", req.Topic, "tasks", len(plan.Tasks), "target_words", req.WordCount)

	return plan
}

func taskSequence(req core.Requirements) []Task {
	return []Task{
		{
			Name:          "research",
			Agent:         "researcher",
			Description:   fmt.Sprintf("Research comprehensive information about '%s'", req.Topic),
			Deliverables:  []string{"research_summary", "key_facts", "source_references"},
			EstimatedTime: "15 minutes",
		},
		{
			Name:          "content_writing",
			Agent:         "writer",
			Description:   fmt.Sprintf("Write a %d-word %s", req.WordCount, strings.ToLower(req.ContentType)),
			Deliverables:  []string{"first_draft"},
			Dependencies:  []string{"research"},
			EstimatedTime: "20 minutes",
		},
		{
			Name:          "editing",
			Agent:         "editor",
			Description:   "Review and improve content for clarity, flow, and grammar",
			Deliverables:  []string{"edited_content", "improvement_notes"},
			Dependencies:  []string{"content_writing"},
			EstimatedTime: "10 minutes",
		},
		{
			Name:          "seo_optimization",
			Agent:         "seo",
			Description:   "Optimize content for SEO with keywords: " + strings.Join(req.SEOKeywords, ", "),
			Deliverables:  []string{"seo_optimized_content", "meta_tags", "seo_report"},
			Dependencies:  []string{"editing"},
			EstimatedTime: "10 minutes",
		},
		{
			Name:          "final_review",
			Agent:         "coordinator",
			Description:   "Conduct final quality assurance and approval",
			Deliverables:  []string{"final_content", "quality_report"},
			Dependencies:  []string{"seo_optimization"},
			EstimatedTime: "5 minutes",
		},
	}
}

func qualityCriteria(req core.Requirements) QualityCriteria {
	target := float64(req.WordCount)
	return QualityCriteria{
		MinimumWordCount: target * 0.9,
		MaximumWordCount: target * 1.1,
		RequiredKeywords: req.SEOKeywords,
		ReadabilityScore: 60,
		Structure: StructureRequirements{
			HasIntroduction:    true,
			HasConclusion:      true,
			HasHeadings:        true,
			MaxParagraphLength: 150,
		},
		SEO: SEORequirements{
			KeywordDensity:        Range{Min: 0.5, Max: 3.0},
			MetaTitleLength:       Range{Min: 30, Max: 60},
			MetaDescriptionLength: Range{Min: 120, Max: 160},
		},
	}
}

// estimateTimeline scales the 60 minute base by a complexity
// multiplier for long content.
func estimateTimeline(wordCount int) Timeline {
	multiplier := 1.0
	switch {
	case wordCount > 2000:
		multiplier = 1.5
	case wordCount > 1500:
		multiplier = 1.2
	}

	return Timeline{
		EstimatedDuration: fmt.Sprintf("%d minutes", int(60*multiplier)),
		ResearchPhase:     "15 minutes",
		WritingPhase:      "20 minutes",
		EditingPhase:      "10 minutes",
		SEOPhase:          "10 minutes",
		ReviewPhase:       "5 minutes",
	}
}

var (
	introMarkers      = []string{"introduction", "overview", "begin", "start"}
	conclusionMarkers = []string{"conclusion", "summary", "final", "end"}
)

// ValidateQuality checks content against the plan's criteria: length
// inside the target band and the expected structural elements.
func (c *Coordinator) ValidateQuality(content string, plan *Plan) *Validation {
	criteria := plan.QualityCriteria

	result := &Validation{}

	words := core.CountWords(content)
	result.WordCount = WordCountCheck{
		Current:     words,
		TargetRange: fmt.Sprintf("%.0f-%.0f", criteria.MinimumWordCount, criteria.MaximumWordCount),
		Passed:      float64(words) >= criteria.MinimumWordCount && float64(words) <= criteria.MaximumWordCount,
	}
	if !result.WordCount.Passed {
		if float64(words) < criteria.MinimumWordCount {
			result.ImprovementsNeeded = append(result.ImprovementsNeeded,
				fmt.Sprintf("Content is too short (%d words). Add %.0f more words.", words, criteria.MinimumWordCount-float64(words)))
		} else {
			result.ImprovementsNeeded = append(result.ImprovementsNeeded,
				fmt.Sprintf("Content is too long (%d words). Remove %.0f words.", words, float64(words)-criteria.MaximumWordCount))
		}
	}

	lower := strings.ToLower(content)
	result.Structure = StructureCheck{
		HasIntroduction: containsAny(firstN(lower, 200), introMarkers),
		HasConclusion:   containsAny(lastN(lower, 200), conclusionMarkers),
		HasHeadings:     hasHeadings(content),
	}
	result.Structure.Passed = result.Structure.HasIntroduction &&
		result.Structure.HasConclusion &&
		result.Structure.HasHeadings

	passed := 0
	for _, ok := range []bool{result.WordCount.Passed, result.Structure.Passed} {
		if ok {
			passed++
		}
	}
	result.OverallScore = float64(passed) / 2 * 100
	result.Passed = result.OverallScore >= 80

	if result.Passed {
		result.Feedback = append(result.Feedback, "Content meets quality standards and is ready for publication.")
	} else {
		result.Feedback = append(result.Feedback, "Content needs improvements before publication.")
		result.Feedback = append(result.Feedback, result.ImprovementsNeeded...)
	}

	return result
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// hasHeadings accepts markdown hash headings or full-uppercase lines.
func hasHeadings(content string) bool {
	if strings.Contains(content, "#") {
		return true
	}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) {
			return true
		}
	}
	return false
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func lastN(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// CreateFinalReport validates the finished content and assembles the
// closing summary with every stage's contribution.
func (c *Coordinator) CreateFinalReport(content string, plan *Plan, outputs Contributions) *FinalReport {
	validation := c.ValidateQuality(content, plan)

	seoScore := 0.0
	var seoRecommendations []string
	if outputs.SEO != nil {
		seoScore = outputs.SEO.SEOScore
		seoRecommendations = outputs.SEO.Recommendations
	}

	report := &FinalReport{
		Metadata: ContentMetadata{
			Topic:          plan.Topic,
			WordCount:      core.CountWords(content),
			TargetAudience: plan.TargetAudience,
			ContentType:    plan.ContentType,
			CreationDate:   c.now(),
		},
		Quality:         *validation,
		Contributions:   outputs,
		SEOScore:        seoScore,
		Recommendations: finalRecommendations(validation, seoRecommendations),
		NextSteps:       nextSteps(validation),
	}

	logger.Info("final report created", "topic", plan.Topic, "quality", validation.OverallScore, "seo_score", seoScore)

	return report
}

func finalRecommendations(validation *Validation, seoRecommendations []string) []string {
	var recs []string
	recs = append(recs, validation.ImprovementsNeeded...)
	recs = append(recs, seoRecommendations...)

	switch {
	case validation.OverallScore >= 90:
		recs = append(recs, "Excellent content quality! Consider this for featured placement.")
	case validation.OverallScore >= 80:
		recs = append(recs, "Good content quality. Ready for publication with minor improvements.")
	default:
		recs = append(recs, "Content needs significant improvements before publication.")
	}

	return recs
}

func nextSteps(validation *Validation) []string {
	if validation.Passed {
		return []string{
			"Content is ready for publication",
			"Schedule social media promotion",
			"Consider internal linking opportunities",
			"Monitor performance metrics after publication",
		}
	}
	return []string{
		"Address quality issues identified in validation",
		"Re-run content through editing agent if needed",
		"Consider additional research if content gaps exist",
		"Re-validate content after improvements",
	}
}
