package core

import (
	"strings"
)

// Tone identifies the writing tone requested for a piece of content.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneCasual       Tone = "Casual"
	ToneTechnical    Tone = "Technical"
	ToneAcademic     Tone = "Academic"
)

// Requirements describes one content creation request. It is built once
// per pipeline run and treated as read-only by every stage.
type Requirements struct {
	Topic          string   `json:"topic"`           // Main subject of the content
	TargetAudience string   `json:"target_audience"` // Intended readership
	WordCount      int      `json:"word_count"`      // Target length in words
	Tone           Tone     `json:"tone"`            // Requested writing tone
	ContentType    string   `json:"content_type"`    // e.g. "Blog post", "Guide", "Review"
	SEOKeywords    []string `json:"seo_keywords"`    // Target keywords, ordered by priority
}

// DefaultRequirements returns a Requirements with every optional field
// set to its documented default.
func DefaultRequirements(topic string) Requirements {
	return Requirements{
		Topic:          topic,
		TargetAudience: "General audience",
		WordCount:      1000,
		Tone:           ToneProfessional,
		ContentType:    "Blog post",
	}
}

// Normalize fills in defaults for any missing or invalid fields. Stages
// may assume a normalized Requirements never has empty audience, tone,
// content type, or a non-positive word count.
func (r Requirements) Normalize() Requirements {
	if strings.TrimSpace(r.TargetAudience) == "" {
		r.TargetAudience = "General audience"
	}
	if r.WordCount <= 0 {
		r.WordCount = 1000
	}
	switch r.Tone {
	case ToneProfessional, ToneCasual, ToneTechnical, ToneAcademic:
	default:
		r.Tone = ToneProfessional
	}
	if strings.TrimSpace(r.ContentType) == "" {
		r.ContentType = "Blog post"
	}
	return r
}

// PrimaryKeyword returns the first SEO keyword, or an empty string when
// no keywords were requested.
func (r Requirements) PrimaryKeyword() string {
	if len(r.SEOKeywords) == 0 {
		return ""
	}
	return r.SEOKeywords[0]
}

// CountWords counts whitespace-delimited tokens. Every word count in
// the pipeline goes through this helper so the numbers agree between
// stages.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Paragraphs splits text into non-empty paragraph blocks on blank lines.
func Paragraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// Clamp bounds v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
