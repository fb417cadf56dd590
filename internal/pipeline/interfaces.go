package pipeline

import (
	"context"

	"contentforge/internal/coordinator"
	"contentforge/internal/core"
	"contentforge/internal/editor"
	"contentforge/internal/research"
	"contentforge/internal/seo"
	"contentforge/internal/writer"
)

// Planner creates the run plan and reviews the finished content.
type Planner interface {
	// CreatePlan derives tasks, quality criteria, and a timeline.
	CreatePlan(req core.Requirements) *coordinator.Plan

	// ValidateQuality checks content against the plan's criteria.
	ValidateQuality(content string, plan *coordinator.Plan) *coordinator.Validation

	// CreateFinalReport assembles the closing run summary.
	CreateFinalReport(content string, plan *coordinator.Plan, outputs coordinator.Contributions) *coordinator.FinalReport
}

// TopicResearcher gathers and structures source material for a topic.
type TopicResearcher interface {
	// Conduct researches the topic through the search collaborator.
	// Collaborator failures degrade the artifact, they never error.
	Conduct(ctx context.Context, topic string, req core.Requirements) (*research.Artifact, error)
}

// ContentWriter turns research into a structured draft.
type ContentWriter interface {
	Draft(ctx context.Context, artifact *research.Artifact, req core.Requirements) (*writer.Draft, error)
}

// ContentEditor applies the editing transforms to a draft.
type ContentEditor interface {
	Edit(content string, req core.Requirements) (*editor.Edit, error)
}

// SEOOptimizer rewrites content around the target keywords.
type SEOOptimizer interface {
	Optimize(content string, req core.Requirements) (*seo.Optimization, error)
}
