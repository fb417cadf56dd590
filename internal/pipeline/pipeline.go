// Package pipeline drives the five stage content creation workflow:
// plan, research, write, edit, optimize, then the final report. Stages
// run strictly in sequence; each consumes the previous stage's output
// and the shared requirements.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentforge/internal/coordinator"
	"contentforge/internal/core"
	"contentforge/internal/editor"
	"contentforge/internal/logger"
	"contentforge/internal/research"
	"contentforge/internal/search"
	"contentforge/internal/seo"
	"contentforge/internal/writer"
)

// Pipeline orchestrates one content creation run end to end.
type Pipeline struct {
	planner    Planner
	researcher TopicResearcher
	writer     ContentWriter
	editor     ContentEditor
	optimizer  SEOOptimizer
}

// NewPipeline creates a pipeline from explicit stage implementations.
func NewPipeline(planner Planner, researcher TopicResearcher, contentWriter ContentWriter, contentEditor ContentEditor, optimizer SEOOptimizer) *Pipeline {
	return &Pipeline{
		planner:    planner,
		researcher: researcher,
		writer:     contentWriter,
		editor:     contentEditor,
		optimizer:  optimizer,
	}
}

// NewDefaultPipeline wires the standard stages around the given search
// provider.
func NewDefaultPipeline(provider search.Provider) *Pipeline {
	return NewPipeline(
		coordinator.NewCoordinator(),
		research.NewResearcher(provider, research.DefaultOptions()),
		writer.NewWriter(),
		editor.NewEditor(),
		seo.NewOptimizer(),
	)
}

// StageTiming records how long one stage took.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// RunStats tracks execution metrics for one run.
type RunStats struct {
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	ProcessingTime time.Duration `json:"processing_time"`
	StageTimings   []StageTiming `json:"stage_timings"`
}

// RunResult is the complete output of one pipeline run.
type RunResult struct {
	RunID        string                   `json:"run_id"`
	Requirements core.Requirements        `json:"requirements"`
	Plan         *coordinator.Plan        `json:"plan"`
	Research     *research.Artifact       `json:"research"`
	Draft        *writer.Draft            `json:"draft"`
	Edit         *editor.Edit             `json:"edit"`
	SEO          *seo.Optimization        `json:"seo"`
	Report       *coordinator.FinalReport `json:"report"`
	FinalContent string                   `json:"final_content"`
	Stats        RunStats                 `json:"stats"`
}

// Run executes the stages in sequence. A stage failure aborts the run
// with an error naming the failed stage; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, req core.Requirements) (*RunResult, error) {
	req = req.Normalize()

	result := &RunResult{
		RunID:        uuid.NewString(),
		Requirements: req,
	}
	result.Stats.StartTime = time.Now()

	logger.Info("pipeline run started", "run_id", result.RunID, "topic", req.Topic)

	stageStart := time.Now()
	result.Plan = p.planner.CreatePlan(req)
	p.record("planning", &result.Stats, stageStart)

	var err error
	stageStart = time.Now()
	result.Research, err = p.researcher.Conduct(ctx, req.Topic, req)
	p.record("research", &result.Stats, stageStart)
	if err != nil {
		return nil, fmt.Errorf("research stage: %w", err)
	}

	stageStart = time.Now()
	result.Draft, err = p.writer.Draft(ctx, result.Research, req)
	p.record("writing", &result.Stats, stageStart)
	if err != nil {
		return nil, fmt.Errorf("writing stage: %w", err)
	}

	stageStart = time.Now()
	result.Edit, err = p.editor.Edit(result.Draft.Content, req)
	p.record("editing", &result.Stats, stageStart)
	if err != nil {
		return nil, fmt.Errorf("editing stage: %w", err)
	}

	stageStart = time.Now()
	result.SEO, err = p.optimizer.Optimize(result.Edit.EditedContent, req)
	p.record("seo", &result.Stats, stageStart)
	if err != nil {
		return nil, fmt.Errorf("seo stage: %w", err)
	}

	result.FinalContent = result.SEO.OptimizedContent

	stageStart = time.Now()
	result.Report = p.planner.CreateFinalReport(result.FinalContent, result.Plan, coordinator.Contributions{
		Research: result.Research,
		Writing:  result.Draft,
		Editing:  result.Edit,
		SEO:      result.SEO,
	})
	p.record("review", &result.Stats, stageStart)

	result.Stats.EndTime = time.Now()
	result.Stats.ProcessingTime = result.Stats.EndTime.Sub(result.Stats.StartTime)

	logger.Info("pipeline run completed",
		"run_id", result.RunID,
		"words", core.CountWords(result.FinalContent),
		"quality", result.Report.Quality.OverallScore,
		"seo_score", result.Report.SEOScore,
		"duration", result.Stats.ProcessingTime.String())

	return result, nil
}

func (p *Pipeline) record(stage string, stats *RunStats, start time.Time) {
	stats.StageTimings = append(stats.StageTimings, StageTiming{Stage: stage, Duration: time.Since(start)})
}
