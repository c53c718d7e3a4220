package service

import (
	"context"

	"github.com/deepakm/resumatch/internal/llm"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/prompts"
)

// Sentinel is the fail-soft output a stage produces when its input is missing
// or its completion call fails. Downstream stages treat it as "no data" and
// propagate it instead of erroring.
const Sentinel = "{}"

// Stage identifies one unit of the pipeline.
type Stage string

const (
	StageJDExtractor     Stage = "jd_extractor"
	StageResumeExtractor Stage = "resume_extractor"
	StageComparator      Stage = "comparator"
)

// PipelineState carries a single candidate evaluation through the stage
// chain. A stage only runs when its output field is empty, so callers choose
// the operating mode by pre-populating fields:
//
//	JDText + ResumeText                 full pipeline, all three stages
//	JDExtracted + ResumeExtracted       comparison only
//	JDText only                         JD extraction only
//	ResumeText only                     resume extraction only
type PipelineState struct {
	JDText          string
	ResumeText      string
	JDExtracted     string
	ResumeExtracted string
	Comparison      string
}

// RequiredStages reports which stages would still run for this state, in
// execution order.
func (s *PipelineState) RequiredStages() []Stage {
	var stages []Stage
	if s.JDExtracted == "" {
		stages = append(stages, StageJDExtractor)
	}
	if s.ResumeExtracted == "" {
		stages = append(stages, StageResumeExtractor)
	}
	if s.Comparison == "" {
		stages = append(stages, StageComparator)
	}
	return stages
}

// Pipeline runs the three-stage evaluation chain. The completion client is
// passed in explicitly and shared read-only, so one Pipeline serves all
// concurrent workers.
type Pipeline struct {
	client llm.CompletionClient
	logger *logger.Logger
}

// NewPipeline creates a new pipeline executor.
func NewPipeline(client llm.CompletionClient, log *logger.Logger) *Pipeline {
	return &Pipeline{
		client: client,
		logger: log,
	}
}

func (p *Pipeline) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return p.logger
}

// Run executes the stage chain on a state and returns the populated state.
// Stages whose outputs are already present are skipped without any
// completion call, and a completion failure degrades that stage's output to
// the empty-object sentinel. Run never returns an error.
func (p *Pipeline) Run(ctx context.Context, state PipelineState) PipelineState {
	state = p.runJDExtractor(ctx, state)
	state = p.runResumeExtractor(ctx, state)
	state = p.runComparator(ctx, state)
	return state
}

func (p *Pipeline) runJDExtractor(ctx context.Context, state PipelineState) PipelineState {
	if state.JDExtracted != "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageJDExtractor)).Debug("JD already extracted, skipping")
		return state
	}

	if state.JDText == "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageJDExtractor)).Warn("JD text missing, emitting sentinel")
		state.JDExtracted = Sentinel
		return state
	}

	out, err := p.client.Complete(ctx, prompts.BuildJDPrompt(state.JDText))
	if err != nil {
		p.log(ctx).WithField(logger.FieldStage, string(StageJDExtractor)).WithError(err).Error("JD extraction failed")
		state.JDExtracted = Sentinel
		return state
	}

	state.JDExtracted = out
	return state
}

func (p *Pipeline) runResumeExtractor(ctx context.Context, state PipelineState) PipelineState {
	if state.ResumeExtracted != "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageResumeExtractor)).Debug("Resume already extracted, skipping")
		return state
	}

	if state.ResumeText == "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageResumeExtractor)).Warn("Resume text missing, emitting sentinel")
		state.ResumeExtracted = Sentinel
		return state
	}

	out, err := p.client.Complete(ctx, prompts.BuildResumePrompt(state.ResumeText))
	if err != nil {
		p.log(ctx).WithField(logger.FieldStage, string(StageResumeExtractor)).WithError(err).Error("Resume extraction failed")
		state.ResumeExtracted = Sentinel
		return state
	}

	state.ResumeExtracted = out
	return state
}

func (p *Pipeline) runComparator(ctx context.Context, state PipelineState) PipelineState {
	if state.Comparison != "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageComparator)).Debug("Comparison already present, skipping")
		return state
	}

	// Missing data costs nothing: a sentinel on either side short-circuits
	// the comparison without a completion call.
	if state.JDExtracted == Sentinel || state.ResumeExtracted == Sentinel ||
		state.JDExtracted == "" || state.ResumeExtracted == "" {
		p.log(ctx).WithField(logger.FieldStage, string(StageComparator)).Warn("Missing extracted data, emitting sentinel")
		state.Comparison = Sentinel
		return state
	}

	out, err := p.client.Complete(ctx, prompts.BuildComparatorPrompt(state.JDExtracted, state.ResumeExtracted))
	if err != nil {
		p.log(ctx).WithField(logger.FieldStage, string(StageComparator)).WithError(err).Error("Comparison failed")
		state.Comparison = Sentinel
		return state
	}

	state.Comparison = out
	return state
}
