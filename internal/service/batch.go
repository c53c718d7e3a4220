package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/deepakm/resumatch/internal/domain"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/storage"
)

// DefaultWorkers is the batch worker pool size when none is configured.
const DefaultWorkers = 5

// comparisonStore is the slice of the comparison repository the orchestrator
// needs. Narrowed to an interface so tests can substitute an in-memory fake.
type comparisonStore interface {
	Upsert(ctx context.Context, result *domain.ComparisonResult) error
	ListByWorkflow(ctx context.Context, workflowID string) ([]domain.ComparisonResult, error)
}

// progressStore writes recomputed workflow aggregate counters.
type progressStore interface {
	UpdateProgress(ctx context.Context, workflowID string, p *domain.WorkflowExecution) error
}

// jdExtractionStore caches a JD extraction so later runs skip the stage.
type jdExtractionStore interface {
	SetExtracted(ctx context.Context, id, extracted string) error
}

// resumeExtractionStore caches resume extractions and marks resumes done.
type resumeExtractionStore interface {
	SetExtracted(ctx context.Context, id, extracted string) error
	MarkProcessed(ctx context.Context, id string) error
}

// BatchStores bundles the persistence surfaces the orchestrator writes to.
// Any field may be nil; a nil field simply disables that side effect.
type BatchStores struct {
	Comparisons comparisonStore
	Workflows   progressStore
	JDs         jdExtractionStore
	Resumes     resumeExtractionStore
}

// JDInput identifies the job description side of a batch. Either raw Text or
// pre-extracted JSON may be supplied; extraction runs once per batch, not per
// candidate.
type JDInput struct {
	JDID      string
	Text      string
	Extracted string
}

// Candidate is one resume to evaluate against the batch JD.
type Candidate struct {
	ResumeID  string
	Text      string
	Extracted string
}

// BatchConfig holds configuration for the batch orchestrator.
type BatchConfig struct {
	Workers int
}

// BatchOrchestrator fans candidate evaluations out over a bounded worker
// pool. Results come back in input order regardless of completion order, and
// one candidate's failure never aborts the batch.
type BatchOrchestrator struct {
	pipeline *Pipeline
	stores   BatchStores
	archive  storage.ObjectStorage
	logger   *logger.Logger
	workers  int
}

// NewBatchOrchestrator creates a new batch orchestrator. stores and archive
// may be zero-valued, in which case results are only returned, not persisted.
func NewBatchOrchestrator(
	pipeline *Pipeline,
	stores BatchStores,
	archive storage.ObjectStorage,
	log *logger.Logger,
	cfg *BatchConfig,
) *BatchOrchestrator {
	workers := DefaultWorkers
	if cfg != nil && cfg.Workers > 0 {
		workers = cfg.Workers
	}
	return &BatchOrchestrator{
		pipeline: pipeline,
		stores:   stores,
		archive:  archive,
		logger:   log,
		workers:  workers,
	}
}

func (o *BatchOrchestrator) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return o.logger
}

// RunBatch evaluates every candidate against the JD and returns one result
// per candidate, ordered identically to the input list, plus elapsed wall
// time in milliseconds. The call blocks until the whole pool drains; the
// workflow aggregate record is updated as a side channel while it waits.
func (o *BatchOrchestrator) RunBatch(ctx context.Context, jd JDInput, candidates []Candidate, workflowID string) ([]domain.ComparisonResult, int64) {
	start := time.Now()

	o.log(ctx).WithFields(logger.Fields{
		logger.FieldWorkflowID: workflowID,
		logger.FieldJDID:       jd.JDID,
		logger.FieldCount:      len(candidates),
	}).Info("Starting batch evaluation")

	// Extract the JD once up front so workers compare against a shared
	// extraction instead of redoing it per candidate.
	jdExtracted := jd.Extracted
	if jdExtracted == "" && jd.Text != "" {
		state := o.pipeline.Run(ctx, PipelineState{JDText: jd.Text})
		jdExtracted = state.JDExtracted
		o.cacheJDExtraction(ctx, jd.JDID, jdExtracted)
	}

	results := make([]domain.ComparisonResult, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = o.processCandidate(ctx, jd, jdExtracted, candidates[idx], workflowID, len(candidates))
			}
		}()
	}

	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start).Milliseconds()

	o.log(ctx).WithFields(logger.Fields{
		logger.FieldWorkflowID: workflowID,
		logger.FieldCount:      len(results),
		logger.FieldDurationMs: elapsed,
	}).Info("Batch evaluation completed")

	return results, elapsed
}

// processCandidate runs one candidate's full pipeline and persistence. Any
// failure, including a panic, is converted into an explicit Error result so
// sibling candidates are unaffected.
func (o *BatchOrchestrator) processCandidate(ctx context.Context, jd JDInput, jdExtracted string, cand Candidate, workflowID string, total int) (result domain.ComparisonResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log(ctx).WithFields(logger.Fields{
				logger.FieldWorkflowID: workflowID,
				logger.FieldResumeID:   cand.ResumeID,
			}).Errorf("Candidate processing panicked: %v", r)
			result = o.errorResult(jd, cand, workflowID, fmt.Sprint(r))
			o.persistBestEffort(ctx, &result, workflowID, total)
		}
	}()

	state := o.pipeline.Run(ctx, PipelineState{
		JDExtracted:     jdExtracted,
		ResumeText:      cand.Text,
		ResumeExtracted: cand.Extracted,
	})

	o.cacheResumeExtraction(ctx, cand, state.ResumeExtracted)

	rec := parseComparison(state.Comparison)
	resume := parseResumeData(state.ResumeExtracted)

	stability, flags := ComputeStability(resume.CareerHistory)
	rec.StabilityScore = stability
	rec.RiskFactors = mergeFlags(rec.RiskFactors, flags)
	Postprocess(rec)

	rec.ResumeID = cand.ResumeID
	rec.JDID = jd.JDID
	rec.WorkflowID = workflowID
	rec.ApplicantName = resume.Name
	rec.ApplicantEmail = resume.Email
	rec.ApplicantMobile = resume.Mobile
	rec.Timestamp = time.Now().UTC()

	if err := o.persist(ctx, rec, workflowID, total); err != nil {
		o.log(ctx).WithFields(logger.Fields{
			logger.FieldWorkflowID: workflowID,
			logger.FieldResumeID:   cand.ResumeID,
		}).WithError(err).Error("Failed to persist candidate result")
		return o.errorResult(jd, cand, workflowID, err.Error())
	}

	o.log(ctx).WithFields(logger.Fields{
		logger.FieldResumeID: cand.ResumeID,
		logger.FieldScore:    rec.MatchScore,
		logger.FieldStatus:   rec.FitCategory,
	}).Info("Candidate evaluated")

	return *rec
}

// errorResult builds the explicit failure result for one candidate.
func (o *BatchOrchestrator) errorResult(jd JDInput, cand Candidate, workflowID, reason string) domain.ComparisonResult {
	return domain.ComparisonResult{
		ResumeID:        cand.ResumeID,
		JDID:            jd.JDID,
		WorkflowID:      workflowID,
		MatchScore:      0,
		FitCategory:     domain.FitError,
		Confidence:      domain.ConfidenceLow,
		SelectionReason: reason,
		Timestamp:       time.Now().UTC(),
	}
}

// cacheJDExtraction persists a fresh JD extraction so later runs skip the
// stage. Sentinels are not cached; a failed extraction should retry.
func (o *BatchOrchestrator) cacheJDExtraction(ctx context.Context, jdID, extracted string) {
	if o.stores.JDs == nil || jdID == "" || extracted == "" || extracted == Sentinel {
		return
	}
	if err := o.stores.JDs.SetExtracted(ctx, jdID, extracted); err != nil {
		o.log(ctx).WithField(logger.FieldJDID, jdID).WithError(err).Warn("Failed to cache JD extraction")
	}
}

func (o *BatchOrchestrator) cacheResumeExtraction(ctx context.Context, cand Candidate, extracted string) {
	if o.stores.Resumes == nil || cand.ResumeID == "" || cand.Extracted != "" {
		return
	}
	if extracted == "" || extracted == Sentinel {
		return
	}
	if err := o.stores.Resumes.SetExtracted(ctx, cand.ResumeID, extracted); err != nil {
		o.log(ctx).WithField(logger.FieldResumeID, cand.ResumeID).WithError(err).Warn("Failed to cache resume extraction")
	}
}

// persist stores one candidate's result and recomputes the workflow
// aggregate counters from the authoritative stored set. No-op when workflow
// tracking is inactive.
func (o *BatchOrchestrator) persist(ctx context.Context, rec *domain.ComparisonResult, workflowID string, total int) error {
	if o.stores.Comparisons == nil || workflowID == "" {
		return nil
	}

	if err := o.stores.Comparisons.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	o.archiveResult(ctx, rec)

	if o.stores.Resumes != nil && rec.ResumeID != "" {
		if err := o.stores.Resumes.MarkProcessed(ctx, rec.ResumeID); err != nil {
			o.log(ctx).WithField(logger.FieldResumeID, rec.ResumeID).WithError(err).Warn("Failed to mark resume processed")
		}
	}

	return o.recomputeProgress(ctx, workflowID, total)
}

func (o *BatchOrchestrator) persistBestEffort(ctx context.Context, rec *domain.ComparisonResult, workflowID string, total int) {
	if err := o.persist(ctx, rec, workflowID, total); err != nil {
		o.log(ctx).WithFields(logger.Fields{
			logger.FieldWorkflowID: workflowID,
			logger.FieldResumeID:   rec.ResumeID,
		}).WithError(err).Error("Failed to persist error result")
	}
}

// archiveResult writes the full result JSON to the object archive. Archive
// failures are logged and swallowed; the stored row remains the source of
// truth.
func (o *BatchOrchestrator) archiveResult(ctx context.Context, rec *domain.ComparisonResult) {
	if o.archive == nil {
		return
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		o.log(ctx).WithError(err).Warn("Failed to marshal result for archive")
		return
	}

	key := fmt.Sprintf("results/%s/%s.json", rec.WorkflowID, rec.ResumeID)
	if err := o.archive.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		o.log(ctx).WithFields(logger.Fields{
			"storage_key": key,
		}).WithError(err).Warn("Failed to archive result")
	}
}

// recomputeProgress derives the aggregate counters from the full current
// result set for the workflow. Concurrent completions interleave freely; each
// write reflects a consistent read of the stored set, so no update is lost.
func (o *BatchOrchestrator) recomputeProgress(ctx context.Context, workflowID string, total int) error {
	if o.stores.Workflows == nil {
		return nil
	}

	stored, err := o.stores.Comparisons.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("failed to list workflow results: %w", err)
	}

	progress := &domain.WorkflowExecution{ProcessedCount: len(stored)}
	for _, r := range stored {
		switch r.FitCategory {
		case domain.FitBest:
			progress.BestFitCount++
		case domain.FitPartial:
			progress.PartialFitCount++
		case domain.FitNot:
			progress.NotFitCount++
		case domain.FitError:
			progress.ErrorCount++
		}
	}
	if total > 0 {
		progress.Percentage = len(stored) * 100 / total
	}

	if err := o.stores.Workflows.UpdateProgress(ctx, workflowID, progress); err != nil {
		return fmt.Errorf("failed to update workflow progress: %w", err)
	}
	return nil
}
