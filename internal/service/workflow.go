package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/deepakm/resumatch/internal/domain"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/repository"
)

// workflowStore is the workflow repository surface the tracker needs.
type workflowStore interface {
	Create(ctx context.Context, wf *domain.WorkflowExecution) error
	GetByWorkflowID(ctx context.Context, workflowID string) (*domain.WorkflowExecution, error)
	UpdateStatus(ctx context.Context, workflowID string, status domain.WorkflowStatus) error
}

// jdStore resolves job descriptions for a workflow run.
type jdStore interface {
	GetByID(ctx context.Context, id string) (*domain.JobDescription, error)
}

// resumeStore resolves resumes for a workflow run.
type resumeStore interface {
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
}

// WorkflowService tracks workflow executions through their lifecycle:
// pending, processing, then completed or no_data. Both end states are
// terminal.
type WorkflowService struct {
	workflows workflowStore
	jds       jdStore
	resumes   resumeStore
	batch     *BatchOrchestrator
	logger    *logger.Logger
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(
	workflows workflowStore,
	jds jdStore,
	resumes resumeStore,
	batch *BatchOrchestrator,
	log *logger.Logger,
) *WorkflowService {
	return &WorkflowService{
		workflows: workflows,
		jds:       jds,
		resumes:   resumes,
		batch:     batch,
		logger:    log,
	}
}

func (s *WorkflowService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Create registers a new pending workflow for a JD and a set of resumes.
func (s *WorkflowService) Create(ctx context.Context, jdID string, resumeIDs []string) (*domain.WorkflowExecution, error) {
	wf := &domain.WorkflowExecution{
		WorkflowID:   uuid.New().String(),
		JDID:         jdID,
		ResumeIDs:    resumeIDs,
		Status:       domain.WorkflowStatusPending,
		TotalResumes: len(resumeIDs),
	}

	if err := s.workflows.Create(ctx, wf); err != nil {
		return nil, err
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldWorkflowID: wf.WorkflowID,
		logger.FieldJDID:       jdID,
		logger.FieldCount:      len(resumeIDs),
	}).Info("Workflow created")

	return wf, nil
}

// Get returns a workflow execution by id. A status query is a plain read; an
// unknown id yields ErrWorkflowNotFound.
func (s *WorkflowService) Get(ctx context.Context, workflowID string) (*domain.WorkflowExecution, error) {
	wf, err := s.workflows.GetByWorkflowID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}
	return wf, nil
}

// Run drives a workflow through its full lifecycle: resolve the JD and
// resume set, fan the batch out, and land on a terminal state. A workflow
// whose inputs cannot be resolved goes straight to no_data.
// Returns the ordered batch results and elapsed milliseconds.
func (s *WorkflowService) Run(ctx context.Context, workflowID string) ([]domain.ComparisonResult, int64, error) {
	wf, err := s.Get(ctx, workflowID)
	if err != nil {
		return nil, 0, err
	}

	if wf.JDID == "" || len(wf.ResumeIDs) == 0 {
		return nil, 0, s.markNoData(ctx, workflowID, "missing jd or resume ids")
	}

	jd, err := s.jds.GetByID(ctx, wf.JDID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, s.markNoData(ctx, workflowID, "jd not found")
		}
		return nil, 0, err
	}

	candidates, resolved := s.resolveCandidates(ctx, wf.ResumeIDs)
	if resolved == 0 {
		return nil, 0, s.markNoData(ctx, workflowID, "no resumes found")
	}

	if err := s.workflows.UpdateStatus(ctx, workflowID, domain.WorkflowStatusProcessing); err != nil {
		return nil, 0, err
	}

	jdInput := JDInput{
		JDID:      jd.ID,
		Text:      jd.Text,
		Extracted: jd.Extracted,
	}

	results, elapsed := s.batch.RunBatch(ctx, jdInput, candidates, workflowID)

	if err := s.workflows.UpdateStatus(ctx, workflowID, domain.WorkflowStatusCompleted); err != nil {
		return results, elapsed, err
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldWorkflowID: workflowID,
		logger.FieldCount:      len(results),
		logger.FieldDurationMs: elapsed,
	}).Info("Workflow completed")

	return results, elapsed, nil
}

// resolveCandidates loads each resume in the workflow's set. A resume that
// cannot be loaded still occupies its slot so the batch returns one result
// per requested id; its empty text degrades to a sentinel evaluation.
func (s *WorkflowService) resolveCandidates(ctx context.Context, resumeIDs []string) ([]Candidate, int) {
	candidates := make([]Candidate, 0, len(resumeIDs))
	resolved := 0

	for _, id := range resumeIDs {
		resume, err := s.resumes.GetByID(ctx, id)
		if err != nil {
			s.log(ctx).WithField(logger.FieldResumeID, id).WithError(err).Warn("Resume not found for workflow")
			candidates = append(candidates, Candidate{ResumeID: id})
			continue
		}
		candidates = append(candidates, Candidate{
			ResumeID:  resume.ID,
			Text:      resume.Text,
			Extracted: resume.Extracted,
		})
		resolved++
	}

	return candidates, resolved
}

func (s *WorkflowService) markNoData(ctx context.Context, workflowID, reason string) error {
	s.log(ctx).WithFields(logger.Fields{
		logger.FieldWorkflowID: workflowID,
		"reason":               reason,
	}).Warn("Workflow has no data to process")

	if err := s.workflows.UpdateStatus(ctx, workflowID, domain.WorkflowStatusNoData); err != nil {
		return err
	}
	return ErrNoData
}
