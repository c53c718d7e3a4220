package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deepakm/resumatch/internal/domain"
	"gorm.io/gorm"
)

// WorkflowRepository handles workflow execution data operations.
type WorkflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new WorkflowRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *WorkflowRepository: repository instance bound to db.
func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// Create inserts a new workflow execution record.
func (r *WorkflowRepository) Create(ctx context.Context, wf *domain.WorkflowExecution) error {
	return r.db.WithContext(ctx).Create(wf).Error
}

// GetByWorkflowID retrieves a workflow execution by its workflow ID.
// Returns ErrNotFound when no record exists.
func (r *WorkflowRepository) GetByWorkflowID(ctx context.Context, workflowID string) (*domain.WorkflowExecution, error) {
	var wf domain.WorkflowExecution
	if err := r.db.WithContext(ctx).First(&wf, "workflow_id = ?", workflowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wf, nil
}

// UpdateStatus transitions a workflow to the given status, stamping the
// started/completed timestamps as appropriate.
func (r *WorkflowRepository) UpdateStatus(ctx context.Context, workflowID string, status domain.WorkflowStatus) error {
	updates := map[string]interface{}{"status": status}
	now := time.Now().UTC()
	switch status {
	case domain.WorkflowStatusProcessing:
		updates["started_at"] = &now
	case domain.WorkflowStatusCompleted, domain.WorkflowStatusNoData:
		updates["completed_at"] = &now
	}
	return r.db.WithContext(ctx).Model(&domain.WorkflowExecution{}).
		Where("workflow_id = ?", workflowID).
		Updates(updates).Error
}

// UpdateProgress writes recomputed aggregate counters in a single atomic
// per-document update. Callers derive the counters from the authoritative
// result set, so concurrent writers can interleave without losing updates.
func (r *WorkflowRepository) UpdateProgress(ctx context.Context, workflowID string, p *domain.WorkflowExecution) error {
	return r.db.WithContext(ctx).Model(&domain.WorkflowExecution{}).
		Where("workflow_id = ?", workflowID).
		Updates(map[string]interface{}{
			"processed_count":   p.ProcessedCount,
			"percentage":        p.Percentage,
			"best_fit_count":    p.BestFitCount,
			"partial_fit_count": p.PartialFitCount,
			"not_fit_count":     p.NotFitCount,
			"error_count":       p.ErrorCount,
		}).Error
}
