package repository

import (
	"context"

	"github.com/deepakm/resumatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComparisonRepository handles comparison result data operations.
type ComparisonRepository struct {
	db *gorm.DB
}

// NewComparisonRepository creates a new ComparisonRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ComparisonRepository: repository instance bound to db.
func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

// Upsert creates or replaces the result for a resume. The unique index on
// resume_id guarantees at most one live result per (jd, resume) pair; the
// database-level conflict clause is the only serialization between workers.
func (r *ComparisonRepository) Upsert(ctx context.Context, result *domain.ComparisonResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resume_id"}},
		UpdateAll: true,
	}).Create(result).Error
}

// ListByWorkflow returns all stored results for a workflow execution.
func (r *ComparisonRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]domain.ComparisonResult, error) {
	var results []domain.ComparisonResult
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Find(&results).Error
	return results, err
}

// ListByJD returns all stored results for a job description, best scores first.
func (r *ComparisonRepository) ListByJD(ctx context.Context, jdID string) ([]domain.ComparisonResult, error) {
	var results []domain.ComparisonResult
	err := r.db.WithContext(ctx).
		Where("jd_id = ?", jdID).
		Order("match_score DESC").
		Find(&results).Error
	return results, err
}
