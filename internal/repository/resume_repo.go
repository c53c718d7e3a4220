package repository

import (
	"context"
	"errors"

	"github.com/deepakm/resumatch/internal/domain"
	"gorm.io/gorm"
)

// ResumeRepository handles resume data operations.
type ResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository creates a new ResumeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ResumeRepository: repository instance bound to db.
func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Create inserts a new resume record.
func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

// GetByID retrieves a resume by its ID.
// Returns ErrNotFound when no record exists.
func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	var resume domain.Resume
	if err := r.db.WithContext(ctx).First(&resume, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// ListUnprocessedByJD returns resumes for a JD that have not been consumed by
// a workflow run yet, in upload order.
func (r *ResumeRepository) ListUnprocessedByJD(ctx context.Context, jdID string) ([]domain.Resume, error) {
	var resumes []domain.Resume
	err := r.db.WithContext(ctx).
		Where("jd_id = ? AND processed = ?", jdID, false).
		Order("created_at ASC").
		Find(&resumes).Error
	return resumes, err
}

// MarkProcessed flags a resume as consumed by a workflow run.
func (r *ResumeRepository) MarkProcessed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Resume{}).
		Where("id = ?", id).
		Update("processed", true).Error
}

// SetExtracted stores the structured extraction text for a resume.
func (r *ResumeRepository) SetExtracted(ctx context.Context, id, extracted string) error {
	return r.db.WithContext(ctx).Model(&domain.Resume{}).
		Where("id = ?", id).
		Update("extracted", extracted).Error
}
