package repository

import (
	"context"
	"errors"

	"github.com/deepakm/resumatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// JDRepository handles job description data operations.
type JDRepository struct {
	db *gorm.DB
}

// NewJDRepository creates a new JDRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *JDRepository: repository instance bound to db.
func NewJDRepository(db *gorm.DB) *JDRepository {
	return &JDRepository{db: db}
}

// Upsert creates or replaces a job description keyed by its ID.
func (r *JDRepository) Upsert(ctx context.Context, jd *domain.JobDescription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(jd).Error
}

// GetByID retrieves a job description by its ID.
// Returns ErrNotFound when no record exists.
func (r *JDRepository) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	var jd domain.JobDescription
	if err := r.db.WithContext(ctx).First(&jd, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &jd, nil
}

// SetExtracted stores the structured extraction text for a job description.
func (r *JDRepository) SetExtracted(ctx context.Context, id, extracted string) error {
	return r.db.WithContext(ctx).Model(&domain.JobDescription{}).
		Where("id = ?", id).
		Update("extracted", extracted).Error
}
