package domain

import "time"

// JobDescription represents an uploaded job description and its optional
// structured extraction. The ID is caller-supplied so external systems can
// reference JDs by their own keys.
type JobDescription struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	Designation string    `gorm:"type:text" json:"designation"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Extracted   string    `gorm:"type:text" json:"extracted,omitempty"`
	Status      string    `gorm:"type:text;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for JobDescription.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (JobDescription) TableName() string {
	return "job_descriptions"
}
