package domain

import "time"

// Resume represents an uploaded candidate resume tied to a job description.
// Extracted holds the raw structured-extraction text produced by the pipeline,
// if any; Processed marks resumes already consumed by a workflow run.
type Resume struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	JDID      string    `gorm:"column:jd_id;type:text;not null;index" json:"jd_id"`
	Filename  string    `gorm:"type:text" json:"filename"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Extracted string    `gorm:"type:text" json:"extracted,omitempty"`
	Processed bool      `gorm:"default:false;index" json:"processed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Resume.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Resume) TableName() string {
	return "resumes"
}

// CareerEntry is one position in a candidate's employment history as produced
// by the resume extraction. Dates are free-form strings; EndDate may be blank
// or "Present" for a current position. The extraction contract asks for
// reverse-chronological order (most recent first) but this is not enforced.
type CareerEntry struct {
	Company   string `json:"Company"`
	Title     string `json:"Job_Title"`
	StartDate string `json:"Start_Date"`
	EndDate   string `json:"End_Date"`
}
