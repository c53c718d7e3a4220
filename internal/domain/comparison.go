package domain

import "time"

// Fit categories produced by the comparator and post-processor. FitError is
// assigned by the batch orchestrator when a candidate's whole pipeline fails.
const (
	FitBest    = "Best Fit"
	FitPartial = "Partial Fit"
	FitNot     = "Not Fit"
	FitError   = "Error"
)

// Recruiter confidence labels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// ComparisonResult is the persisted outcome of evaluating one resume against
// one job description. At most one live result exists per resume; the
// repository upserts on resume_id.
type ComparisonResult struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	ResumeID        string      `gorm:"column:resume_id;type:text;not null;uniqueIndex:idx_results_resume" json:"resume_id"`
	JDID            string      `gorm:"column:jd_id;type:text;not null;index" json:"jd_id"`
	WorkflowID      string      `gorm:"column:workflow_id;type:text;index" json:"workflow_id"`
	MatchScore      int         `gorm:"not null" json:"match_score"`
	FitCategory     string      `gorm:"type:text;not null" json:"fit_category"`
	MatchBreakdown  JSONMap     `gorm:"type:text" json:"match_breakdown"`
	RiskFactors     StringArray `gorm:"type:text" json:"risk_factors"`
	GrowthSignals   StringArray `gorm:"type:text" json:"growth_signals"`
	Confidence      string      `gorm:"type:text" json:"confidence"`
	SelectionReason string      `gorm:"type:text" json:"selection_reason"`
	StabilityScore  int         `json:"stability_score"`
	ApplicantName   string      `gorm:"type:text" json:"applicant_name,omitempty"`
	ApplicantEmail  string      `gorm:"type:text" json:"applicant_email,omitempty"`
	ApplicantMobile string      `gorm:"type:text" json:"applicant_mobile,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
	CreatedAt       time.Time   `json:"-"`
	UpdatedAt       time.Time   `json:"-"`
}

// TableName returns the database table name for ComparisonResult.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (ComparisonResult) TableName() string {
	return "comparison_results"
}
