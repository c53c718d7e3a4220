package domain

import "time"

// WorkflowStatus represents the lifecycle state of a workflow execution.
// Transitions only move forward: pending → processing → {completed | no_data}.
type WorkflowStatus string

const (
	WorkflowStatusPending    WorkflowStatus = "pending"
	WorkflowStatusProcessing WorkflowStatus = "processing"
	WorkflowStatusCompleted  WorkflowStatus = "completed"
	WorkflowStatusNoData     WorkflowStatus = "no_data"
)

// Terminal reports whether the status admits no further transitions.
func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowStatusCompleted || s == WorkflowStatusNoData
}

// WorkflowExecution tracks one batch evaluation of N resumes against a JD.
// Progress counters are recomputed from the stored result set after each
// candidate completes and only ever increase.
type WorkflowExecution struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	WorkflowID      string         `gorm:"column:workflow_id;type:text;not null;uniqueIndex:idx_workflows_id" json:"workflow_id"`
	JDID            string         `gorm:"column:jd_id;type:text;not null;index" json:"jd_id"`
	ResumeIDs       StringArray    `gorm:"type:text" json:"resume_ids"`
	Status          WorkflowStatus `gorm:"type:text;default:pending" json:"status"`
	TotalResumes    int            `gorm:"default:0" json:"total_resumes"`
	ProcessedCount  int            `gorm:"default:0" json:"processed_count"`
	Percentage      int            `gorm:"default:0" json:"percentage"`
	BestFitCount    int            `gorm:"default:0" json:"best_fit_count"`
	PartialFitCount int            `gorm:"default:0" json:"partial_fit_count"`
	NotFitCount     int            `gorm:"default:0" json:"not_fit_count"`
	ErrorCount      int            `gorm:"default:0" json:"error_count"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName returns the database table name for WorkflowExecution.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (WorkflowExecution) TableName() string {
	return "workflow_executions"
}
