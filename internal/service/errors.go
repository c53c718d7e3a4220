package service

import "errors"

var (
	// ErrWorkflowNotFound indicates the requested workflow id does not exist.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrNoData indicates a workflow whose JD or resume set could not be
	// resolved. The workflow transitions to the no_data terminal state.
	ErrNoData = errors.New("workflow has no resolvable jd or resumes")
)
