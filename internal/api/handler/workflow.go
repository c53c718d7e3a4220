package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepakm/resumatch/internal/repository"
	"github.com/deepakm/resumatch/internal/service"
)

// WorkflowHandler handles workflow lifecycle endpoints.
type WorkflowHandler struct {
	workflowService *service.WorkflowService
	resumeRepo      *repository.ResumeRepository
}

// NewWorkflowHandler creates a new workflow handler.
// Parameters:
//   - workflowService: workflow service instance.
//   - resumeRepo: resume repository, used to resolve unprocessed resumes.
//
// Returns:
//   - *WorkflowHandler: initialized handler.
func NewWorkflowHandler(workflowService *service.WorkflowService, resumeRepo *repository.ResumeRepository) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService: workflowService,
		resumeRepo:      resumeRepo,
	}
}

type createWorkflowRequest struct {
	JDID      string   `json:"jd_id" binding:"required"`
	ResumeIDs []string `json:"resume_ids"`
}

// CreateWorkflow handles POST /api/v1/workflows. When no resume ids are
// supplied, the workflow covers every unprocessed resume for the JD.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *WorkflowHandler) CreateWorkflow(c *gin.Context) {
	var req createWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	resumeIDs := req.ResumeIDs
	if len(resumeIDs) == 0 {
		resumes, err := h.resumeRepo.ListUnprocessedByJD(c.Request.Context(), req.JDID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve resumes: " + err.Error(),
			})
			return
		}
		for _, r := range resumes {
			resumeIDs = append(resumeIDs, r.ID)
		}
	}

	wf, err := h.workflowService.Create(c.Request.Context(), req.JDID, resumeIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create workflow: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"workflow_id":   wf.WorkflowID,
		"jd_id":         wf.JDID,
		"total_resumes": wf.TotalResumes,
		"status":        wf.Status,
	})
}

// RunWorkflow handles POST /api/v1/workflows/:id/run. The call blocks until
// the batch completes and returns the ordered results.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *WorkflowHandler) RunWorkflow(c *gin.Context) {
	workflowID := c.Param("id")

	results, elapsed, err := h.workflowService.Run(c.Request.Context(), workflowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkflowNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Workflow not found",
			})
		case errors.Is(err, service.ErrNoData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       "Workflow has no data to process",
				"workflow_id": workflowID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Workflow run failed: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workflow_id": workflowID,
		"results":     results,
		"count":       len(results),
		"elapsed_ms":  elapsed,
	})
}

// GetWorkflow handles GET /api/v1/workflows/:id.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *WorkflowHandler) GetWorkflow(c *gin.Context) {
	wf, err := h.workflowService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrWorkflowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Workflow not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load workflow: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wf)
}
