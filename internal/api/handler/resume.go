package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deepakm/resumatch/internal/domain"
	"github.com/deepakm/resumatch/internal/repository"
)

// ResumeHandler handles resume upload endpoints.
type ResumeHandler struct {
	resumeRepo *repository.ResumeRepository
}

// NewResumeHandler creates a new resume handler.
// Parameters:
//   - resumeRepo: resume repository.
//
// Returns:
//   - *ResumeHandler: initialized handler.
func NewResumeHandler(resumeRepo *repository.ResumeRepository) *ResumeHandler {
	return &ResumeHandler{resumeRepo: resumeRepo}
}

type uploadResumeRequest struct {
	JDID     string `json:"jd_id" binding:"required"`
	Filename string `json:"filename"`
	Text     string `json:"text" binding:"required"`
}

// UploadResume handles POST /api/v1/resumes.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	var req uploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	resume := &domain.Resume{
		ID:       uuid.New().String(),
		JDID:     req.JDID,
		Filename: req.Filename,
		Text:     req.Text,
	}

	if err := h.resumeRepo.Create(c.Request.Context(), resume); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store resume: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"resume_id": resume.ID,
		"jd_id":     resume.JDID,
	})
}
