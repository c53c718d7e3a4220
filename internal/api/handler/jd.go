package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deepakm/resumatch/internal/domain"
	"github.com/deepakm/resumatch/internal/repository"
)

// JDHandler handles job description endpoints.
type JDHandler struct {
	jdRepo *repository.JDRepository
}

// NewJDHandler creates a new JD handler.
// Parameters:
//   - jdRepo: job description repository.
//
// Returns:
//   - *JDHandler: initialized handler.
func NewJDHandler(jdRepo *repository.JDRepository) *JDHandler {
	return &JDHandler{jdRepo: jdRepo}
}

type uploadJDRequest struct {
	ID          string `json:"id"`
	Designation string `json:"designation" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

// UploadJD handles POST /api/v1/jd.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *JDHandler) UploadJD(c *gin.Context) {
	var req uploadJDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	jd := &domain.JobDescription{
		ID:          id,
		Designation: req.Designation,
		Text:        req.Text,
		Status:      "pending",
	}

	if err := h.jdRepo.Upsert(c.Request.Context(), jd); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store JD: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"jd_id":       jd.ID,
		"designation": jd.Designation,
	})
}

// GetJD handles GET /api/v1/jd/:id.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *JDHandler) GetJD(c *gin.Context) {
	jd, err := h.jdRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "JD not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load JD: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, jd)
}
