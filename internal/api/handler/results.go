package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepakm/resumatch/internal/repository"
)

// ResultsHandler serves stored comparison results.
type ResultsHandler struct {
	comparisonRepo *repository.ComparisonRepository
}

// NewResultsHandler creates a new results handler.
// Parameters:
//   - comparisonRepo: comparison result repository.
//
// Returns:
//   - *ResultsHandler: initialized handler.
func NewResultsHandler(comparisonRepo *repository.ComparisonRepository) *ResultsHandler {
	return &ResultsHandler{comparisonRepo: comparisonRepo}
}

// ListByJD handles GET /api/v1/results/:jd_id, best scores first.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *ResultsHandler) ListByJD(c *gin.Context) {
	results, err := h.comparisonRepo.ListByJD(c.Request.Context(), c.Param("jd_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load results: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jd_id":   c.Param("jd_id"),
		"results": results,
		"total":   len(results),
	})
}
