package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/store"
)

// GetJob returns a handler for GET /api/v1/jobs/:id.
func GetJob(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		job := st.Job(c.Param("id"))
		if job == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeNotFound,
					Message: "job not found",
				},
			})
			return
		}

		progress := 0
		if job.Done() {
			progress = 100
		}

		c.JSON(http.StatusOK, models.JobStatusResponse{
			JobID:       job.ID,
			URL:         job.URL,
			Status:      job.Status,
			Progress:    progress,
			CreatedAt:   job.CreatedAt,
			CompletedAt: job.CompletedAt,
			ProductID:   job.ProductID,
			Error:       job.Error,
		})
	}
}
