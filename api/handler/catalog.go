package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/traderjoes"
)

// PostCatalog returns a handler for POST /api/v1/catalog.
//
// Walks a category listing synchronously and returns the product URLs it
// found. Per-page fetches reuse the caller deadline; listing pages are
// light, so the walk completes well inside the request timeout.
func PostCatalog(tj *traderjoes.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CatalogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		timeout := time.Duration(req.Timeout) * time.Second
		urls, pages, err := tj.CollectProductURLs(c.Request.Context(), req.URL, req.MaxPages, timeout)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CatalogResponse{
			CategoryURL:  req.URL,
			ProductURLs:  urls,
			PagesVisited: pages,
		})
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, "unexpected error", err)
	}

	status := http.StatusInternalServerError
	switch scrapeErr.Code {
	case models.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case models.ErrCodeNavigation:
		status = http.StatusBadGateway
	case models.ErrCodeInvalidInput, models.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case models.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": scrapeErr.ToDetail()})
}
