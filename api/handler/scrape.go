package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pantry-scan/pantryscan/config"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/simhash"
	"github.com/pantry-scan/pantryscan/store"
	"github.com/pantry-scan/pantryscan/traderjoes"
	"github.com/pantry-scan/pantryscan/webhook"
)

// PostScrape returns a handler for POST /api/v1/scrape.
//
// Flow:
//  1. Parse & validate request, apply defaults.
//  2. Reject URLs the site scraper cannot handle.
//  3. Unless force_refresh, answer from the store when the URL was
//     already scraped.
//  4. Otherwise create a job and run the scrape in the background;
//     respond 202 with the job ID.
func PostScrape(tj *traderjoes.Scraper, st *store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Status:  models.StatusFailed,
				Message: "invalid request",
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		if !tj.CanHandle(req.URL) {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Status:  models.StatusFailed,
				Message: "URL not supported by any available scraper",
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeUnsupported,
					Message: "only Trader Joe's product pages are supported",
				},
			})
			return
		}

		if !req.ForceRefresh {
			if existing := st.ProductByURL(req.URL); existing != nil {
				c.JSON(http.StatusOK, models.ScrapeResponse{
					Status:    models.StatusCompleted,
					Message:   "product already scraped",
					ProductID: existing.ID,
				})
				return
			}
		}

		job := models.NewScrapeJob(req.URL, 3)
		st.PutJob(job)

		go runJob(tj, st, cfg, job.ID, req)

		c.JSON(http.StatusAccepted, models.ScrapeResponse{
			JobID:   job.ID,
			Status:  models.StatusPending,
			Message: "scraping job started",
		})
	}
}

// runJob executes one scrape in the background: mark processing, scrape,
// store the record, mark completed or failed, and notify the webhook.
func runJob(tj *traderjoes.Scraper, st *store.Store, cfg *config.Config, jobID string, req models.ScrapeRequest) {
	st.UpdateJob(jobID, func(j *models.ScrapeJob) { j.MarkProcessing() })

	timeout := time.Duration(req.Timeout) * time.Second
	// Small grace period so the scraper's own deadline fires first and
	// produces the descriptive error.
	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()

	prev := st.ProductByURL(req.URL)

	product, err := tj.Scrape(ctx, req.URL, timeout)
	if err != nil {
		slog.Error("scrape job failed", "job_id", jobID, "url", req.URL, "error", err)
		st.UpdateJob(jobID, func(j *models.ScrapeJob) { j.MarkFailed(err.Error()) })
		if req.WebhookURL != "" {
			webhook.DeliverAsync(req.WebhookURL, cfg.Webhook.Secret, &webhook.Event{
				Type:      webhook.EventJobFailed,
				JobID:     jobID,
				Timestamp: time.Now().Unix(),
				Data:      gin.H{"url": req.URL, "error": err.Error()},
			})
		}
		return
	}

	if prev != nil && simhash.Drifted(prev.PageFingerprint, product.PageFingerprint) {
		slog.Warn("page markup drifted since last scrape, field matchers may need review",
			"url", req.URL,
			"distance", simhash.Distance(prev.PageFingerprint, product.PageFingerprint),
		)
	}

	st.PutProduct(product)
	st.UpdateJob(jobID, func(j *models.ScrapeJob) { j.MarkCompleted(product.ID) })
	slog.Info("scrape job completed", "job_id", jobID, "url", req.URL, "product_id", product.ID)

	if req.WebhookURL != "" {
		webhook.DeliverAsync(req.WebhookURL, cfg.Webhook.Secret, &webhook.Event{
			Type:      webhook.EventJobCompleted,
			JobID:     jobID,
			Timestamp: time.Now().Unix(),
			Data:      gin.H{"url": req.URL, "product_id": product.ID},
		})
	}
}
