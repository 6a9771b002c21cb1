package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pantry-scan/pantryscan/api/handler"
	"github.com/pantry-scan/pantryscan/api/middleware"
	"github.com/pantry-scan/pantryscan/config"
	"github.com/pantry-scan/pantryscan/scraper"
	"github.com/pantry-scan/pantryscan/store"
	"github.com/pantry-scan/pantryscan/traderjoes"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, tj *traderjoes.Scraper, st *store.Store, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(sc, st, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Scrape jobs
	protected.POST("/scrape", handler.PostScrape(tj, st, cfg))
	protected.GET("/jobs/:id", handler.GetJob(st))

	// Products
	protected.GET("/products/:id", handler.GetProduct(st))

	// Catalog walk
	protected.POST("/catalog", handler.PostCatalog(tj))

	return r
}
