package models

import "time"

// ScrapeResponse is the immediate response for POST /api/v1/scrape.
type ScrapeResponse struct {
	// JobID identifies the background job. Empty when the request was
	// answered from the store.
	JobID string `json:"job_id,omitempty"`

	// Status is the job status at response time.
	Status string `json:"status"`

	// Message is a human-readable status line.
	Message string `json:"message"`

	// ProductID is set when a stored record already satisfied the request.
	ProductID string `json:"product_id,omitempty"`

	// Error is populated only on failure.
	Error *ErrorDetail `json:"error,omitempty"`
}

// JobStatusResponse is the response for GET /api/v1/jobs/:id.
type JobStatusResponse struct {
	JobID       string     `json:"job_id"`
	URL         string     `json:"url"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"` // 0 or 100; jobs have no partial progress
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ProductID   string     `json:"result_product_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// ProductResponse is the response for GET /api/v1/products/:id.
type ProductResponse struct {
	Product     *Product  `json:"product"`
	Cached      bool      `json:"cached"`
	LastUpdated time.Time `json:"last_updated"`
}

// CatalogResponse is the response for POST /api/v1/catalog.
type CatalogResponse struct {
	CategoryURL  string   `json:"category_url"`
	ProductURLs  []string `json:"product_urls"`
	PagesVisited int      `json:"pages_visited"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Products  int       `json:"stored_products"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
