package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the product page to scrape. Required.
	URL string `json:"url" binding:"required,url"`

	// Timeout is the maximum duration in seconds for the entire scrape
	// (navigation + rendering + extraction). Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// ForceRefresh re-scrapes even when a stored record exists for the URL.
	// Default: false.
	ForceRefresh bool `json:"force_refresh,omitempty"`

	// WebhookURL receives a signed job.completed / job.failed event when
	// the job finishes.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
}

// CatalogRequest is the payload for POST /api/v1/catalog.
type CatalogRequest struct {
	// URL is the category page to walk for product links. Required.
	URL string `json:"url" binding:"required,url"`

	// MaxPages caps pagination depth. 0 means no limit.
	MaxPages int `json:"max_pages,omitempty" binding:"omitempty,min=0,max=100"`

	// Timeout is the maximum duration in seconds for the whole walk.
	// Default: 60. Max: 300.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=300"`
}

// Defaults applies default values to unset fields.
func (r *CatalogRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 60
	}
}
