package models

import (
	"time"

	"github.com/google/uuid"
)

// Scrape and job lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ScraperVersion is stamped on every record so stored products can be
// traced back to the extractor revision that produced them.
const ScraperVersion = "1.0.0"

// Product is the structured record assembled from one scraped page.
// All fields except URL and Name are best-effort: a label missing from
// the page yields a zero value, never an error. A Product is immutable
// once built.
type Product struct {
	// Core identifiers.
	ID  string `json:"id"`
	URL string `json:"url"`

	// Product information.
	Name        string `json:"product_name"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`

	// Price is kept as display text ("$3.99"); it is never parsed into
	// a currency type.
	Price string `json:"price,omitempty"`

	// Ingredients and nutrition.
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens,omitempty"`

	// NutritionFacts maps a nutrient label to its display value
	// ("Calories" -> "120", "Total Fat" -> "8g"). Values are opaque text.
	NutritionFacts map[string]string `json:"nutrition_facts,omitempty"`

	// Scraping metadata.
	ScrapedAt      time.Time     `json:"scraped_at"`
	ScrapeDuration time.Duration `json:"scrape_duration"`
	Status         string        `json:"scrape_status"` // pending, success, failed
	ErrorMessage   string        `json:"error_message,omitempty"`
	Version        string        `json:"scraper_version"`

	// PageFingerprint is a SimHash of the rendered DOM structure, used
	// to detect markup drift between scrapes of the same URL.
	PageFingerprint uint64 `json:"page_fingerprint,omitempty"`
}

// NewProduct creates a pending record for the given URL.
func NewProduct(url string) *Product {
	return &Product{
		ID:        uuid.NewString(),
		URL:       url,
		ScrapedAt: time.Now().UTC(),
		Status:    StatusPending,
		Version:   ScraperVersion,
	}
}

// Valid reports whether the record is complete enough to store:
// it has a name, a URL, and at least one ingredient.
func (p *Product) Valid() bool {
	return p.Name != "" && p.URL != "" && len(p.Ingredients) > 0
}

// ScrapeJob tracks the lifecycle of one asynchronous scrape, from
// creation through completion or failure.
type ScrapeJob struct {
	ID          string     `json:"job_id"`
	URL         string     `json:"url"`
	Status      string     `json:"status"` // pending, processing, completed, failed
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ProductID   string     `json:"result_product_id,omitempty"`
	Error       string     `json:"error_message,omitempty"`
	RetryCount  int        `json:"retry_count"`
	MaxRetries  int        `json:"max_retries"`
}

// NewScrapeJob creates a pending job for the given URL.
func NewScrapeJob(url string, maxRetries int) *ScrapeJob {
	return &ScrapeJob{
		ID:         uuid.NewString(),
		URL:        url,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
		MaxRetries: maxRetries,
	}
}

// MarkProcessing records the start of job execution.
func (j *ScrapeJob) MarkProcessing() {
	now := time.Now().UTC()
	j.Status = StatusProcessing
	j.StartedAt = &now
}

// MarkCompleted records a successful result.
func (j *ScrapeJob) MarkCompleted(productID string) {
	now := time.Now().UTC()
	j.Status = StatusCompleted
	j.CompletedAt = &now
	j.ProductID = productID
}

// MarkFailed records a failure and bumps the retry counter.
func (j *ScrapeJob) MarkFailed(errMsg string) {
	now := time.Now().UTC()
	j.Status = StatusFailed
	j.CompletedAt = &now
	j.Error = errMsg
	j.RetryCount++
}

// Done reports whether the job has reached a terminal state.
func (j *ScrapeJob) Done() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
