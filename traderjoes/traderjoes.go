// Package traderjoes scrapes product pages from the Trader Joe's
// storefront: one URL in, one best-effort product record out.
package traderjoes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/scraper"
	"github.com/pantry-scan/pantryscan/simhash"
)

// Scraper drives the browser session manager against Trader Joe's
// product pages and assembles records from the rendered snapshots.
type Scraper struct {
	fetcher *scraper.Scraper
}

// New creates a Trader Joe's scraper on top of the shared browser.
func New(fetcher *scraper.Scraper) *Scraper {
	return &Scraper{fetcher: fetcher}
}

// CanHandle reports whether the URL is a Trader Joe's product page.
func (s *Scraper) CanHandle(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "traderjoes.com") && strings.Contains(lower, "/products/")
}

// Scrape loads the product page and extracts a record.
//
// Navigation and browser faults abort the scrape with no record; a field
// whose label is missing from the page simply stays empty. The browser
// page is released on every exit path by the fetcher.
func (s *Scraper) Scrape(ctx context.Context, url string, timeout time.Duration) (*models.Product, error) {
	if !s.CanHandle(url) {
		return nil, models.NewScrapeError(
			models.ErrCodeUnsupported,
			"URL is not a Trader Joe's product page",
			nil,
		)
	}

	start := time.Now()
	slog.Info("scrape starting", "url", url)

	res, err := s.fetcher.Fetch(ctx, url, timeout)
	if err != nil {
		slog.Error("scrape failed", "url", url, "error", err)
		return nil, err
	}

	product := ExtractProduct(res.HTML, url)
	product.ScrapeDuration = time.Since(start)
	product.PageFingerprint = simhash.FingerprintDOM(res.HTML)

	slog.Info("scrape finished",
		"url", url,
		"name", product.Name,
		"ingredients", len(product.Ingredients),
		"allergens", len(product.Allergens),
		"nutrients", len(product.NutritionFacts),
		"duration", product.ScrapeDuration.Round(time.Millisecond),
	)
	return product, nil
}
