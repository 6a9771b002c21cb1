package traderjoes

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pantry-scan/pantryscan/extract"
)

// paginationSelectors locate the "next page" link on a category listing.
var paginationSelectors = []string{
	`a[rel="next"]`,
	`a[aria-label*="Next"]`,
	`button[aria-label*="Next"] ~ a`,
	`a[class*="Pagination"][class*="next"]`,
}

// CollectProductURLs walks a category listing and returns every product
// page URL found, following pagination up to maxPages (0 means no limit).
// URLs are absolute and deduplicated in discovery order.
//
// The first page failing to load is an error; a failure deeper in the
// walk stops pagination and returns what was collected so far.
func (s *Scraper) CollectProductURLs(ctx context.Context, categoryURL string, maxPages int, timeout time.Duration) ([]string, int, error) {
	var (
		productURLs []string
		seen        = make(map[string]struct{})
		pages       int
		current     = categoryURL
	)

	for current != "" {
		if maxPages > 0 && pages >= maxPages {
			slog.Info("catalog walk reached page limit", "maxPages", maxPages)
			break
		}

		res, err := s.fetcher.Fetch(ctx, current, timeout)
		if err != nil {
			if pages == 0 {
				return nil, 0, err
			}
			slog.Warn("catalog walk stopped early", "url", current, "page", pages+1, "error", err)
			break
		}
		pages++

		doc, err := extract.NewDocument(res.HTML)
		if err != nil {
			slog.Warn("catalog page did not parse", "url", current, "error", err)
			break
		}

		base, _ := url.Parse(res.FinalURL)
		added := 0
		links := doc.Select(`a[href*="/products/"]`)
		if links != nil {
			links.Each(func(_ int, a *goquery.Selection) {
				href, ok := a.Attr("href")
				if !ok {
					return
				}
				abs := resolveURL(base, href)
				if abs == "" || !strings.Contains(strings.ToLower(abs), "/products/") {
					return
				}
				if _, dup := seen[abs]; dup {
					return
				}
				seen[abs] = struct{}{}
				productURLs = append(productURLs, abs)
				added++
			})
		}
		slog.Info("catalog page scraped", "url", current, "page", pages, "found", added)

		current = nextPageURL(doc, base)
	}

	return productURLs, pages, nil
}

// nextPageURL returns the absolute URL of the next listing page, or ""
// when pagination is exhausted.
func nextPageURL(doc *extract.Document, base *url.URL) string {
	sel := doc.Select(paginationSelectors...)
	if sel == nil {
		return ""
	}
	href, ok := sel.First().Attr("href")
	if !ok {
		return ""
	}
	return resolveURL(base, href)
}

// resolveURL makes href absolute against the page it was found on.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	ref.Fragment = ""
	return ref.String()
}
