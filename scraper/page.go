package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/ysmood/gson"
)

// FetchResult is the snapshot of one rendered page.
type FetchResult struct {
	// HTML is the rendered page HTML after dynamic content settled.
	HTML string

	// Title is the document title.
	Title string

	// FinalURL is the URL after following all redirects.
	FinalURL string
}

// Fetch navigates to the given URL, waits for dynamic content to settle,
// and returns the rendered HTML snapshot. The extractor runs on the
// snapshot, so the page is held only for the duration of this call.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Timeout guard    – hard deadline on the entire operation
//  2. Acquire page     – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup   – about:blank + return to pool (leak prevention)
//  4. Stealth + UA     – mask navigator.webdriver, override user agent
//  5. Hijack mount     – block images/fonts/media
//  6. Context binding  – propagate timeout to all Rod operations
//  7. Navigate         – triggers page load
//  8. Settle           – wait for the DOM to stop mutating
//  9. Snapshot         – page.HTML() + document.title + final URL
//
// Steps 4-5 must happen before step 7: stealth JS, the user agent, and
// resource blocking only take effect for navigations installed before them.
// Step 3's about:blank uses the original page reference (without request
// context), so cleanup succeeds even if the request context has expired.
func (s *Scraper) Fetch(ctx context.Context, targetURL string, timeout time.Duration) (*FetchResult, error) {
	// ── 1. Timeout guard ─────────────────────────────────────────────
	if timeout <= 0 || timeout > s.scraperCfg.MaxTimeout {
		timeout = s.scraperCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 2. Acquire page from pool ────────────────────────────────────
	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, acquireErr := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 3. CRITICAL DEFER: prevent DOM memory leak + guarantee pool return
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		s.pagePool.Put(page)
	}()

	// ── 4. Stealth injection ─────────────────────────────────────────
	if s.scraperCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	// ── 4b. User agent override ──────────────────────────────────────
	if s.browserCfg.UserAgent != "" {
		_ = (&proto.NetworkSetUserAgentOverride{
			UserAgent: s.browserCfg.UserAgent,
		}).Call(page)
	}

	// ── 4c. Extra headers (Google Referer looks like organic traffic) ─
	if u, parseErr := url.Parse(targetURL); parseErr == nil {
		referer := "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Referer": referer}),
		}.Call(page)
	}

	// ── 5. Mount hijack router (blocks Image/Font/Media) ─────────────
	router := setupHijack(page, s.scraperCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	// ── 6. Bind request context to page ──────────────────────────────
	p := page.Context(ctx)

	// ── 7. Navigate ──────────────────────────────────────────────────
	if navErr := p.Navigate(targetURL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	// ── 8. Settle: wait for the DOM to stop mutating ─────────────────
	if stableErr := p.WaitDOMStable(s.scraperCfg.SettleDelay, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}

	// ── 9. Snapshot rendered HTML ────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = targetURL
	}

	return &FetchResult{
		HTML:     rawHTML,
		Title:    title,
		FinalURL: finalURL,
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed ScrapeErrors so callers can
// map them to appropriate exit codes or HTTP statuses.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "scrape canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
