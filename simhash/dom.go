package simhash

import (
	"strings"

	"golang.org/x/net/html"
)

// DriftThreshold is the Hamming distance above which two DOM fingerprints
// of the same URL are treated as a markup change worth surfacing.
const DriftThreshold = 10

// FingerprintDOM computes a SimHash fingerprint of the DOM structure:
// tag names in document order, shingled, with text content and attributes
// ignored. Two renders of the same product differ only in text, so their
// structural fingerprints match; a storefront redesign does not.
func FingerprintDOM(htmlStr string) uint64 {
	tags := extractTags(htmlStr)
	if len(tags) == 0 {
		return 0
	}

	shingles := makeShingles(tags, 3)
	if len(shingles) == 0 {
		// Too few tags for shingles; hash the tag sequence itself.
		return Fingerprint(strings.Join(tags, " "))
	}
	return Fingerprint(strings.Join(shingles, " "))
}

// Drifted reports whether a page's structure moved past DriftThreshold
// since the previous fingerprint. Zero fingerprints (no prior scrape)
// never count as drift.
func Drifted(prev, current uint64) bool {
	if prev == 0 || current == 0 {
		return false
	}
	return !Similar(prev, current, DriftThreshold)
}

// extractTags walks HTML with the tokenizer and collects open tag names in order.
func extractTags(htmlStr string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlStr))
	var tags []string

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			tags = append(tags, string(tn))
		}
	}
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
