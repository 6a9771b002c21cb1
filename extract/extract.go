// Package extract implements label-anchored field extraction over a
// rendered HTML snapshot. It never talks to a browser: callers fetch the
// page once and run every lookup against the same parsed document, so
// extraction is deterministic and testable offline.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Document wraps a parsed HTML snapshot that all field lookups share.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses the rendered HTML of one page.
func NewDocument(rawHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Title returns the document <title> text, cleaned.
func (d *Document) Title() string {
	return Collapse(d.doc.Find("title").First().Text())
}

// Text returns the full visible text of the document body.
func (d *Document) Text() string {
	return d.doc.Find("body").Text()
}

// Select returns the first selection matching any of the given CSS
// selectors, tried in order. Invalid selectors are skipped. Returns nil
// when nothing matches.
func (d *Document) Select(selectors ...string) *goquery.Selection {
	for _, s := range selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			continue
		}
		if match := d.doc.FindMatcher(sel); match.Length() > 0 {
			return match
		}
	}
	return nil
}

// Matcher locates one field in a document. Each field carries its own
// matcher so that a site markup change is fixed by editing one value,
// not the whole pipeline.
//
// Lookup order: CSS selectors first (most precise), then a
// case-insensitive label anchor ("Ingredients:" found anywhere in the
// page text, value read from the text following the label or from the
// next sibling element).
type Matcher struct {
	// Field names the target field, for logging only.
	Field string

	// Selectors are CSS selectors tried in order. Invalid ones are skipped.
	Selectors []string

	// Labels are label strings (without trailing colon) for the
	// text-anchored fallback.
	Labels []string
}

// Find returns the cleaned text for the field, or "" when neither a
// selector nor a label matches. Absence is not an error.
func (m Matcher) Find(d *Document) string {
	if sel := d.Select(m.Selectors...); sel != nil {
		if text := Collapse(sel.First().Text()); text != "" {
			return m.stripLabels(text)
		}
	}
	for _, label := range m.Labels {
		if v := labelValue(d, label); v != "" {
			return v
		}
	}
	return ""
}

// FindAll returns the cleaned text of every element matched by the
// field's selectors (one entry per element), falling back to the single
// label-anchored value. Useful for list-shaped fields such as allergens.
func (m Matcher) FindAll(d *Document) []string {
	if sel := d.Select(m.Selectors...); sel != nil {
		var out []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if text := Collapse(s.Text()); text != "" {
				out = append(out, m.stripLabels(text))
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	for _, label := range m.Labels {
		if v := labelValue(d, label); v != "" {
			return []string{v}
		}
	}
	return nil
}

// stripLabels removes a leading "<label>:" from selector-matched text, so
// that e.g. a container holding "Ingredients: Water, Salt" yields only
// the value part.
func (m Matcher) stripLabels(text string) string {
	for _, label := range m.Labels {
		re := labelPattern(label)
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			return strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// labelValue scans leaf elements for a case-insensitive "<label>:" anchor
// and returns the cleaned text that follows it. When the label sits alone
// in its element, the value is read from the next sibling element.
func labelValue(d *Document, label string) string {
	re := labelPattern(label)
	var value string

	d.doc.Find("body *").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		// Leaf elements only: matching on containers would return the
		// text of the whole subtree.
		if sel.Children().Length() > 0 {
			return true
		}
		text := sel.Text()
		loc := re.FindStringIndex(text)
		if loc == nil {
			return true
		}
		if rest := Collapse(text[loc[1]:]); rest != "" {
			value = rest
			return false
		}
		// Label alone in its element: value lives in the next sibling.
		if next := Collapse(sel.Next().Text()); next != "" {
			value = next
			return false
		}
		return true
	})

	return value
}

// labelPattern builds the case-insensitive anchor regexp for a label.
// The colon is required so that prose mentions of the word do not match.
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*:\s*`)
}
