package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nutrientLabels are the canonical panel labels recognised in nutrition
// facts blocks. Matching is by case-insensitive substring, so "TOTAL
// CARBOHYDRATE" and "Total Carbohydrates" both map to the same key.
var nutrientLabels = []string{
	"Serving Size",
	"Servings Per Container",
	"Calories",
	"Total Fat",
	"Saturated Fat",
	"Trans Fat",
	"Cholesterol",
	"Sodium",
	"Total Carbohydrate",
	"Dietary Fiber",
	"Sugars",
	"Protein",
}

// Nutrition parses a nutrition facts block into a label -> display value
// map. Values stay opaque text ("8g", "1 cup (140g)"); nothing is parsed
// into numbers or units. A table layout (tr/th/td) is preferred; flat
// text is scanned by label anchors. Returns nil when nothing matched.
func Nutrition(sel *goquery.Selection) map[string]string {
	if sel == nil {
		return nil
	}
	if rows := sel.Find("tr"); rows.Length() > 0 {
		if facts := nutritionFromRows(rows); len(facts) > 0 {
			return facts
		}
	}
	return NutritionFromText(sel.Text())
}

// nutritionFromRows reads label/value pairs from table rows. The first
// cell names the nutrient, the second holds its display value.
func nutritionFromRows(rows *goquery.Selection) map[string]string {
	facts := make(map[string]string)
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := Collapse(cells.Eq(0).Text())
		value := Collapse(cells.Eq(1).Text())
		if label == "" || value == "" {
			return
		}
		if name, ok := canonicalNutrient(label); ok {
			if _, seen := facts[name]; !seen {
				facts[name] = value
			}
		}
	})
	if len(facts) == 0 {
		return nil
	}
	return facts
}

// numericValue bounds the capture for number-valued nutrients so that
// text following the panel never bleeds into a value.
var numericValue = regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*(?:g|mg|mcg|kcal)?%?`)

// servingLimit caps free-text values ("1 cup (140g)") when no further
// anchor bounds them.
const servingLimit = 64

// NutritionFromText scans flat text for nutrient label anchors. The value
// of each nutrient is the text between its label and the next one, which
// holds up even when block layout collapsed into one run of text.
func NutritionFromText(text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	type anchor struct {
		name       string
		start, end int
	}
	var anchors []anchor
	for _, name := range nutrientLabels {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `s?\s*:?\s*`)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			anchors = append(anchors, anchor{name: name, start: loc[0], end: loc[1]})
		}
	}
	if len(anchors) == 0 {
		return nil
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].start < anchors[j].start })

	facts := make(map[string]string, len(anchors))
	prevEnd := -1
	for i, a := range anchors {
		// Skip anchors swallowed by a longer match at the same position
		// ("Total Fat" inside an already-consumed run).
		if a.start < prevEnd {
			continue
		}
		prevEnd = a.end

		valueEnd := len(text)
		if i+1 < len(anchors) {
			valueEnd = anchors[i+1].start
		}
		raw := strings.TrimSpace(text[a.end:valueEnd])

		var value string
		switch a.name {
		case "Serving Size", "Servings Per Container":
			if len(raw) > servingLimit {
				raw = raw[:servingLimit]
			}
			value = strings.Trim(Collapse(raw), ",.;")
		default:
			value = numericValue.FindString(raw)
		}
		if value == "" {
			continue
		}
		if _, seen := facts[a.name]; !seen {
			facts[a.name] = strings.TrimSpace(value)
		}
	}
	if len(facts) == 0 {
		return nil
	}
	return facts
}

// canonicalNutrient maps a free-form cell label to a canonical nutrient
// name by case-insensitive substring match.
func canonicalNutrient(label string) (string, bool) {
	lower := strings.ToLower(label)
	for _, name := range nutrientLabels {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}
