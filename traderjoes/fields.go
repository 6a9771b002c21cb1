package traderjoes

import (
	"regexp"
	"strings"

	"github.com/pantry-scan/pantryscan/extract"
	"github.com/pantry-scan/pantryscan/models"
)

// defaultBrand is stamped on every record when the page itself does not
// carry a brand label; Trader Joe's sells its own label almost exclusively.
const defaultBrand = "Trader Joe's"

// unknownName is the name fallback when no selector, label, or page
// title yields anything usable.
const unknownName = "Unknown Product"

// Per-field matchers. Site markup changes are fixed here, one field at a
// time, without touching the pipeline.
var (
	nameMatcher = extract.Matcher{
		Field: "name",
		Selectors: []string{
			`h1[data-testid="product-name"]`,
			`h1[class*="ProductDetails"]`,
			`h1[class*="product-name"]`,
			`h1[class*="product-title"]`,
			`h1[itemprop="name"]`,
			`h1`,
		},
	}

	brandMatcher = extract.Matcher{
		Field: "brand",
		Selectors: []string{
			`[data-testid="product-brand"]`,
			`[itemprop="brand"]`,
		},
		Labels: []string{"Brand"},
	}

	descriptionMatcher = extract.Matcher{
		Field: "description",
		Selectors: []string{
			`div[data-testid="product-description"]`,
			`div[class*="ProductDetails__description"]`,
			`div[class*="product-description"]`,
			`div[itemprop="description"]`,
			`div[class*="ProductDetails__content"]`,
		},
		Labels: []string{"Description"},
	}

	priceMatcher = extract.Matcher{
		Field: "price",
		Selectors: []string{
			`span[data-testid="product-price"]`,
			`span.product-price`,
			`span[itemprop="price"]`,
		},
		Labels: []string{"Price"},
	}

	ingredientsMatcher = extract.Matcher{
		Field: "ingredients",
		Selectors: []string{
			`div[class*="IngredientsSummary"]`,
			`div[class*="ingredients-summary"]`,
			`div[data-testid="ingredients"]`,
			`div[itemprop="ingredients"]`,
		},
		Labels: []string{"Ingredients"},
	}

	allergensMatcher = extract.Matcher{
		Field: "allergens",
		Selectors: []string{
			`ul[class*="allergensList"] li`,
			`div[class*="IngredientsSummary"] ul li`,
			`div[data-testid="allergens"]`,
			`div[class*="allergen-information"]`,
		},
		Labels: []string{"Allergens", "Contains", "May contain"},
	}

	nutritionSelectors = []string{
		`div[data-testid="nutrition-facts"]`,
		`table[class*="NutritionFacts"]`,
		`div[class*="NutritionFacts"]`,
		`div[class*="nutrition-facts"]`,
		`div[class*="ProductDetails__nutrition"]`,
		`div[itemprop="nutrition"]`,
	}
)

var nutritionAnchor = regexp.MustCompile(`(?i)nutrition\s+facts`)

// ExtractProduct runs every field lookup against the rendered HTML of one
// product page and assembles the record. Lookups are independent: a field
// whose label is absent stays empty and never blocks the others. The only
// way this returns a failed record is unparseable HTML.
func ExtractProduct(rawHTML, pageURL string) *models.Product {
	p := models.NewProduct(pageURL)

	doc, err := extract.NewDocument(rawHTML)
	if err != nil {
		p.Status = models.StatusFailed
		p.ErrorMessage = "failed to parse page HTML: " + err.Error()
		return p
	}

	p.Name = extractName(doc)
	p.Brand = extractBrand(doc)
	p.Description = descriptionMatcher.Find(doc)
	p.Price = priceMatcher.Find(doc)
	p.Ingredients = parseIngredients(ingredientsMatcher.Find(doc))
	p.Allergens = extractAllergens(doc)
	p.NutritionFacts = extractNutrition(doc)
	p.Status = models.StatusSuccess
	return p
}

// extractName walks the h1 selector chain and falls back to the page
// title stripped of the site suffix. The storefront renders "Oops!" as
// the heading of its error page, so that value is rejected.
func extractName(doc *extract.Document) string {
	if name := nameMatcher.Find(doc); name != "" && name != "Oops!" {
		return name
	}

	title := doc.Title()
	if strings.Contains(title, defaultBrand) {
		name, _, _ := strings.Cut(title, "|")
		name = extract.Collapse(strings.ReplaceAll(name, defaultBrand, ""))
		if name != "" && name != "Oops!" {
			return name
		}
	}
	return unknownName
}

func extractBrand(doc *extract.Document) string {
	if brand := brandMatcher.Find(doc); brand != "" {
		return brand
	}
	return defaultBrand
}

// containsClause spots an allergen statement embedded mid-item; the
// ingredients container nests the CONTAINS list on the live site.
var containsClause = regexp.MustCompile(`(?i)\scontains\s`)

// parseIngredients splits an ingredients block into individual items.
// Original casing is preserved. A leading "Ingredients:" on the block and
// a "contains " prefix on any item are dropped; an allergen statement
// trailing the last item ("Sea Salt CONTAINS PEANUTS") is cut off.
func parseIngredients(text string) []string {
	text, _ = extract.CutPrefixFold(text, "ingredients:")

	var items []string
	for _, item := range extract.SplitList(text) {
		if rest, ok := extract.CutPrefixFold(item, "contains "); ok {
			item = rest
		} else if loc := containsClause.FindStringIndex(item); loc != nil {
			item = strings.TrimSpace(item[:loc[0]])
		}
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// extractAllergens collects allergen list items, strips the CONTAINS
// prefix the site renders on each entry, and splits comma-delimited runs.
func extractAllergens(doc *extract.Document) []string {
	var allergens []string
	for _, block := range allergensMatcher.FindAll(doc) {
		block, _ = extract.CutPrefixFold(block, "may contain")
		block, _ = extract.CutPrefixFold(block, "contains")
		block = strings.TrimLeft(block, ":")
		allergens = append(allergens, extract.SplitList(block)...)
	}
	if len(allergens) == 0 {
		return nil
	}
	return allergens
}

// extractNutrition looks for a nutrition facts container first; when the
// markup carries none, the flat body text is scanned, but only when a
// "Nutrition Facts" heading is present so that stray nutrient words in
// prose do not fabricate a panel.
func extractNutrition(doc *extract.Document) map[string]string {
	if sel := doc.Select(nutritionSelectors...); sel != nil {
		if facts := extract.Nutrition(sel); len(facts) > 0 {
			return facts
		}
	}
	if body := doc.Text(); nutritionAnchor.MatchString(body) {
		return extract.NutritionFromText(body)
	}
	return nil
}
