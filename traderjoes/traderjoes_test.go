package traderjoes

import (
	"testing"

	"github.com/pantry-scan/pantryscan/models"
	"github.com/stretchr/testify/assert"
)

const productURL = "https://www.traderjoes.com/home/products/pdp/peanut-butter-051836"

const fullProductPage = `<html>
<head><title>Organic Creamy Peanut Butter | Trader Joe's</title></head>
<body>
<h1 data-testid="product-name">Organic Creamy Peanut Butter</h1>
<div data-testid="product-description">Made from dry roasted organic peanuts, nothing else but a dash of salt.</div>
<span data-testid="product-price">$3.99</span>
<div class="IngredientsSummary_ingredientsSummary__1WMGh">
  Ingredients: Dry Roasted Organic Peanuts, Sea Salt
  <ul class="IngredientsSummary_ingredientsSummary__allergensList__1ROpD">
    <li>CONTAINS PEANUTS</li>
  </ul>
</div>
<table class="NutritionFacts_table__x1">
  <tr><th>Serving Size</th><td>2 tbsp (32g)</td></tr>
  <tr><th>Calories</th><td>190</td></tr>
  <tr><th>Total Fat</th><td>16g</td></tr>
  <tr><th>Protein</th><td>8g</td></tr>
</table>
</body></html>`

const labelOnlyPage = `<html><body>
<div>Brand: Trader Joe's</div>
<div>Price: $3.99</div>
<div>Ingredients: Water, Salt, Sugar</div>
</body></html>`

func TestCanHandle(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"product page", productURL, true},
		{"upper case host", "https://WWW.TRADERJOES.COM/home/PRODUCTS/pdp/x-1", true},
		{"category page", "https://www.traderjoes.com/home/recipes", false},
		{"other site", "https://example.com/products/thing", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.CanHandle(tt.url))
		})
	}
}

func TestExtractProduct_FullPage(t *testing.T) {
	p := ExtractProduct(fullProductPage, productURL)

	assert.Equal(t, models.StatusSuccess, p.Status)
	assert.Equal(t, productURL, p.URL)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Organic Creamy Peanut Butter", p.Name)
	assert.Equal(t, "Trader Joe's", p.Brand)
	assert.Equal(t, "Made from dry roasted organic peanuts, nothing else but a dash of salt.", p.Description)
	assert.Equal(t, "$3.99", p.Price)
	assert.Equal(t, []string{"Dry Roasted Organic Peanuts", "Sea Salt"}, p.Ingredients)
	assert.Equal(t, []string{"PEANUTS"}, p.Allergens)
	assert.Equal(t, "190", p.NutritionFacts["Calories"])
	assert.Equal(t, "16g", p.NutritionFacts["Total Fat"])
	assert.Equal(t, "2 tbsp (32g)", p.NutritionFacts["Serving Size"])
	assert.True(t, p.Valid())
}

func TestExtractProduct_LabelAnchoredOnly(t *testing.T) {
	p := ExtractProduct(labelOnlyPage, productURL)

	assert.Equal(t, "Trader Joe's", p.Brand)
	assert.Equal(t, "$3.99", p.Price)
	assert.Equal(t, []string{"Water", "Salt", "Sugar"}, p.Ingredients)
}

func TestExtractProduct_MissingAllergensDoesNotAffectOthers(t *testing.T) {
	p := ExtractProduct(labelOnlyPage, productURL)

	assert.Nil(t, p.Allergens)
	assert.Equal(t, "$3.99", p.Price)
	assert.Equal(t, []string{"Water", "Salt", "Sugar"}, p.Ingredients)
	assert.Equal(t, models.StatusSuccess, p.Status)
}

func TestExtractProduct_Idempotent(t *testing.T) {
	p1 := ExtractProduct(fullProductPage, productURL)
	p2 := ExtractProduct(fullProductPage, productURL)

	assert.Equal(t, p1.Name, p2.Name)
	assert.Equal(t, p1.Price, p2.Price)
	assert.Equal(t, p1.Ingredients, p2.Ingredients)
	assert.Equal(t, p1.Allergens, p2.Allergens)
	assert.Equal(t, p1.NutritionFacts, p2.NutritionFacts)
}

func TestExtractProduct_NameFromTitleFallback(t *testing.T) {
	page := `<html><head><title>Crunchy Almond Butter | Trader Joe's</title></head>
<body><div>Ingredients: Almonds</div></body></html>`

	p := ExtractProduct(page, productURL)
	assert.Equal(t, "Crunchy Almond Butter", p.Name)
}

func TestExtractProduct_ErrorPageYieldsUnknownName(t *testing.T) {
	page := `<html><head><title>Oops! | Trader Joe's</title></head>
<body><h1>Oops!</h1></body></html>`

	p := ExtractProduct(page, productURL)
	assert.Equal(t, "Unknown Product", p.Name)
	assert.Empty(t, p.Ingredients)
	assert.False(t, p.Valid())
}

func TestExtractProduct_EmptyPage(t *testing.T) {
	p := ExtractProduct("<html><body></body></html>", productURL)

	assert.Equal(t, "Unknown Product", p.Name)
	assert.Equal(t, "Trader Joe's", p.Brand)
	assert.Empty(t, p.Price)
	assert.Empty(t, p.Ingredients)
	assert.Nil(t, p.Allergens)
	assert.Nil(t, p.NutritionFacts)
	assert.Equal(t, models.StatusSuccess, p.Status)
}

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "Water, Salt, Sugar", []string{"Water", "Salt", "Sugar"}},
		{"leading block label", "Ingredients: Water, Salt", []string{"Water", "Salt"}},
		{"contains prefix dropped", "Water, contains soy lecithin", []string{"Water", "soy lecithin"}},
		{"case preserved", "Dry Roasted Peanuts", []string{"Dry Roasted Peanuts"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIngredients(tt.in))
		})
	}
}
