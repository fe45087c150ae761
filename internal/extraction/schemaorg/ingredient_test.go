package schemaorg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredient(t *testing.T) {
	ing := ParseIngredient("2 cups flour, sifted")
	assert.Equal(t, "2 cups flour, sifted", ing.RawText)
	assert.Equal(t, "2", ing.Quantity)
	assert.Equal(t, "cups", ing.Unit)
	assert.Equal(t, "flour", ing.Name)
	assert.Equal(t, "sifted", ing.Preparation)

	ing = ParseIngredient("1/2 tsp salt")
	assert.Equal(t, "1/2", ing.Quantity)
	assert.Equal(t, "tsp", ing.Unit)
	assert.Equal(t, "salt", ing.Name)
	assert.Empty(t, ing.Preparation)

	ing = ParseIngredient("3 large eggs")
	assert.Equal(t, "3", ing.Quantity)
	assert.Equal(t, "large", ing.Unit)
	assert.Equal(t, "eggs", ing.Name)

	ing = ParseIngredient("1-2 cloves garlic, minced")
	assert.Equal(t, "1-2", ing.Quantity)
	assert.Equal(t, "cloves", ing.Unit)
	assert.Equal(t, "garlic", ing.Name)
	assert.Equal(t, "minced", ing.Preparation)
}

func TestParseIngredientUnicodeFractions(t *testing.T) {
	ing := ParseIngredient("½ cup sugar")
	assert.Equal(t, "½", ing.Quantity)
	assert.Equal(t, "cup", ing.Unit)
	assert.Equal(t, "sugar", ing.Name)
}

func TestParseIngredientParentheticalPrep(t *testing.T) {
	ing := ParseIngredient("4 tbsp butter (softened)")
	assert.Equal(t, "4", ing.Quantity)
	assert.Equal(t, "tbsp", ing.Unit)
	assert.Equal(t, "butter", ing.Name)
	assert.Equal(t, "softened", ing.Preparation)
}

func TestParseIngredientUnparseable(t *testing.T) {
	// Lines without a leading quantity keep the full string as the name.
	ing := ParseIngredient("salt to taste")
	assert.Equal(t, "salt to taste", ing.RawText)
	assert.Equal(t, "salt to taste", ing.Name)
	assert.Empty(t, ing.Quantity)
	assert.Empty(t, ing.Unit)

	ing = ParseIngredient("freshly ground black pepper")
	assert.Equal(t, "freshly ground black pepper", ing.Name)
}

func TestParseIngredientGramUnits(t *testing.T) {
	ing := ParseIngredient("200 grams butter")
	assert.Equal(t, "200", ing.Quantity)
	assert.Equal(t, "grams", ing.Unit)
	assert.Equal(t, "butter", ing.Name)

	ing = ParseIngredient("200 g butter")
	assert.Equal(t, "g", ing.Unit)
	assert.Equal(t, "butter", ing.Name)
}
