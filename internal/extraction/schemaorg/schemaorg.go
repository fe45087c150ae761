// Package schemaorg fetches recipe pages and normalizes schema.org/Recipe
// markup into a single internal shape.
//
// Every recipe site encodes the vocabulary a little differently: instructions
// arrive as plain strings, HowToStep objects or one run-on paragraph; images
// as URLs, lists or ImageObject nodes; yields as numbers, strings or lists.
// The parser accepts all the variants seen in the wild and produces one
// normalized Recipe.
package schemaorg

// Ingredient is one ingredient line split into its components. RawText keeps
// the original string so imperfect parses can be audited and re-edited.
type Ingredient struct {
	RawText     string
	Name        string
	Quantity    string
	Unit        string
	Preparation string
}

// Recipe is the normalized output shared by the schema.org parser and the
// transcript extractor. Pointer time fields distinguish "not stated" from
// zero minutes. Empty strings mean absent for the remaining optional fields.
type Recipe struct {
	Title         string
	Description   string
	Ingredients   []Ingredient
	Instructions  []string
	PrepTimeMins  *int
	CookTimeMins  *int
	TotalTimeMins *int
	Servings      string
	Difficulty    string
	Cuisine       string
	Category      string
	ImageURL      string
	Author        string
	SourceURL     string
	SiteName      string
}

// Complete reports whether both ingredients and instructions were recovered.
func (r *Recipe) Complete() bool {
	return len(r.Ingredients) > 0 && len(r.Instructions) > 0
}
