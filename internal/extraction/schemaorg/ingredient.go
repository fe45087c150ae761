package schemaorg

import (
	"regexp"
	"strings"
)

var (
	quantityPattern = regexp.MustCompile(`^[\d½¼¾⅓⅔⅛/\-\s]+`)

	// Longer alternatives come first so "grams" wins over "g".
	unitPattern = regexp.MustCompile(`(?i)^(cups?|tablespoons?|tbsp|teaspoons?|tsp|pounds?|lbs?|lb|ounces?|oz|grams?|g|kilograms?|kg|ml|liters?|l|pieces?|slices?|cloves?|heads?|bunches?|cans?|packages?|pinch(?:es)?|dash(?:es)?|large|medium|small)\s+`)

	prepPattern = regexp.MustCompile(`,\s*(.+)$|\(([^)]+)\)$`)
)

// ParseIngredient splits a raw ingredient line into quantity, unit, name and
// preparation note. The heuristic covers the common "2 cups flour, sifted"
// shape; lines it cannot pick apart keep the full string as the name, with
// RawText always preserving the original.
func ParseIngredient(rawText string) Ingredient {
	rawText = strings.TrimSpace(rawText)

	ing := Ingredient{
		RawText: rawText,
		Name:    rawText,
	}

	remaining := rawText
	if loc := quantityPattern.FindStringIndex(rawText); loc != nil {
		quantity := strings.TrimSpace(rawText[loc[0]:loc[1]])
		if quantity != "" {
			ing.Quantity = quantity
		}
		remaining = strings.TrimSpace(rawText[loc[1]:])
	}

	if loc := unitPattern.FindStringSubmatchIndex(remaining); loc != nil {
		ing.Unit = strings.ToLower(remaining[loc[2]:loc[3]])
		ing.Name = strings.TrimSpace(remaining[loc[1]:])
	} else {
		ing.Name = remaining
	}

	if loc := prepPattern.FindStringSubmatchIndex(ing.Name); loc != nil {
		prep := submatch(ing.Name, loc, 1)
		if prep == "" {
			prep = submatch(ing.Name, loc, 2)
		}
		ing.Preparation = strings.TrimSpace(prep)
		ing.Name = strings.TrimSpace(ing.Name[:loc[0]])
	}

	return ing
}

func submatch(s string, loc []int, group int) string {
	start, end := loc[2*group], loc[2*group+1]
	if start < 0 {
		return ""
	}
	return s[start:end]
}
