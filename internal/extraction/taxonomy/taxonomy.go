// Package taxonomy defines the category vocabulary recipes are classified
// into and the keyword matching used to infer categories from recipe text.
package taxonomy

import (
	"regexp"
	"strings"
)

// Types lists the category types in display order.
var Types = []string{"dietary", "protein", "course", "cuisine", "method", "season", "difficulty", "time"}

// Values maps each category type to its allowed values. Anything outside
// this vocabulary is rejected, including values invented by the language
// model.
var Values = map[string][]string{
	"dietary": {"vegetarian", "vegan", "pescatarian", "gluten-free", "dairy-free", "keto", "paleo"},
	"protein": {"chicken", "beef", "pork", "fish", "seafood", "tofu", "legumes", "eggs"},
	"course":  {"breakfast", "lunch", "dinner", "snack", "dessert", "appetizer", "side-dish", "drink"},
	"cuisine": {
		"italian", "mexican", "indian", "thai", "japanese", "chinese", "korean",
		"mediterranean", "middle-eastern", "french", "american", "greek", "vietnamese",
	},
	"method":     {"baking", "grilling", "frying", "slow-cooker", "one-pot", "air-fryer", "instant-pot", "no-cook", "stir-fry"},
	"season":     {"spring", "summer", "fall", "winter"},
	"difficulty": {"easy", "medium", "hard"},
	"time":       {"under-15m", "15-30m", "30-60m", "over-60m"},
}

// keywordPatterns match a category value as a whole word, with hyphenated
// values also matching their spaced form ("gluten free").
var keywordPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, values := range Values {
		for _, value := range values {
			pattern := strings.ReplaceAll(regexp.QuoteMeta(value), "-", "[ -]")
			keywordPatterns[value] = regexp.MustCompile(`\b` + pattern + `\b`)
		}
	}
}

// IsValid reports whether value is part of the vocabulary for catType.
func IsValid(catType, value string) bool {
	for _, v := range Values[catType] {
		if v == value {
			return true
		}
	}
	return false
}

// Validate filters a categories map down to known types and allowed values.
// Types left with no valid values are dropped entirely.
func Validate(categories map[string][]string) map[string][]string {
	validated := make(map[string][]string)
	for catType, values := range categories {
		if _, known := Values[catType]; !known {
			continue
		}
		var valid []string
		for _, value := range values {
			if IsValid(catType, value) {
				valid = append(valid, value)
			}
		}
		if len(valid) > 0 {
			validated[catType] = dedupe(valid)
		}
	}
	return validated
}

// Categorize infers categories from recipe text by matching taxonomy values
// as keywords in the title, description and ingredient names. The time type
// is excluded; it comes from TimeBucket instead.
func Categorize(title, description string, ingredientNames []string) map[string][]string {
	text := strings.ToLower(title + " " + description + " " + strings.Join(ingredientNames, " "))

	matched := make(map[string][]string)
	for _, catType := range Types {
		if catType == "time" {
			continue
		}
		for _, value := range Values[catType] {
			if keywordPatterns[value].MatchString(text) {
				matched[catType] = append(matched[catType], value)
			}
		}
	}
	return matched
}

// TimeBucket maps a total time in minutes to its time category value.
// Buckets are under-15m for < 15, 15-30m up to 30, 30-60m up to 60, and
// over-60m beyond that. Returns "" for non-positive input.
func TimeBucket(totalMins int) string {
	switch {
	case totalMins <= 0:
		return ""
	case totalMins < 15:
		return "under-15m"
	case totalMins <= 30:
		return "15-30m"
	case totalMins <= 60:
		return "30-60m"
	default:
		return "over-60m"
	}
}

// Merge unions two category maps, preserving the order of base values and
// removing duplicates.
func Merge(base, extra map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(base))
	for catType, values := range base {
		merged[catType] = append([]string(nil), values...)
	}
	for catType, values := range extra {
		merged[catType] = append(merged[catType], values...)
	}
	for catType, values := range merged {
		merged[catType] = dedupe(values)
	}
	return merged
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
