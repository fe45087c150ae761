package schemaorg

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// findRecipeNode locates the first schema.org/Recipe node in decoded JSON-LD.
// Documents may hold the recipe directly, inside a top-level array, or inside
// an @graph array; @type itself may be a string or a list of strings.
func findRecipeNode(data any) map[string]any {
	switch node := data.(type) {
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"].([]any); ok {
			for _, item := range graph {
				if found := findRecipeNode(item); found != nil {
					return found
				}
			}
		}
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func isRecipeType(value any) bool {
	switch t := value.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// recipeFromNode builds a normalized Recipe from a schema.org/Recipe node.
func recipeFromNode(node map[string]any, sourceURL, siteName string) *Recipe {
	title := firstString(node["name"])
	if strings.TrimSpace(title) == "" {
		title = "Untitled Recipe"
	}

	return &Recipe{
		Title:         title,
		Description:   firstString(node["description"]),
		Ingredients:   parseIngredientList(node["recipeIngredient"]),
		Instructions:  parseInstructions(node["recipeInstructions"]),
		PrepTimeMins:  ParseDuration(firstString(node["prepTime"])),
		CookTimeMins:  ParseDuration(firstString(node["cookTime"])),
		TotalTimeMins: ParseDuration(firstString(node["totalTime"])),
		Servings:      yieldString(node["recipeYield"]),
		Cuisine:       firstString(node["recipeCuisine"]),
		Category:      firstString(node["recipeCategory"]),
		ImageURL:      imageURL(node["image"]),
		Author:        authorName(node["author"]),
		SourceURL:     sourceURL,
		SiteName:      siteName,
	}
}

// firstString unwraps a value that may be a string or a list of strings.
func firstString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return firstString(v[0])
		}
	}
	return ""
}

// imageURL unwraps string, list and ImageObject image encodings.
func imageURL(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return imageURL(v[0])
		}
	case map[string]any:
		if u, ok := v["url"].(string); ok && u != "" {
			return u
		}
		if u, ok := v["contentUrl"].(string); ok {
			return u
		}
	}
	return ""
}

// authorName unwraps string, list and Person author encodings.
func authorName(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return authorName(v[0])
		}
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	}
	return ""
}

// yieldString normalizes recipeYield, which may be a number, a string like
// "4 servings", or a list of either.
func yieldString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.Itoa(int(v))
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		if len(v) > 0 {
			return yieldString(v[0])
		}
	}
	return ""
}

func parseIngredientList(value any) []Ingredient {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var ingredients []Ingredient
	for _, item := range items {
		switch ing := item.(type) {
		case string:
			ingredients = append(ingredients, ParseIngredient(ing))
		case map[string]any:
			// A few sites nest ingredient objects instead of plain strings.
			text := firstString(ing["text"])
			if text == "" {
				text = firstString(ing["name"])
			}
			if text != "" {
				ingredients = append(ingredients, ParseIngredient(text))
			}
		}
	}
	return ingredients
}

// parseInstructions normalizes the three recipeInstructions shapes: a single
// blob string, a list of strings, or a list of HowToStep/HowToSection nodes.
// Section names are kept as "**Name**" marker steps so grouped recipes stay
// readable.
func parseInstructions(value any) []string {
	switch v := value.(type) {
	case string:
		return splitInstructionText(v)
	case []any:
		var steps []string
		for _, item := range v {
			switch step := item.(type) {
			case string:
				if s := strings.TrimSpace(step); s != "" {
					steps = append(steps, s)
				}
			case map[string]any:
				switch step["@type"] {
				case "HowToSection":
					if name := firstString(step["name"]); name != "" {
						steps = append(steps, "**"+name+"**")
					}
					steps = append(steps, parseInstructions(step["itemListElement"])...)
				default:
					// HowToStep, or step objects that never declare a type.
					if text := strings.TrimSpace(firstString(step["text"])); text != "" {
						steps = append(steps, text)
					}
				}
			}
		}
		return steps
	}
	return nil
}

// splitInstructionText breaks a single instruction blob into steps on line
// breaks and on sentence boundaries (a period followed by whitespace and a
// capital letter).
func splitInstructionText(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, splitSentences(line)...)
	}
	return steps
}

func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j > i+1 && j < len(runes) && unicode.IsUpper(runes[j]) {
			if s := strings.TrimSpace(string(runes[start:i])); s != "" {
				out = append(out, s)
			}
			start = j
			i = j - 1
		}
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}

	return out
}
