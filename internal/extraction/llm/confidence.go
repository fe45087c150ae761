package llm

import (
	"math"

	"github.com/recipe-saver/backend/internal/extraction/schemaorg"
)

// Confidence scores an extracted recipe by completeness, from 0.0 to 1.0.
// Ingredients and instructions carry the most weight; a recipe with three or
// more of each, a real title and timing lands near the top of the scale.
func Confidence(recipe *schemaorg.Recipe) float64 {
	var score, maxScore float64

	maxScore += 1.0
	if recipe.Title != "" && recipe.Title != "Untitled Recipe" {
		score += 1.0
	}

	maxScore += 2.0
	if len(recipe.Ingredients) >= 3 {
		score += 2.0
	} else if len(recipe.Ingredients) >= 1 {
		score += 1.0
	}

	maxScore += 2.0
	if len(recipe.Instructions) >= 3 {
		score += 2.0
	} else if len(recipe.Instructions) >= 1 {
		score += 1.0
	}

	maxScore += 1.0
	if hasMinutes(recipe.TotalTimeMins) || (hasMinutes(recipe.PrepTimeMins) && hasMinutes(recipe.CookTimeMins)) {
		score += 1.0
	}

	maxScore += 0.5
	if recipe.Servings != "" {
		score += 0.5
	}

	maxScore += 0.5
	if recipe.Description != "" {
		score += 0.5
	}

	return math.Round(score/maxScore*100) / 100
}

func hasMinutes(mins *int) bool {
	return mins != nil && *mins > 0
}
