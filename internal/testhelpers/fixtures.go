package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/model"
	"github.com/recipe-saver/backend/internal/service"
)

// SeedRecipe inserts a recipe with one ingredient and one tag, shaped the way
// an extraction run would have saved it.
func SeedRecipe(t *testing.T, db *gorm.DB, title string) *model.Recipe {
	description := "A quick weeknight dinner"
	totalTime := 30
	recipe := &model.Recipe{
		Title:                title,
		Description:          description,
		Instructions:         model.JSONBStringArray{"Boil the pasta", "Toss with the sauce"},
		TotalTimeMins:        &totalTime,
		Difficulty:           "easy",
		VideoURL:             "https://www.youtube.com/watch?v=abc12345678",
		VideoPlatform:        string(extraction.PlatformYouTube),
		ExtractionMethod:     string(extraction.MethodSchemaOrg),
		ExtractionConfidence: 0.95,
		Embedding:            service.GenerateEmbedding(title, description),
		Ingredients: []model.Ingredient{
			{Name: "spaghetti", Quantity: "200", Unit: "g", RawText: "200g spaghetti"},
		},
		Tags: []model.Tag{
			{Tag: "pasta", Source: model.TagSourceHashtag},
		},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
