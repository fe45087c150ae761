package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-saver/backend/internal/model"
	"github.com/recipe-saver/backend/internal/testhelpers"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db := testhelpers.StartPostgres(t)

	recipe := testhelpers.SeedRecipe(t, db, "Creamy Garlic Pasta")
	assert.NotEqual(t, uuid.Nil, recipe.ID)

	var loaded model.Recipe
	err := db.Preload("Ingredients").Preload("Tags").First(&loaded, "id = ?", recipe.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "Creamy Garlic Pasta", loaded.Title)
	assert.Len(t, loaded.Ingredients, 1)
	assert.Len(t, loaded.Tags, 1)
	assert.Equal(t, 3, len(loaded.Embedding.Slice()))
}

func TestMigrateJoinTableHasConfidence(t *testing.T) {
	db := testhelpers.StartPostgres(t)

	recipe := testhelpers.SeedRecipe(t, db, "Lemon Chicken")
	category := model.Category{Name: "italian", Type: "cuisine"}
	require.NoError(t, db.Create(&category).Error)

	join := model.RecipeCategory{RecipeID: recipe.ID, CategoryID: category.ID, Confidence: 0.8}
	require.NoError(t, db.Create(&join).Error)

	var loaded model.RecipeCategory
	err := db.First(&loaded, "recipe_id = ? AND category_id = ?", recipe.ID, category.ID).Error
	require.NoError(t, err)
	assert.Equal(t, 0.8, loaded.Confidence)

	var withCategories model.Recipe
	err = db.Preload("Categories").First(&withCategories, "id = ?", recipe.ID).Error
	require.NoError(t, err)
	require.Len(t, withCategories.Categories, 1)
	assert.Equal(t, "italian", withCategories.Categories[0].Name)
}
