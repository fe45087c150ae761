package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/recipe-saver/backend/internal/model"
)

// Migrate brings the schema up to date. On PostgreSQL the pgvector extension
// is installed first so the embedding column type exists.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	// The join table carries a confidence column, so GORM has to know about
	// the model before building recipe_categories.
	if err := db.SetupJoinTable(&model.Recipe{}, "Categories", &model.RecipeCategory{}); err != nil {
		return fmt.Errorf("failed to set up category join table: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Recipe{},
		&model.Ingredient{},
		&model.Category{},
		&model.Tag{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
