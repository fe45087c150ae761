package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a shared taxonomy entry. The (name, type) pair is unique;
// recipes link to categories through the recipe_categories join table.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex:idx_categories_name_type" json:"name"`
	Type string    `gorm:"size:50;not null;uniqueIndex:idx_categories_name_type" json:"type"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil && tx.Dialector.Name() != "postgres" {
		c.ID = uuid.New()
	}
	return nil
}

// RecipeCategory is the join row between recipes and categories. Confidence
// records how sure the categorizer was about the assignment.
type RecipeCategory struct {
	RecipeID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Confidence float64   `gorm:"default:1.0"`
}

func (RecipeCategory) TableName() string {
	return "recipe_categories"
}
