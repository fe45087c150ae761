package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag sources.
const (
	TagSourceHashtag = "hashtag"
	TagSourceKeyword = "keyword"
	TagSourceManual  = "manual"
)

// Tag is a freeform label on a recipe. Source records where it came from:
// "hashtag" for tags lifted from the caption, "keyword" for model-produced
// ones, "manual" for user edits.
type Tag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Tag      string    `gorm:"size:200;not null" json:"tag"`
	Source   string    `gorm:"size:50" json:"source,omitempty"`
}

func (Tag) TableName() string {
	return "recipe_tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil && tx.Dialector.Name() != "postgres" {
		t.ID = uuid.New()
	}
	return nil
}
