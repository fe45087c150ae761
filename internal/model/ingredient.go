package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is one line of a recipe's ingredient list. Quantity, unit and
// preparation are kept as parsed fragments; RawText preserves the original
// line so nothing is lost to parsing.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Quantity    string    `gorm:"size:50" json:"quantity,omitempty"`
	Unit        string    `gorm:"size:50" json:"unit,omitempty"`
	Preparation string    `gorm:"size:200" json:"preparation,omitempty"`
	RawText     string    `gorm:"size:500" json:"raw_text,omitempty"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil && tx.Dialector.Name() != "postgres" {
		i.ID = uuid.New()
	}
	return nil
}

// DisplayText joins the present fragments into a readable line, e.g.
// "2 cups flour, sifted".
func (i Ingredient) DisplayText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Quantity, i.Unit, i.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	text := strings.Join(parts, " ")
	if i.Preparation != "" {
		text += ", " + i.Preparation
	}
	return text
}
