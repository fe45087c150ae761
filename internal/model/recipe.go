package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a saved recipe along with the provenance of its extraction.
type Recipe struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title        string           `gorm:"size:500;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description,omitempty"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`

	PrepTimeMins  *int   `json:"prep_time_mins,omitempty"`
	CookTimeMins  *int   `json:"cook_time_mins,omitempty"`
	TotalTimeMins *int   `json:"total_time_mins,omitempty"`
	Servings      string `gorm:"size:100" json:"servings,omitempty"`
	Difficulty    string `gorm:"size:50" json:"difficulty,omitempty"`

	VideoURL       string `gorm:"size:2000" json:"video_url,omitempty"`
	VideoPlatform  string `gorm:"size:50" json:"video_platform,omitempty"`
	RecipePageURL  string `gorm:"size:2000" json:"recipe_page_url,omitempty"`
	RecipeSiteName string `gorm:"size:200" json:"recipe_site_name,omitempty"`
	ThumbnailURL   string `gorm:"size:2000" json:"thumbnail_url,omitempty"`
	AuthorName     string `gorm:"size:200" json:"author_name,omitempty"`

	OriginalCaption      string  `gorm:"type:text" json:"-"`
	ExtractionMethod     string  `gorm:"size:50" json:"extraction_method,omitempty"`
	ExtractionConfidence float64 `json:"extraction_confidence"`
	RawExtraction        string  `gorm:"type:text" json:"-"`

	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`

	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Categories  []Category   `gorm:"many2many:recipe_categories" json:"categories"`
	Tags        []Tag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags"`
}

// BeforeCreate generates the uuid on dialects without gen_random_uuid().
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil && tx.Dialector.Name() != "postgres" {
		r.ID = uuid.New()
	}
	return nil
}

// FormatMinutes renders a minute count for display: "45 min", "2h", "1h 30m".
func FormatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	hours := mins / 60
	rest := mins % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// FormattedTotalTime returns the display form of the total time, or "" when
// the recipe has no total time.
func (r *Recipe) FormattedTotalTime() string {
	if r.TotalTimeMins == nil {
		return ""
	}
	return FormatMinutes(*r.TotalTimeMins)
}
