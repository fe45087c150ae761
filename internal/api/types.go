package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/recipe-saver/backend/internal/model"
)

// ExtractionRequest asks the pipeline to pull a recipe out of a URL.
type ExtractionRequest struct {
	URL             string `json:"url" binding:"required"`
	ManualCaption   string `json:"manual_caption"`
	ManualRecipeURL string `json:"manual_recipe_url"`
}

// ExtractionStatusResponse reports what the pipeline did. Terminal failures
// are success=false bodies, not error statuses.
type ExtractionStatusResponse struct {
	Success         bool          `json:"success"`
	Method          string        `json:"method"`
	Confidence      float64       `json:"confidence"`
	Error           *string       `json:"error"`
	Recipe          *model.Recipe `json:"recipe"`
	FoundRecipeURLs []string      `json:"found_recipe_urls"`
	Message         string        `json:"message"`
}

// IngredientInput is one ingredient in a create or update request.
type IngredientInput struct {
	Name        string `json:"name"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Preparation string `json:"preparation"`
	RawText     string `json:"raw_text"`
}

// CreateRecipeRequest is the body for manual recipe creation.
type CreateRecipeRequest struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	Instructions  []string          `json:"instructions"`
	PrepTimeMins  *int              `json:"prep_time_mins"`
	CookTimeMins  *int              `json:"cook_time_mins"`
	TotalTimeMins *int              `json:"total_time_mins"`
	Servings      string            `json:"servings"`
	Difficulty    string            `json:"difficulty"`
	Ingredients   []IngredientInput `json:"ingredients"`
	CategoryIDs   []string          `json:"category_ids"`
	Tags          []string          `json:"tags"`
	VideoURL      string            `json:"video_url"`
	RecipePageURL string            `json:"recipe_page_url"`
	ThumbnailURL  string            `json:"thumbnail_url"`
}

// UpdateRecipeRequest is a partial update. Nil fields stay untouched; a
// present ingredients, tags or category_ids array replaces the existing set.
type UpdateRecipeRequest struct {
	Title         *string           `json:"title"`
	Description   *string           `json:"description"`
	Instructions  []string          `json:"instructions"`
	PrepTimeMins  *int              `json:"prep_time_mins"`
	CookTimeMins  *int              `json:"cook_time_mins"`
	TotalTimeMins *int              `json:"total_time_mins"`
	Servings      *string           `json:"servings"`
	Difficulty    *string           `json:"difficulty"`
	Ingredients   []IngredientInput `json:"ingredients"`
	CategoryIDs   []string          `json:"category_ids"`
	Tags          []string          `json:"tags"`
}

// RecipeSummary is the trimmed recipe shape used by list views.
type RecipeSummary struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	TotalTimeMins  *int      `json:"total_time_mins,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	SourcePlatform string    `json:"source_platform,omitempty"`
	RecipeSiteName string    `json:"recipe_site_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaginatedRecipes is one page of recipes plus paging bookkeeping.
type PaginatedRecipes struct {
	Recipes    []RecipeSummary `json:"recipes"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int64           `json:"total_pages"`
}

func toSummary(r model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		ThumbnailURL:   r.ThumbnailURL,
		TotalTimeMins:  r.TotalTimeMins,
		Difficulty:     r.Difficulty,
		SourcePlatform: r.VideoPlatform,
		RecipeSiteName: r.RecipeSiteName,
		CreatedAt:      r.CreatedAt,
	}
}

func toSummaries(recipes []model.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toSummary(r))
	}
	return out
}
