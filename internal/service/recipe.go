package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/extraction/search"
	"github.com/recipe-saver/backend/internal/extraction/taxonomy"
	"github.com/recipe-saver/backend/internal/model"
)

const untitledRecipe = "Untitled"

// ErrNoRecipe is returned when an extraction result without a recipe is
// handed to CreateFromExtraction.
var ErrNoRecipe = errors.New("extraction result has no recipe")

// RecipeService handles recipe persistence
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateFromExtraction persists a successful extraction result as a recipe,
// carrying over provenance, ingredients in discovery order, tags with their
// origin, and looked-up-or-created category rows.
func (s *RecipeService) CreateFromExtraction(ctx context.Context, res *extraction.Result) (*model.Recipe, error) {
	if res == nil || !res.Success || res.Recipe == nil {
		return nil, ErrNoRecipe
	}
	parsed := res.Recipe

	thumbnail := res.ThumbnailURL
	if thumbnail == "" {
		thumbnail = parsed.ImageURL
	}
	platform := ""
	if res.VideoURL != "" {
		platform = string(res.Platform)
	}

	recipe := &model.Recipe{
		Title:                parsed.Title,
		Description:          parsed.Description,
		Instructions:         model.JSONBStringArray(parsed.Instructions),
		PrepTimeMins:         parsed.PrepTimeMins,
		CookTimeMins:         parsed.CookTimeMins,
		TotalTimeMins:        parsed.TotalTimeMins,
		Servings:             parsed.Servings,
		Difficulty:           parsed.Difficulty,
		VideoURL:             res.VideoURL,
		VideoPlatform:        platform,
		RecipePageURL:        res.RecipePageURL,
		RecipeSiteName:       res.RecipeSiteName,
		ThumbnailURL:         thumbnail,
		AuthorName:           res.AuthorName,
		OriginalCaption:      res.OriginalCaption,
		ExtractionMethod:     string(res.Method),
		ExtractionConfidence: res.Confidence,
		RawExtraction:        res.RawData,
	}

	for i, ing := range parsed.Ingredients {
		name := ing.Name
		if name == "" {
			name = ing.RawText
		}
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{
			Name:        name,
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Preparation: ing.Preparation,
			RawText:     ing.RawText,
			SortOrder:   i,
		})
	}

	for _, tag := range res.Tags {
		source := model.TagSourceKeyword
		if strings.HasPrefix(tag, "#") {
			source = model.TagSourceHashtag
		}
		recipe.Tags = append(recipe.Tags, model.Tag{Tag: tag, Source: source})
	}

	cats, err := s.ensureCategories(ctx, res.Categories)
	if err != nil {
		return nil, err
	}
	recipe.Categories = cats

	if err := s.create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateRecipe persists a manually entered recipe, linking any supplied
// category ids. Manual entries always carry full confidence.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe, categoryIDs []uuid.UUID) (*model.Recipe, error) {
	if len(categoryIDs) > 0 {
		var cats []model.Category
		if err := s.db.WithContext(ctx).Find(&cats, "id IN ?", categoryIDs).Error; err != nil {
			return nil, err
		}
		recipe.Categories = cats
	}
	recipe.ExtractionMethod = string(extraction.MethodManual)
	recipe.ExtractionConfidence = 1.0
	if err := s.create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) create(ctx context.Context, recipe *model.Recipe) error {
	if strings.TrimSpace(recipe.Title) == "" {
		recipe.Title = untitledRecipe
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].SortOrder = i
	}
	for i := range recipe.Tags {
		if recipe.Tags[i].Source == "" {
			recipe.Tags[i].Source = model.TagSourceManual
		}
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title, recipe.Description)
	return s.db.WithContext(ctx).Create(recipe).Error
}

func (s *RecipeService) ensureCategories(ctx context.Context, byType map[string][]string) ([]model.Category, error) {
	if len(byType) == 0 {
		return nil, nil
	}
	var cats []model.Category
	for _, typ := range taxonomy.Types {
		for _, name := range byType[typ] {
			cat := model.Category{Name: name, Type: typ}
			if err := s.db.WithContext(ctx).FirstOrCreate(&cat, model.Category{Name: name, Type: typ}).Error; err != nil {
				return nil, err
			}
			cats = append(cats, cat)
		}
	}
	return cats, nil
}

// GetRecipe retrieves a recipe by ID with its ingredients, categories and tags
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.preloaded(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns one page of recipes, newest first, plus the total count.
func (s *RecipeService) ListRecipes(ctx context.Context, page, pageSize int) ([]model.Recipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := s.preloaded(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// RecipeUpdate is a partial update. Nil fields are left untouched; a non-nil
// slice replaces the recipe's current set, so an empty slice clears it.
type RecipeUpdate struct {
	Title         *string
	Description   *string
	Instructions  []string
	PrepTimeMins  *int
	CookTimeMins  *int
	TotalTimeMins *int
	Servings      *string
	Difficulty    *string
	ThumbnailURL  *string
	Ingredients   []model.Ingredient
	Tags          []string
	CategoryIDs   []uuid.UUID
}

// UpdateRecipe applies a partial update and returns the refreshed recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, upd RecipeUpdate) (*model.Recipe, error) {
	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			title = untitledRecipe
		}
		updates["title"] = title
		existing.Title = title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
		existing.Description = *upd.Description
	}
	if upd.Instructions != nil {
		updates["instructions"] = model.JSONBStringArray(upd.Instructions)
	}
	if upd.PrepTimeMins != nil {
		updates["prep_time_mins"] = *upd.PrepTimeMins
	}
	if upd.CookTimeMins != nil {
		updates["cook_time_mins"] = *upd.CookTimeMins
	}
	if upd.TotalTimeMins != nil {
		updates["total_time_mins"] = *upd.TotalTimeMins
	}
	if upd.Servings != nil {
		updates["servings"] = *upd.Servings
	}
	if upd.Difficulty != nil {
		updates["difficulty"] = strings.ToLower(*upd.Difficulty)
	}
	if upd.ThumbnailURL != nil {
		updates["thumbnail_url"] = *upd.ThumbnailURL
	}
	if upd.Title != nil || upd.Description != nil {
		updates["embedding"] = GenerateEmbedding(existing.Title, existing.Description)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if upd.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
				return err
			}
			for i := range upd.Ingredients {
				ing := upd.Ingredients[i]
				ing.ID = uuid.Nil
				ing.RecipeID = id
				ing.SortOrder = i
				if err := tx.Create(&ing).Error; err != nil {
					return err
				}
			}
		}
		if upd.Tags != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.Tag{}).Error; err != nil {
				return err
			}
			for _, tag := range upd.Tags {
				if err := tx.Create(&model.Tag{RecipeID: id, Tag: tag, Source: model.TagSourceManual}).Error; err != nil {
					return err
				}
			}
		}
		if upd.CategoryIDs != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeCategory{}).Error; err != nil {
				return err
			}
			for _, catID := range upd.CategoryIDs {
				if err := tx.Create(&model.RecipeCategory{RecipeID: id, CategoryID: catID, Confidence: 1.0}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe and its owned rows. Category rows are shared
// across recipes and stay.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	// First check if the recipe exists
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
}

// FindSimilar returns the recipes closest to the given one. On PostgreSQL the
// ordering uses the pgvector distance between embeddings; elsewhere it falls
// back to a keyword match on the title.
func (s *RecipeService) FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]model.Recipe, error) {
	if limit < 1 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	var source model.Recipe
	if err := s.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		return nil, err
	}

	var recipes []model.Recipe
	if s.db.Dialector.Name() == "postgres" {
		subQuery := s.db.Model(&model.Recipe{}).
			Select("id, embedding <-> ? as similarity", source.Embedding)

		err := s.preloaded(ctx).
			Joins("JOIN (?) as search ON recipes.id = search.id", subQuery).
			Where("recipes.id <> ?", id).
			Order("search.similarity ASC").
			Limit(limit).
			Find(&recipes).Error
		if err != nil {
			return nil, err
		}
		return recipes, nil
	}

	// Fallback for non-PostgreSQL databases: recipes sharing a significant
	// title word with the source.
	keywords := make([]string, 0)
	for kw := range search.Keywords(source.Title) {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	if len(keywords) == 0 {
		return []model.Recipe{}, nil
	}

	conds := make([]string, len(keywords))
	args := make([]interface{}, len(keywords))
	for i, kw := range keywords {
		conds[i] = "LOWER(title) LIKE ?"
		args[i] = "%" + kw + "%"
	}
	err := s.preloaded(ctx).
		Where("id <> ?", id).
		Where(strings.Join(conds, " OR "), args...).
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// AllCategories returns every category grouped by taxonomy type. Types with
// no rows yet map to empty slices so the response shape is stable.
func (s *RecipeService) AllCategories(ctx context.Context) (map[string][]model.Category, error) {
	var cats []model.Category
	if err := s.db.WithContext(ctx).Order("type, name").Find(&cats).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.Category, len(taxonomy.Types))
	for _, typ := range taxonomy.Types {
		grouped[typ] = []model.Category{}
	}
	for _, cat := range cats {
		grouped[cat.Type] = append(grouped[cat.Type], cat)
	}
	return grouped, nil
}

func (s *RecipeService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.sort_order ASC")
		}).
		Preload("Categories").
		Preload("Tags")
}
