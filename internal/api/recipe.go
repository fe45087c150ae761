package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/internal/model"
	"github.com/recipe-saver/backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, pageSize := pageParams(c)

	recipes, total, err := h.recipes.ListRecipes(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, PaginatedRecipes{
		Recipes:    toSummaries(recipes),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	recipes, err := h.recipes.FindSimilar(c.Request.Context(), id, limit)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": toSummaries(recipes)})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	recipe := &model.Recipe{
		Title:         req.Title,
		Description:   req.Description,
		Instructions:  model.JSONBStringArray(req.Instructions),
		PrepTimeMins:  req.PrepTimeMins,
		CookTimeMins:  req.CookTimeMins,
		TotalTimeMins: req.TotalTimeMins,
		Servings:      req.Servings,
		Difficulty:    req.Difficulty,
		VideoURL:      req.VideoURL,
		RecipePageURL: req.RecipePageURL,
		ThumbnailURL:  req.ThumbnailURL,
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{
			Name:        ing.Name,
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Preparation: ing.Preparation,
			RawText:     ing.RawText,
		})
	}
	for _, tag := range req.Tags {
		recipe.Tags = append(recipe.Tags, model.Tag{Tag: tag, Source: model.TagSourceManual})
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), recipe, categoryIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := service.RecipeUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Instructions:  req.Instructions,
		PrepTimeMins:  req.PrepTimeMins,
		CookTimeMins:  req.CookTimeMins,
		TotalTimeMins: req.TotalTimeMins,
		Servings:      req.Servings,
		Difficulty:    req.Difficulty,
		Tags:          req.Tags,
	}
	if req.Ingredients != nil {
		ings := make([]model.Ingredient, 0, len(req.Ingredients))
		for _, ing := range req.Ingredients {
			ings = append(ings, model.Ingredient{
				Name:        ing.Name,
				Quantity:    ing.Quantity,
				Unit:        ing.Unit,
				Preparation: ing.Preparation,
				RawText:     ing.RawText,
			})
		}
		upd.Ingredients = ings
	}
	if req.CategoryIDs != nil {
		ids, err := parseCategoryIDs(req.CategoryIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		upd.CategoryIDs = ids
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, upd)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	err = h.recipes.DeleteRecipe(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// pageParams reads page and page_size, clamping page_size to 1-100.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
