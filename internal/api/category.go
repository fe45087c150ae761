package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-saver/backend/internal/service"
)

type CategoryHandler struct {
	recipes *service.RecipeService
}

func NewCategoryHandler(recipes *service.RecipeService) *CategoryHandler {
	return &CategoryHandler{recipes: recipes}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.ListCategories)
}

// ListCategories returns every known category keyed by taxonomy type. Types
// with no rows yet appear as empty arrays.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	grouped, err := h.recipes.AllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, grouped)
}
