package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/middleware"
	"github.com/recipe-saver/backend/internal/service"
)

const defaultExtractionTimeout = 90 * time.Second

// ExtractHandler runs the extraction pipeline and saves what it finds.
type ExtractHandler struct {
	pipeline *extraction.Pipeline
	recipes  *service.RecipeService
	cache    *service.ExtractCache
	media    *service.MediaService
	limiter  *middleware.RateLimiter
	timeout  time.Duration
}

// NewExtractHandler builds the handler. cache, media and limiter may be nil,
// which disables result caching, thumbnail archival and rate limiting.
func NewExtractHandler(pipeline *extraction.Pipeline, recipes *service.RecipeService, cache *service.ExtractCache, media *service.MediaService, limiter *middleware.RateLimiter, timeout time.Duration) *ExtractHandler {
	if timeout <= 0 {
		timeout = defaultExtractionTimeout
	}
	return &ExtractHandler{
		pipeline: pipeline,
		recipes:  recipes,
		cache:    cache,
		media:    media,
		limiter:  limiter,
		timeout:  timeout,
	}
}

func (h *ExtractHandler) RegisterRoutes(router *gin.RouterGroup) {
	if h.limiter != nil {
		router.POST("/extract", h.limiter.RateLimitMiddleware(), h.Extract)
		return
	}
	router.POST("/extract", h.Extract)
}

// Extract pulls a recipe out of the submitted URL and persists it. Pipeline
// failures still answer 200: the envelope carries success=false and a
// user-facing error. Only malformed request JSON gets a 400.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Repeat submissions of a plain URL replay the cached envelope, recipe
	// id included, instead of re-running the pipeline.
	if h.cache != nil && req.ManualCaption == "" && req.ManualRecipeURL == "" {
		if payload, err := h.cache.Get(c.Request.Context(), req.URL); err != nil {
			log.Printf("[ExtractHandler] cache read failed: %v", err)
		} else if payload != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result := h.pipeline.Extract(ctx, req.URL, req.ManualCaption, req.ManualRecipeURL)
	if !result.Success {
		c.JSON(http.StatusOK, failureEnvelope(result))
		return
	}

	recipe, err := h.recipes.CreateFromExtraction(ctx, result)
	if err != nil {
		log.Printf("[ExtractHandler] failed to save extracted recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	if h.media != nil && recipe.ThumbnailURL != "" {
		if stored := h.media.ArchiveThumbnail(ctx, recipe.ID, recipe.ThumbnailURL); stored != recipe.ThumbnailURL {
			if updated, err := h.recipes.UpdateRecipe(ctx, recipe.ID, service.RecipeUpdate{ThumbnailURL: &stored}); err != nil {
				log.Printf("[ExtractHandler] failed to store archived thumbnail URL: %v", err)
			} else {
				recipe = updated
			}
		}
	}

	resp := ExtractionStatusResponse{
		Success:         true,
		Method:          string(result.Method),
		Confidence:      result.Confidence,
		Recipe:          recipe,
		FoundRecipeURLs: foundURLs(result),
		Message:         extractionMessage(result),
	}

	if h.cache != nil && req.ManualCaption == "" && req.ManualRecipeURL == "" {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.cache.Set(ctx, req.URL, payload); err != nil {
				log.Printf("[ExtractHandler] cache write failed: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func failureEnvelope(result *extraction.Result) ExtractionStatusResponse {
	var errMsg *string
	message := "Extraction failed"
	if result.Error != "" {
		errMsg = &result.Error
		message = result.Error
	}
	return ExtractionStatusResponse{
		Success:         false,
		Method:          string(result.Method),
		Confidence:      result.Confidence,
		Error:           errMsg,
		FoundRecipeURLs: foundURLs(result),
		Message:         message,
	}
}

func extractionMessage(result *extraction.Result) string {
	switch result.Method {
	case extraction.MethodSchemaOrg:
		site := result.RecipeSiteName
		if site == "" {
			site = "recipe page"
		}
		return "Recipe extracted from " + site
	case extraction.MethodYouTubeLLM, extraction.MethodInstagramLLM:
		return "Recipe extracted from video content (AI-powered)"
	default:
		return "Recipe saved"
	}
}

func foundURLs(result *extraction.Result) []string {
	if result.FoundRecipeURLs == nil {
		return []string{}
	}
	return result.FoundRecipeURLs
}
