package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/middleware"
	"github.com/recipe-saver/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. redisClient and
// media may be nil; caching, rate limiting and thumbnail archival are then
// disabled and everything else keeps working.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, pipeline *extraction.Pipeline, media *service.MediaService, cfg *config.Config) {
	recipeService := service.NewRecipeService(db)

	var cache *service.ExtractCache
	var limiter *middleware.RateLimiter
	if redisClient != nil {
		cache = service.NewExtractCache(redisClient)
		limiter = middleware.NewExtractRateLimiter(redisClient, cfg.ExtractRateLimit)
	}

	NewHealthHandler(db, redisClient).RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	{
		NewExtractHandler(pipeline, recipeService, cache, media, limiter, cfg.ExtractionTimeout).RegisterRoutes(v1)
		NewRecipeHandler(recipeService).RegisterRoutes(v1)
		NewCategoryHandler(recipeService).RegisterRoutes(v1)
	}
}
