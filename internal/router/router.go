package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/api"
	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/middleware"
	"github.com/recipe-saver/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(db *gorm.DB, redisClient *redis.Client, pipeline *extraction.Pipeline, media *service.MediaService, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api.SetupAPI(router, db, redisClient, pipeline, media, cfg)

	return router
}
