package main

import (
	"context"
	"log"
	"net"

	"github.com/gin-gonic/gin"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/database"
	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/server"
	"github.com/recipe-saver/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: without it extraction still works, just without
	// result caching or rate limiting.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	pipeline := extraction.NewDefaultPipeline(cfg.MaxTranscriptLength, cfg.MinContentLength)

	var media *service.MediaService
	if config.StorageConfigured() {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("Object storage unavailable, thumbnail archival disabled: %v", err)
		} else {
			if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
				log.Printf("Failed to apply bucket policy: %v", err)
			}
			media = service.NewMediaService(s3Config)
		}
	}

	srv := server.NewServer(db, redisClient, pipeline, media, cfg)
	if err := srv.Start(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
