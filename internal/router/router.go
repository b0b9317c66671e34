package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, s3Config *config.S3Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// Locally stored recipe images are served from the media directory.
	if cfg.S3Bucket == "" {
		router.Static("/media", cfg.MediaDir)
	}

	api.SetupAPI(router, db, redisClient, cfg, s3Config)

	return router
}
