package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/service"
)

// SetupAPI wires the services and registers every route group under /api.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, s3Config *config.S3Config) {
	root := router.Group("/api")
	{
		// Initialize services
		authService := service.NewAuthService(db, redisClient, cfg.JWTSecret)
		imageService := service.NewImageService(cfg.MediaDir, s3Config)
		recipeService := service.NewRecipeService(db, imageService, cfg.MinValue)
		edgeService := service.NewEdgeService(db)
		shoppingService := service.NewShoppingListService(db)
		followService := service.NewFollowService(db)
		userService := service.NewUserService(db)
		catalogService := service.NewCatalogService(db)

		// Initialize handlers
		authHandler := NewAuthHandler(authService)
		catalogHandler := NewCatalogHandler(catalogService)
		recipeHandler := NewRecipeHandler(recipeService, edgeService, shoppingService, authService, cfg.PageSize)
		userHandler := NewUserHandler(userService, followService, authService, cfg.PageSize)

		// Register routes
		authHandler.RegisterRoutes(root)
		catalogHandler.RegisterRoutes(root)
		recipeHandler.RegisterRoutes(root)
		userHandler.RegisterRoutes(root)
	}
}
