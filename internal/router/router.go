package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dboiago/Memoix-sub000/internal/api"
	"github.com/dboiago/Memoix-sub000/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	shareHandler *api.ShareHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	shareHandler.RegisterRoutes(v1)

	return router
}
