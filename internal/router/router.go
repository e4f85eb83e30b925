package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yakov100/recipe-book-sub000/internal/api"
	"github.com/yakov100/recipe-book-sub000/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	chatHandler *api.ChatHandler,
	settingsHandler *api.SettingsHandler,
	sessionHandler *api.SessionHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		recipeHandler.RegisterRoutes(v1)
		chatHandler.RegisterRoutes(v1)
		settingsHandler.RegisterRoutes(v1)
		sessionHandler.RegisterRoutes(v1)
	}

	return router
}
