package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yakov100/recipe-book-sub000/internal/service"
)

// SettingsHandler serves user preferences stored in the repository.
type SettingsHandler struct {
	recipes *service.RecipeService
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(recipes *service.RecipeService) *SettingsHandler {
	return &SettingsHandler{recipes: recipes}
}

// RegisterRoutes registers the settings routes.
func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("", h.ListSettings)
		settings.PUT("/:key", h.UpsertSetting)
	}
}

// ListSettings returns every stored setting.
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.recipes.ListSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpsertSetting creates or overwrites one setting.
func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := c.Param("key")
	if err := h.recipes.UpsertSetting(c.Request.Context(), key, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
