package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/service"
	"github.com/yakov100/recipe-book-sub000/internal/viewstate"
)

// RecipeView is a recipe as the presentation layer receives it, with the
// image precedence already resolved to one display URL.
type RecipeView struct {
	model.Recipe
	ImageURL string `json:"image_url"`
}

// RatingRequest sets a recipe's rating.
type RatingRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

// ImportRequest carries a batch of recipes to import.
type ImportRequest struct {
	Recipes []model.Recipe `json:"recipes" binding:"required"`
}

// ChatRequest carries one user message for a conversation.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// SettingRequest sets a single setting value.
type SettingRequest struct {
	Value string `json:"value"`
}

// ViewRequest drives the session's view state machine.
type ViewRequest struct {
	Action   string `json:"action" binding:"required"`
	RecipeID string `json:"recipe_id"`
}

// writeError maps service failures onto the single user-facing message the
// presentation layer shows.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, model.ErrInvalidRecipe):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "A newer request replaced this one"})
	case errors.Is(err, viewstate.ErrBadTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, the change was not saved"})
	}
}
