package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/service"
	"github.com/yakov100/recipe-book-sub000/internal/types"
)

const maxImageBytes = 5 << 20

// RecipeHandler serves the recipe collection to the presentation layer.
type RecipeHandler struct {
	library *service.LibraryService
	images  *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(library *service.LibraryService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		library: library,
		images:  images,
	}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/rating", h.RateRecipe)
		recipes.POST("/:id/image", h.UploadImage)
		recipes.POST("/import", h.ImportRecipes)
		recipes.POST("/reload", h.Reload)
	}
}

// ListRecipes returns the collection narrowed by the filter query, together
// with the view summary.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var state types.FilterState
	if err := c.ShouldBindQuery(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, summary := h.library.Filtered(state)
	c.JSON(http.StatusOK, gin.H{
		"recipes": h.views(recipes),
		"summary": summary,
	})
}

// GetRecipe answers a deep link to a single recipe.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.library.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*recipe))
}

// CreateRecipe persists a new recipe.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipe.ID = uuid.Nil

	created, err := h.library.Create(c.Request.Context(), &recipe)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view(*created))
}

// UpdateRecipe persists an edited recipe.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.library.Update(c.Request.Context(), id, &recipe)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*updated))
}

// DeleteRecipe removes a recipe and its stored image.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.library.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.library.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.images.DeleteImage(c.Request.Context(), recipe.ImagePath)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// RateRecipe sets a recipe's rating.
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rated, err := h.library.Rate(c.Request.Context(), id, *req.Rating)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*rated))
}

// UploadImage stores a new image for a recipe; the stored path supersedes
// any legacy inline image data.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		writeError(c, err)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key, err := h.images.UploadImage(c.Request.Context(), data, contentType)
	if err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.library.SetImage(c.Request.Context(), id, key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*updated))
}

// ImportRecipes adds a batch of records, skipping exact duplicates.
func (h *RecipeHandler) ImportRecipes(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.library.Import(c.Request.Context(), req.Recipes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reload re-runs the full load path: snapshot paint, fetch, reconcile.
func (h *RecipeHandler) Reload(c *gin.Context) {
	if err := h.library.Load(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	recipes, summary := h.library.Filtered(types.FilterState{})
	c.JSON(http.StatusOK, gin.H{
		"recipes": h.views(recipes),
		"summary": summary,
	})
}

func (h *RecipeHandler) view(recipe model.Recipe) RecipeView {
	return RecipeView{
		Recipe:   recipe,
		ImageURL: h.images.ResolveImageURL(recipe),
	}
}

func (h *RecipeHandler) views(recipes []model.Recipe) []RecipeView {
	out := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		out[i] = h.view(r)
	}
	return out
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}
