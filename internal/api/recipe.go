package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dboiago/Memoix-sub000/internal/middleware"
	"github.com/dboiago/Memoix-sub000/internal/model"
	"github.com/dboiago/Memoix-sub000/internal/service"
)

// maxImportSize caps the request body accepted by the import endpoint.
const maxImportSize = 1 << 20

// RecipeHandler serves the recipe box: CRUD, engagement, pairing,
// import/export and photo upload.
type RecipeHandler struct {
	recipeService service.IRecipeService
	imageService  *service.ImageService
	authService   service.IAuthService
}

func NewRecipeHandler(recipeService service.IRecipeService, imageService *service.ImageService, authService service.IAuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:uuid", h.GetRecipe)
		recipes.GET("/:uuid/export", h.ExportRecipe)
		recipes.GET("/:uuid/shareable", h.ShareableExport)
		recipes.GET("/:uuid/pairings", h.ListPairings)

		recipes.POST("", auth, h.CreateRecipe)
		recipes.POST("/import", auth, h.ImportRecipe)
		recipes.PUT("/:uuid", auth, h.UpdateRecipe)
		recipes.DELETE("/:uuid", auth, h.DeleteRecipe)
		recipes.POST("/:uuid/favorite", auth, h.ToggleFavorite)
		recipes.POST("/:uuid/cook", auth, h.LogCook)
		recipes.POST("/:uuid/pairings", auth, h.AddPairing)
		recipes.DELETE("/:uuid/pairings/:other", auth, h.RemovePairing)
		recipes.POST("/:uuid/images", auth, h.UploadImage)
	}

	router.GET("/cooks/recent", h.RecentCooks)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Course:        c.Query("course"),
		Cuisine:       c.Query("cuisine"),
		Tag:           c.Query("tag"),
		Query:         c.Query("q"),
		FavoritesOnly: c.Query("favorites") == "true",
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.Name == "" || recipe.Course == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and course are required"})
		return
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), c.Param("uuid"), &recipe)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param("uuid")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"uuid":    c.Param("uuid"),
	})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	isFavorite, err := h.recipeService.ToggleFavorite(c.Request.Context(), recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uuid":       recipe.UUID,
		"isFavorite": isFavorite,
	})
}

func (h *RecipeHandler) LogCook(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	updated, err := h.recipeService.LogCook(c.Request.Context(), recipe.UUID, recipe.Name, recipe.Course, recipe.Cuisine)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log cook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uuid":         updated.UUID,
		"cookCount":    updated.CookCount,
		"lastCookedAt": updated.LastCookedAt,
	})
}

func (h *RecipeHandler) RecentCooks(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.recipeService.RecentCooks(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cook log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cooks": entries})
}

func (h *RecipeHandler) ListPairings(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	paired, err := h.recipeService.PairedRecipes(c.Request.Context(), recipe.UUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pairings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uuid":            recipe.UUID,
		"supportsPairing": recipe.SupportsPairing(),
		"pairings":        paired,
	})
}

func (h *RecipeHandler) AddPairing(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipeService.AddPairing(c.Request.Context(), c.Param("uuid"), req.PairedUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add pairing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pairing added successfully"})
}

func (h *RecipeHandler) RemovePairing(c *gin.Context) {
	err := h.recipeService.RemovePairing(c.Request.Context(), c.Param("uuid"), c.Param("other"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		case errors.Is(err, service.ErrNotPaired):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipes are not paired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove pairing"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pairing removed successfully"})
}

func (h *RecipeHandler) ImportRecipe(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	recipe, err := h.recipeService.ImportRecipe(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrRecipeExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Recipe already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) ExportRecipe(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	data, err := recipe.ExportJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export recipe"})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (h *RecipeHandler) ShareableExport(c *gin.Context) {
	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	data, err := recipe.ShareableJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export recipe"})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	recipe, ok := h.findRecipe(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), recipe.UUID, data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	switch c.DefaultQuery("kind", "gallery") {
	case "header":
		recipe.HeaderImage = url
	case "step":
		recipe.StepImages = append(recipe.StepImages, url)
	default:
		recipe.ImageURLs = append(recipe.ImageURLs, url)
	}

	if err := h.recipeService.SetImages(c.Request.Context(), recipe.UUID, recipe.HeaderImage, recipe.ImageURLs, recipe.StepImages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// findRecipe resolves the :uuid path param, writing the 404 itself.
func (h *RecipeHandler) findRecipe(c *gin.Context) (*model.Recipe, bool) {
	recipe, err := h.recipeService.GetRecipeByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return nil, false
	}
	return recipe, true
}
