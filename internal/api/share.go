package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dboiago/Memoix-sub000/internal/middleware"
	"github.com/dboiago/Memoix-sub000/internal/service"
)

// ShareHandler turns recipes into time-limited share links and redeems them.
// Redeeming is public; creating and revoking require auth.
type ShareHandler struct {
	recipeService service.IRecipeService
	shareService  service.IShareService
	authService   service.IAuthService
}

func NewShareHandler(recipeService service.IRecipeService, shareService service.IShareService, authService service.IAuthService) *ShareHandler {
	return &ShareHandler{
		recipeService: recipeService,
		shareService:  shareService,
		authService:   authService,
	}
}

func (h *ShareHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	router.POST("/recipes/:uuid/share", auth, h.CreateShare)
	router.GET("/share/:token", h.GetShare)
	router.DELETE("/share/:token", auth, h.DeleteShare)
}

func (h *ShareHandler) CreateShare(c *gin.Context) {
	if h.shareService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Share links are not configured"})
		return
	}

	recipe, err := h.recipeService.GetRecipeByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	token, err := h.shareService.CreateShare(c.Request.Context(), recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *ShareHandler) GetShare(c *gin.Context) {
	if h.shareService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Share links are not configured"})
		return
	}

	data, err := h.shareService.GetShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found or expired"})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (h *ShareHandler) DeleteShare(c *gin.Context) {
	if h.shareService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Share links are not configured"})
		return
	}

	if err := h.shareService.DeleteShare(c.Request.Context(), c.Param("token")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke share link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share link revoked"})
}
