package handlers

import (
	"net/http"

	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PUT("/post/like", h.LikePost)
	g.PUT("/post/unlike", h.UnlikePost)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.likeService.Like(c.Request().Context(), req.PostID, c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.likeService.Unlike(c.Request().Context(), req.PostID, c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
