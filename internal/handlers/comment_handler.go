package handlers

import (
	"net/http"

	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/post/comment", h.CreateComment)
}

// CreateComment appends a comment to a post and returns the refreshed full
// post so the client can render the whole comment list
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.commentService.CreateComment(
		c.Request().Context(), c.QueryParam("userId"), req.PostID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
