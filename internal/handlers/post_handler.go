package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/growcally/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const maxUploadFiles = 10

// PostHandler handles HTTP requests for the post feed lifecycle
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/post/get-posts", h.GetPosts)
	g.POST("/post/upload", h.UploadPost)
	g.DELETE("/post/:postId", h.DeletePost)
}

// GetPosts returns the assembled feed, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.GetFeed(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UploadPost creates a post from a multipart form carrying up to ten images,
// their per-file alt texts, a caption and the author id
func (h *PostHandler) UploadPost(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart payload")
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) > maxUploadFiles {
		return echo.NewHTTPError(http.StatusBadRequest, "Too many images")
	}

	uploads := make([]services.Upload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
		}

		var alt *string
		// Alt texts arrive as one form field per file, keyed by the original
		// filename.
		if values := form.Value["fileAltText-"+fileHeader.Filename]; len(values) > 0 {
			alt = &values[0]
		}

		uploads = append(uploads, services.Upload{
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
			Alt:      alt,
			Data:     data,
		})
	}

	err = h.postService.CreatePost(c.Request().Context(), services.CreatePostParams{
		AuthorID: c.FormValue("authorId"),
		Caption:  c.FormValue("caption"),
		Uploads:  uploads,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Post successfully created"})
}

// DeletePost removes a post with its media, likes and comments, returning the
// refreshed feed and user
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID := c.Param("postId")
	userID := c.QueryParam("userId")

	updatedPosts, updatedUser, err := h.postService.DeletePost(c.Request().Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updatedPosts": updatedPosts,
		"updatedUser":  updatedUser,
	})
}

// readMultipartFile loads one uploaded file into memory
func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
