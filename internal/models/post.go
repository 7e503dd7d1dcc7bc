package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a media post with denormalized like/comment counters.
// The counters are maintained incrementally alongside Like/Comment row writes,
// never derived by live aggregation.
type Post struct {
	ID            string      `json:"id" gorm:"primaryKey"`
	AuthorID      string      `json:"authorId" gorm:"index"`
	Caption       string      `json:"caption"`
	TotalLikes    int         `json:"totalLikes" gorm:"default:0"`
	TotalComments int         `json:"totalComments" gorm:"default:0"`
	Files         []MediaFile `json:"files" gorm:"foreignKey:PostID"`
	CreatedAt     time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// LikeRequest defines the request body for liking or unliking a post
type LikeRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	PostID string `json:"postId" validate:"required"`
	Text   string `json:"text" validate:"required,max=500"`
}

// ClientPost is the client-facing representation of a post with its media
// resolved to retrievable URLs, its author assembled, and its comment tree
type ClientPost struct {
	ID            string            `json:"id"`
	Caption       string            `json:"caption"`
	Author        ClientUser        `json:"author"`
	Files         []ClientMediaFile `json:"files"`
	Comments      []ClientComment   `json:"comments"`
	TotalLikes    int               `json:"totalLikes"`
	TotalComments int               `json:"totalComments"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// LikeResult is the response shape of the like/unlike operations
type LikeResult struct {
	TotalLikes   int      `json:"totalLikes"`
	LikedPostIDs []string `json:"likedPostsIds"`
}
