package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. Replies to it live in their own table.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"index"`
	AuthorID  string    `json:"authorId" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ClientComment is a comment with its author assembled and replies nested
type ClientComment struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	Content   string        `json:"content"`
	Author    ClientUser    `json:"author"`
	Replies   []ClientReply `json:"replies"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
