package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply represents a reply to a comment
type Reply struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CommentID string    `json:"commentId" gorm:"index"`
	AuthorID  string    `json:"authorId" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ClientReply is a reply with its author assembled
type ClientReply struct {
	ID        string     `json:"id"`
	CommentID string     `json:"commentId"`
	Content   string     `json:"content"`
	Author    ClientUser `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
