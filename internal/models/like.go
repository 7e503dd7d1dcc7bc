package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like represents a like on a post. The composite unique index on
// (post_id, user_id) is the sole arbiter of "has this user liked this post";
// a second like from the same user is rejected by the store.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    string    `json:"userId" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
