package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileImage holds the blob-store metadata of a user's profile picture.
// At most one row exists per user; replacing it deletes the old blob and row
// before creating the new one.
type ProfileImage struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"uniqueIndex"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	FileKey   string    `json:"fileKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (p *ProfileImage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ClientProfileImage is the client-facing profile image descriptor with a
// freshly resolved retrieval URL. The URL expires after an hour; clients must
// not cache it past that.
type ClientProfileImage struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	FileKey  string `json:"fileKey"`
	FileURL  string `json:"fileUrl"`
}
