package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaFile belongs to exactly one Post and stores the blob-store keys of the
// portrait-cropped and square-cropped derivatives of one upload.
type MediaFile struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	PostID          string    `json:"postId" gorm:"index"`
	FileName        string    `json:"fileName"`
	Size            int64     `json:"size"`
	MimeType        string    `json:"mimetype"`
	Alt             *string   `json:"alt"`
	PortraitFileKey string    `json:"portraitFileKey"`
	SquareFileKey   string    `json:"squareFileKey"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (m *MediaFile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ClientMediaFile is a media file with both derivative keys resolved to
// time-limited retrieval URLs
type ClientMediaFile struct {
	ID              string  `json:"id"`
	FileName        string  `json:"fileName"`
	Size            int64   `json:"size"`
	MimeType        string  `json:"mimetype"`
	Alt             *string `json:"alt"`
	PortraitFileKey string  `json:"portraitFileKey"`
	SquareFileKey   string  `json:"squareFileKey"`
	PortraitFileURL string  `json:"portraitFileUrl"`
	SquareFileURL   string  `json:"squareFileUrl"`
}
