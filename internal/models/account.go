package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the one-to-one owner record of a User, created atomically with it
// at registration. Currently a placeholder for account-level settings.
type Account struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	OwnerID   string    `json:"ownerId" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
