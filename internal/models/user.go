package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User statuses mirror the identity provider's confirmation lifecycle.
const (
	UserStatusUnconfirmed = "UNCONFIRMED"
	UserStatusConfirmed   = "CONFIRMED"
)

// User represents a registered user linked to an identity-provider subject
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Sub          string    `json:"sub" gorm:"uniqueIndex"` // Identity provider subject id
	Email        string    `json:"email" gorm:"uniqueIndex"`
	GivenName    string    `json:"givenName"`
	FamilyName   string    `json:"familyName"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'UNCONFIRMED'"`
	Bio          *string   `json:"bio,omitempty"`
	RefreshToken *string   `json:"-"` // Set on login, cleared on logout
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SignUpRequest defines the request body for registering a new user
type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	Surname   string `json:"surname" validate:"required,min=1,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// VerifyRequest defines the request body for confirming a registration
type VerifyRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

// ResendCodeRequest defines the request body for resending a confirmation code
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest defines the request body for authenticating a user
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClientUser is the client-facing representation of a user, composed from the
// persisted row plus its derived account, post ids, liked-post ids and profile
// image URL
type ClientUser struct {
	ID           string              `json:"id"`
	Sub          string              `json:"sub"`
	Email        string              `json:"email"`
	GivenName    string              `json:"givenName"`
	FamilyName   string              `json:"familyName"`
	Status       string              `json:"status"`
	Bio          *string             `json:"bio,omitempty"`
	Account      Account             `json:"account"`
	ProfileImage *ClientProfileImage `json:"profileImage,omitempty"`
	PostIDs      []string            `json:"posts"`
	LikedPostIDs []string            `json:"likedPosts"`
}
