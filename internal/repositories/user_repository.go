package repositories

import (
	"errors"

	"github.com/growcally/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUserWithAccount(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserBySub(sub string) (*models.User, error)
	UpdateUser(user *models.User) error
	SetStatus(userID, status string) error
	SetRefreshToken(userID string, refreshToken *string) error
	SetBio(userID, bio string) error
	GetAccountByUserID(userID string) (*models.Account, error)
	GetProfileImage(userID string) (*models.ProfileImage, error)
	ReplaceProfileImage(userID string, image *models.ProfileImage) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUserWithAccount creates the user row and its owning account in one
// transaction so neither can exist without the other
func (r *PostgresUserRepository) CreateUserWithAccount(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Account{OwnerID: user.ID}).Error
	})
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserBySub retrieves a user by identity-provider subject id from PostgreSQL
func (r *PostgresUserRepository) GetUserBySub(sub string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("sub = ?", sub).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SetStatus updates a user's confirmation status
func (r *PostgresUserRepository) SetStatus(userID, status string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("status", status).Error
}

// SetRefreshToken stores or clears a user's refresh secret
func (r *PostgresUserRepository) SetRefreshToken(userID string, refreshToken *string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error
}

// SetBio updates a user's bio
func (r *PostgresUserRepository) SetBio(userID, bio string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("bio", bio).Error
}

// GetAccountByUserID retrieves the account owned by a user
func (r *PostgresUserRepository) GetAccountByUserID(userID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("owner_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetProfileImage retrieves a user's profile image metadata, if any
func (r *PostgresUserRepository) GetProfileImage(userID string) (*models.ProfileImage, error) {
	var image models.ProfileImage
	err := r.db.Where("user_id = ?", userID).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ReplaceProfileImage deletes any existing profile image row for the user and
// creates the new one in a single transaction, so at most one row exists per
// user at any time
func (r *PostgresUserRepository) ReplaceProfileImage(userID string, image *models.ProfileImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProfileImage{}).Error; err != nil {
			return err
		}
		image.UserID = userID
		return tx.Create(image).Error
	})
}
