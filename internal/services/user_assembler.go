package services

import (
	"context"
	"errors"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/pkg/storage"
	"gorm.io/gorm"
)

// UserAssembler composes a persisted user row with its derived account,
// authored-post ids, liked-post ids and profile image URL into the
// client-facing user representation
type UserAssembler struct {
	userRepository     repositories.UserRepository
	postRepository     repositories.PostRepository
	blobStore          storage.BlobStore
	profileImageBucket string
}

// NewUserAssembler creates a new UserAssembler
func NewUserAssembler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	blobStore storage.BlobStore,
	profileImageBucket string,
) *UserAssembler {
	return &UserAssembler{
		userRepository:     userRepo,
		postRepository:     postRepo,
		blobStore:          blobStore,
		profileImageBucket: profileImageBucket,
	}
}

// AssembleUserByID fetches the user row and assembles it
func (a *UserAssembler) AssembleUserByID(ctx context.Context, userID string) (*models.ClientUser, error) {
	user, err := a.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return a.AssembleUser(ctx, user)
}

// AssembleUser produces the client-facing representation of a user. A missing
// account row is a data-integrity error: the account is created atomically
// with the user at registration, so its absence signals corruption, not a 404.
func (a *UserAssembler) AssembleUser(ctx context.Context, user *models.User) (*models.ClientUser, error) {
	account, err := a.userRepository.GetAccountByUserID(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Integrity("Account not found", err)
		}
		return nil, err
	}

	postIDs, err := a.postRepository.GetPostIDsByAuthorID(user.ID)
	if err != nil {
		return nil, err
	}

	likedPostIDs, err := a.postRepository.GetLikedPostIDs(user.ID)
	if err != nil {
		return nil, err
	}

	clientUser := &models.ClientUser{
		ID:           user.ID,
		Sub:          user.Sub,
		Email:        user.Email,
		GivenName:    user.GivenName,
		FamilyName:   user.FamilyName,
		Status:       user.Status,
		Bio:          user.Bio,
		Account:      *account,
		PostIDs:      postIDs,
		LikedPostIDs: likedPostIDs,
	}

	image, err := a.userRepository.GetProfileImage(user.ID)
	if err != nil {
		return nil, err
	}
	if image != nil {
		fileURL, err := a.blobStore.GetURL(ctx, a.profileImageBucket, image.FileKey)
		if err != nil {
			return nil, err
		}
		clientUser.ProfileImage = &models.ClientProfileImage{
			ID:       image.ID,
			FileName: image.FileName,
			Size:     image.Size,
			MimeType: image.MimeType,
			FileKey:  image.FileKey,
			FileURL:  fileURL,
		}
	}

	return clientUser, nil
}
