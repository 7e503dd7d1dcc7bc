package services

import (
	"context"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/pkg/storage"
	"github.com/growcally/backend/pkg/textutil"
)

// ProfileService updates a user's bio and profile image. Replacing an image
// deletes the old blob and metadata row before creating the new one, so no
// orphaned blobs and no duplicate rows per user are left behind.
type ProfileService struct {
	userRepository     repositories.UserRepository
	userAssembler      *UserAssembler
	blobStore          storage.BlobStore
	profileImageBucket string
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo repositories.UserRepository,
	userAssembler *UserAssembler,
	blobStore storage.BlobStore,
	profileImageBucket string,
) *ProfileService {
	return &ProfileService{
		userRepository:     userRepo,
		userAssembler:      userAssembler,
		blobStore:          blobStore,
		profileImageBucket: profileImageBucket,
	}
}

// UpdateProfile applies a new bio and/or profile image and returns the
// reassembled user. At least one of the two must be provided.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, bio string, upload *Upload) (*models.ClientUser, error) {
	if userID == "" {
		return nil, apperrors.Validation("User id is required")
	}
	if bio == "" && upload == nil {
		return nil, apperrors.Validation("No user bio and file to update")
	}

	if upload != nil {
		existing, err := s.userRepository.GetProfileImage(userID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := s.blobStore.Delete(ctx, s.profileImageBucket, existing.FileKey); err != nil {
				return nil, err
			}
		}

		fileKey := storage.NewFileKey()
		if err := s.blobStore.Put(ctx, s.profileImageBucket, fileKey, upload.Data, upload.MimeType); err != nil {
			return nil, err
		}

		fileName := textutil.TrimFilename(
			textutil.CleanFilename(textutil.SafeUnescape(upload.FileName)),
			maxFileNameLength,
		)
		newImage := &models.ProfileImage{
			FileName: fileName,
			Size:     upload.Size,
			MimeType: upload.MimeType,
			FileKey:  fileKey,
		}
		if err := s.userRepository.ReplaceProfileImage(userID, newImage); err != nil {
			return nil, err
		}
	}

	if bio != "" {
		if err := s.userRepository.SetBio(userID, bio); err != nil {
			return nil, err
		}
	}

	return s.userAssembler.AssembleUserByID(ctx, userID)
}
