package services

import (
	"context"
	"errors"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeService mutates a post's like count and a user's liked-post set. The
// at-most-one-like invariant is enforced by the store's composite unique
// constraint; this service only issues operations in a shape the store can
// arbitrate.
type LikeService struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeService {
	return &LikeService{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// Like records a like of postID by userID and returns the post's new like
// count together with the full updated list of post ids the user has liked.
// Liking a post twice fails with a conflict and leaves the counter unchanged.
func (s *LikeService) Like(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	if err := s.checkArgs(postID, userID); err != nil {
		return nil, err
	}
	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}

	totalLikes, err := s.likeRepository.CreateLikeAndIncrement(postID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("You have already liked this post")
		}
		return nil, err
	}

	return s.result(totalLikes, userID)
}

// Unlike removes a like of postID by userID. Unliking a post that was never
// liked fails with a not-found condition and leaves the counter unchanged.
func (s *LikeService) Unlike(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	if err := s.checkArgs(postID, userID); err != nil {
		return nil, err
	}
	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}

	totalLikes, err := s.likeRepository.DeleteLikeAndDecrement(postID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotLiked) {
			return nil, apperrors.NotFound("You have not liked this post")
		}
		return nil, err
	}

	return s.result(totalLikes, userID)
}

func (s *LikeService) checkArgs(postID, userID string) error {
	if postID == "" {
		return apperrors.Validation("Post id is required")
	}
	if userID == "" {
		return apperrors.Validation("User id is required")
	}
	return nil
}

func (s *LikeService) result(totalLikes int, userID string) (*models.LikeResult, error) {
	likedPostIDs, err := s.postRepository.GetLikedPostIDs(userID)
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{
		TotalLikes:   totalLikes,
		LikedPostIDs: likedPostIDs,
	}, nil
}
