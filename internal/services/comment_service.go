package services

import (
	"context"
	"errors"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentService appends comments to posts and keeps the denormalized
// total_comments counter in step
type CommentService struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	feedAssembler     *FeedAssembler
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	feedAssembler *FeedAssembler,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		feedAssembler:     feedAssembler,
	}
}

// CreateComment inserts the comment, bumps the post's comment counter, then
// re-fetches and re-assembles the full post so callers can render the whole
// refreshed comment list. Empty text is rejected.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID, text string) (*models.ClientPost, error) {
	if userID == "" {
		return nil, apperrors.Validation("User id is required")
	}
	if postID == "" {
		return nil, apperrors.Validation("Post id is required")
	}
	if text == "" {
		return nil, apperrors.Validation("Comment text is required")
	}

	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  text,
	}
	if err := s.commentRepository.CreateCommentAndIncrement(comment); err != nil {
		return nil, err
	}

	updatedPost, err := s.postRepository.GetPostWithFiles(postID)
	if err != nil {
		return nil, err
	}
	return s.feedAssembler.AssemblePost(ctx, updatedPost)
}
