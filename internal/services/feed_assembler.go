package services

import (
	"context"
	"errors"
	"sort"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/pkg/storage"
	"gorm.io/gorm"
)

// FeedAssembler composes persisted posts into client-facing posts: media keys
// resolved to retrieval URLs, authors assembled, comment trees attached, and
// everything ordered by recency
type FeedAssembler struct {
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	userAssembler     *UserAssembler
	blobStore         storage.BlobStore
	postBucket        string
}

// NewFeedAssembler creates a new FeedAssembler
func NewFeedAssembler(
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	userAssembler *UserAssembler,
	blobStore storage.BlobStore,
	postBucket string,
) *FeedAssembler {
	return &FeedAssembler{
		userRepository:    userRepo,
		commentRepository: commentRepo,
		userAssembler:     userAssembler,
		blobStore:         blobStore,
		postBucket:        postBucket,
	}
}

// AssemblePosts assembles a collection of posts (media rows preloaded) into
// client posts ordered by createdAt descending. The final sort is applied
// unconditionally: the persisted query's ordering is not trusted to survive
// per-post enrichment.
func (a *FeedAssembler) AssemblePosts(ctx context.Context, posts []models.Post) ([]models.ClientPost, error) {
	clientPosts := make([]models.ClientPost, 0, len(posts))
	for i := range posts {
		clientPost, err := a.AssemblePost(ctx, &posts[i])
		if err != nil {
			return nil, err
		}
		clientPosts = append(clientPosts, *clientPost)
	}

	sort.SliceStable(clientPosts, func(i, j int) bool {
		return clientPosts[i].CreatedAt.After(clientPosts[j].CreatedAt)
	})
	return clientPosts, nil
}

// AssemblePost assembles a single post. An author that cannot be found is
// orphaned post data and surfaces as an integrity error, never silently
// skipped.
func (a *FeedAssembler) AssemblePost(ctx context.Context, post *models.Post) (*models.ClientPost, error) {
	files := make([]models.ClientMediaFile, 0, len(post.Files))
	for _, file := range post.Files {
		clientFile, err := a.assembleMediaFile(ctx, file)
		if err != nil {
			return nil, err
		}
		files = append(files, *clientFile)
	}

	author, err := a.assembleAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := a.assembleComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &models.ClientPost{
		ID:            post.ID,
		Caption:       post.Caption,
		Author:        *author,
		Files:         files,
		Comments:      comments,
		TotalLikes:    post.TotalLikes,
		TotalComments: post.TotalComments,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}, nil
}

// assembleMediaFile resolves both derivative keys of one media row. The pair
// shape is applied per row; the two keys always resolve together.
func (a *FeedAssembler) assembleMediaFile(ctx context.Context, file models.MediaFile) (*models.ClientMediaFile, error) {
	portraitURL, err := a.blobStore.GetURL(ctx, a.postBucket, file.PortraitFileKey)
	if err != nil {
		return nil, err
	}
	squareURL, err := a.blobStore.GetURL(ctx, a.postBucket, file.SquareFileKey)
	if err != nil {
		return nil, err
	}
	return &models.ClientMediaFile{
		ID:              file.ID,
		FileName:        file.FileName,
		Size:            file.Size,
		MimeType:        file.MimeType,
		Alt:             file.Alt,
		PortraitFileKey: file.PortraitFileKey,
		SquareFileKey:   file.SquareFileKey,
		PortraitFileURL: portraitURL,
		SquareFileURL:   squareURL,
	}, nil
}

func (a *FeedAssembler) assembleAuthor(ctx context.Context, authorID string) (*models.ClientUser, error) {
	pgAuthor, err := a.userRepository.GetUserByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Integrity("Author not found", err)
		}
		return nil, err
	}
	return a.userAssembler.AssembleUser(ctx, pgAuthor)
}

// assembleComments returns the post's comments newest-first, each with its
// author assembled and replies nested
func (a *FeedAssembler) assembleComments(ctx context.Context, postID string) ([]models.ClientComment, error) {
	pgComments, err := a.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	// Re-sort regardless of the query's ordering; the emitted order must be
	// recency-descending no matter how the rows arrived.
	sort.SliceStable(pgComments, func(i, j int) bool {
		return pgComments[i].CreatedAt.After(pgComments[j].CreatedAt)
	})

	comments := make([]models.ClientComment, 0, len(pgComments))
	for _, pgComment := range pgComments {
		author, err := a.assembleAuthor(ctx, pgComment.AuthorID)
		if err != nil {
			return nil, err
		}

		pgReplies, err := a.commentRepository.GetRepliesByCommentID(pgComment.ID)
		if err != nil {
			return nil, err
		}
		replies := make([]models.ClientReply, 0, len(pgReplies))
		for _, pgReply := range pgReplies {
			replyAuthor, err := a.assembleAuthor(ctx, pgReply.AuthorID)
			if err != nil {
				return nil, err
			}
			replies = append(replies, models.ClientReply{
				ID:        pgReply.ID,
				CommentID: pgReply.CommentID,
				Content:   pgReply.Content,
				Author:    *replyAuthor,
				CreatedAt: pgReply.CreatedAt,
				UpdatedAt: pgReply.UpdatedAt,
			})
		}

		comments = append(comments, models.ClientComment{
			ID:        pgComment.ID,
			PostID:    pgComment.PostID,
			Content:   pgComment.Content,
			Author:    *author,
			Replies:   replies,
			CreatedAt: pgComment.CreatedAt,
			UpdatedAt: pgComment.UpdatedAt,
		})
	}

	return comments, nil
}
