package services

import (
	"context"
	"errors"
	"log"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/pkg/imageproc"
	"github.com/growcally/backend/pkg/storage"
	"github.com/growcally/backend/pkg/textutil"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const maxFileNameLength = 120

// Upload carries one uploaded image through the post-creation pipeline
type Upload struct {
	FileName string
	MimeType string
	Size     int64
	Alt      *string
	Data     []byte
}

// CreatePostParams carries the inputs of the post upload operation
type CreatePostParams struct {
	AuthorID string
	Caption  string
	Uploads  []Upload
}

// PostService owns the post lifecycle: upload with media derivatives, feed
// retrieval, and cascading deletion of a post's rows and blobs
type PostService struct {
	postRepository repositories.PostRepository
	userAssembler  *UserAssembler
	feedAssembler  *FeedAssembler
	blobStore      storage.BlobStore
	postBucket     string
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userAssembler *UserAssembler,
	feedAssembler *FeedAssembler,
	blobStore storage.BlobStore,
	postBucket string,
) *PostService {
	return &PostService{
		postRepository: postRepo,
		userAssembler:  userAssembler,
		feedAssembler:  feedAssembler,
		blobStore:      blobStore,
		postBucket:     postBucket,
	}
}

// GetFeed returns all posts assembled for the client, newest first
func (s *PostService) GetFeed(ctx context.Context) ([]models.ClientPost, error) {
	posts, err := s.postRepository.GetAllPosts()
	if err != nil {
		return nil, err
	}
	return s.feedAssembler.AssemblePosts(ctx, posts)
}

// CreatePost resizes each upload into portrait and square derivatives, stores
// both blobs, then persists the post with its media rows
func (s *PostService) CreatePost(ctx context.Context, params CreatePostParams) error {
	if params.AuthorID == "" {
		return apperrors.Validation("Author id is required")
	}
	if len(params.Uploads) == 0 {
		return apperrors.Validation("At least one image is required")
	}

	files := make([]models.MediaFile, 0, len(params.Uploads))
	for _, upload := range params.Uploads {
		portrait, square, err := imageproc.Derivatives(upload.Data)
		if err != nil {
			return apperrors.Wrap(apperrors.KindValidation, "Uploaded file is not a valid image", err)
		}

		portraitKey := storage.NewFileKey()
		squareKey := storage.NewFileKey()
		if err := s.blobStore.Put(ctx, s.postBucket, portraitKey, portrait, upload.MimeType); err != nil {
			return err
		}
		if err := s.blobStore.Put(ctx, s.postBucket, squareKey, square, upload.MimeType); err != nil {
			return err
		}

		fileName := textutil.TrimFilename(
			textutil.CleanFilename(textutil.SafeUnescape(upload.FileName)),
			maxFileNameLength,
		)
		files = append(files, models.MediaFile{
			FileName:        fileName,
			Size:            upload.Size,
			MimeType:        upload.MimeType,
			Alt:             upload.Alt,
			PortraitFileKey: portraitKey,
			SquareFileKey:   squareKey,
		})
	}

	post := &models.Post{
		AuthorID: params.AuthorID,
		Caption:  params.Caption,
		Files:    files,
	}
	return s.postRepository.CreatePost(post)
}

// DeletePost removes a post's blobs and rows, then returns the refreshed post
// list and the refreshed user so the client can redraw both
func (s *PostService) DeletePost(ctx context.Context, postID, userID string) ([]models.ClientPost, *models.ClientUser, error) {
	if postID == "" {
		return nil, nil, apperrors.Validation("Post id is required")
	}
	if userID == "" {
		return nil, nil, apperrors.Validation("User id is required")
	}

	files, err := s.postRepository.GetMediaFiles(postID)
	if err != nil {
		return nil, nil, err
	}

	keys := lo.FlatMap(files, func(file models.MediaFile, _ int) []string {
		return []string{file.PortraitFileKey, file.SquareFileKey}
	})
	for _, key := range keys {
		if err := s.blobStore.Delete(ctx, s.postBucket, key); err != nil {
			// The row delete below still proceeds; an undeletable blob must
			// not leave the post visible.
			log.Printf("[Post] Failed to delete blob %s: %v\n", key, err)
		}
	}

	if err := s.postRepository.DeletePostCascade(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("Post not found")
		}
		return nil, nil, err
	}

	updatedPosts, err := s.GetFeed(ctx)
	if err != nil {
		return nil, nil, err
	}
	updatedUser, err := s.userAssembler.AssembleUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return updatedPosts, updatedUser, nil
}
