package repositories

import (
	"github.com/growcally/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post and media-file data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	GetPostWithFiles(id string) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByAuthorID(authorID string) ([]models.Post, error)
	GetPostIDsByAuthorID(authorID string) ([]string, error)
	GetLikedPostIDs(userID string) ([]string, error)
	GetMediaFiles(postID string) ([]models.MediaFile, error)
	DeletePostCascade(postID string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a post together with its media file rows
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID without its associations
func (r *PostgresPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostWithFiles retrieves a post by ID with its media files preloaded
func (r *PostgresPostRepository) GetPostWithFiles(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Files").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts with media files preloaded, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Preload("Files").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthorID retrieves a user's posts with media files preloaded,
// newest first
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Preload("Files").Where("author_id = ?", authorID).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostIDsByAuthorID retrieves the ids of posts authored by a user
func (r *PostgresPostRepository) GetPostIDsByAuthorID(authorID string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).
		Order("created_at DESC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetLikedPostIDs retrieves the ids of posts the user has liked
func (r *PostgresPostRepository) GetLikedPostIDs(userID string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMediaFiles retrieves the media file rows of a post
func (r *PostgresPostRepository) GetMediaFiles(postID string) ([]models.MediaFile, error) {
	var files []models.MediaFile
	if err := r.db.Where("post_id = ?", postID).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// DeletePostCascade removes a post and everything it owns: media file rows,
// likes, comments and their replies. Blob deletion is the caller's concern.
func (r *PostgresPostRepository) DeletePostCascade(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&models.Reply{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.MediaFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
}
