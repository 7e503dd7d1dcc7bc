package repositories

import (
	"github.com/growcally/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and reply data operations
type CommentRepository interface {
	CreateCommentAndIncrement(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetRepliesByCommentID(commentID string) ([]models.Reply, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateCommentAndIncrement inserts the comment row and increments the post's
// total_comments counter in one transaction
func (r *PostgresCommentRepository) CreateCommentAndIncrement(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("total_comments", gorm.Expr("total_comments + ?", 1)).Error
	})
}

// GetCommentsByPostID retrieves a post's comments, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesByCommentID retrieves a comment's replies
func (r *PostgresCommentRepository) GetRepliesByCommentID(commentID string) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.Where("comment_id = ?", commentID).
		Order("created_at ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
