package repositories

import (
	"errors"

	"github.com/growcally/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotLiked reports an unlike of a (post, user) pair with no existing like.
var ErrNotLiked = errors.New("like not found")

// LikeRepository defines the interface for like data operations. The row
// insert and the counter update always travel in one transaction so the
// denormalized total_likes cannot drift from the true row count.
type LikeRepository interface {
	CreateLikeAndIncrement(postID, userID string) (int, error)
	DeleteLikeAndDecrement(postID, userID string) (int, error)
	HasUserLikedPost(postID, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLikeAndIncrement inserts the like row and increments the post's
// total_likes counter atomically, returning the new counter value. A second
// like from the same user trips the composite unique index and surfaces as
// gorm.ErrDuplicatedKey; concurrent same-pair requests are arbitrated by the
// store, not in-process locking.
func (r *PostgresLikeRepository) CreateLikeAndIncrement(postID, userID string) (int, error) {
	var totalLikes int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("total_likes", gorm.Expr("total_likes + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Pluck("total_likes", &totalLikes).Error
	})
	if err != nil {
		return 0, err
	}
	return totalLikes, nil
}

// DeleteLikeAndDecrement removes the like row and decrements total_likes
// atomically, returning the new counter value. Deleting a non-existent like
// returns ErrNotLiked and leaves the counter untouched.
func (r *PostgresLikeRepository) DeleteLikeAndDecrement(postID, userID string) (int, error) {
	var totalLikes int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("total_likes", gorm.Expr("total_likes - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Pluck("total_likes", &totalLikes).Error
	})
	if err != nil {
		return 0, err
	}
	return totalLikes, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
