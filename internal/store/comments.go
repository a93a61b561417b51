package store

import (
	"context"

	"gamehub/internal/apperr"
	"gamehub/internal/models"

	"gorm.io/gorm"
)

// ListComments returns the comments of a post oldest first; ties fall back to
// insertion order.
func (s *Store) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.conn(ctx).Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, classify(err)
}

func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.conn(ctx).First(&comment, id).Error; err != nil {
		return nil, classify(err)
	}
	return &comment, nil
}

func (s *Store) CommentExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, classify(err)
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return classify(s.conn(ctx).Create(comment).Error)
}

// CountComments groups comment counts by post id.
func (s *Store) CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, &models.Comment{}, "post_id", postIDs)
}

// DeleteComment removes a comment and its likes. Replies are left alone.
func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("comment", id)
		}
		return nil
	})
	if err != nil && !isNotFound(err) {
		return classify(err)
	}
	return err
}
