package store

import (
	"context"

	"gamehub/internal/apperr"
	"gamehub/internal/models"

	"gorm.io/gorm"
)

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, classify(err)
}

func (s *Store) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).Where("author_id = ?", authorID).Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, classify(err)
}

func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.conn(ctx).First(&post, id).Error; err != nil {
		return nil, classify(err)
	}
	return &post, nil
}

func (s *Store) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, classify(err)
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return classify(s.conn(ctx).Create(post).Error)
}

func (s *Store) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, classify(err)
}

// DeletePost removes the post together with its likes, its comments and the
// likes on those comments. Reports are kept.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("post", id)
		}
		return nil
	})
	if err != nil && !isNotFound(err) {
		return classify(err)
	}
	return err
}
