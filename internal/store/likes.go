package store

import (
	"context"

	"gamehub/internal/models"

	"gorm.io/gorm/clause"
)

func (s *Store) HasPostLike(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, classify(err)
}

// InsertPostLike reports false when the unique index already held the pair.
func (s *Store) InsertPostLike(ctx context.Context, userID, postID uint) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, PostID: postID})
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeletePostLike(ctx context.Context, userID, postID uint) error {
	err := s.conn(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
	return classify(err)
}

func (s *Store) CountPostLikes(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, &models.Like{}, "post_id", postIDs)
}

func (s *Store) PostsLikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return s.memberSet(ctx, &models.Like{}, "post_id", userID, postIDs)
}

func (s *Store) HasCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.CommentLike{}).Where("user_id = ? AND comment_id = ?", userID, commentID).Count(&count).Error
	return count > 0, classify(err)
}

func (s *Store) InsertCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID})
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeleteCommentLike(ctx context.Context, userID, commentID uint) error {
	err := s.conn(ctx).Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.CommentLike{}).Error
	return classify(err)
}

func (s *Store) CountCommentLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	return s.groupCount(ctx, &models.CommentLike{}, "comment_id", commentIDs)
}

func (s *Store) CommentsLikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error) {
	return s.memberSet(ctx, &models.CommentLike{}, "comment_id", userID, commentIDs)
}
