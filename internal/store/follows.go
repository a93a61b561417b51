package store

import (
	"context"

	"gamehub/internal/models"

	"gorm.io/gorm/clause"
)

func (s *Store) HasFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, classify(err)
}

func (s *Store) InsertFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FollowingID: followingID})
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	err := s.conn(ctx).Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	return classify(err)
}

func (s *Store) CountFollowers(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Follow{}).Where("following_id = ?", profileID).Count(&count).Error
	return count, classify(err)
}

func (s *Store) CountFollowing(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, classify(err)
}
