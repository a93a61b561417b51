package services

import (
	"context"

	"gamehub/internal/models"
)

// The store contract the services consume. internal/store implements it on
// gorm; tests use an in-memory fake. Errors carry apperr kinds.

type PostStore interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	CreatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type CommentStore interface {
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	CommentExists(ctx context.Context, id uint) (bool, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
	CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

type LikeStore interface {
	HasPostLike(ctx context.Context, userID, postID uint) (bool, error)
	InsertPostLike(ctx context.Context, userID, postID uint) (bool, error)
	DeletePostLike(ctx context.Context, userID, postID uint) error
	CountPostLikes(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	PostsLikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)

	HasCommentLike(ctx context.Context, userID, commentID uint) (bool, error)
	InsertCommentLike(ctx context.Context, userID, commentID uint) (bool, error)
	DeleteCommentLike(ctx context.Context, userID, commentID uint) error
	CountCommentLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
	CommentsLikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ProfilesByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, id uint, updates map[string]any) error
}

type ReportStore interface {
	CreateReport(ctx context.Context, report *models.Report) error
}

type FollowStore interface {
	HasFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	InsertFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	CountFollowers(ctx context.Context, profileID uint) (int64, error)
	CountFollowing(ctx context.Context, profileID uint) (int64, error)
}

type Store interface {
	PostStore
	CommentStore
	LikeStore
	ProfileStore
	ReportStore
	FollowStore
}
