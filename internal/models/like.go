package models

import (
	"time"
)

// Like is unique per (user, post); the index is what keeps concurrent toggles honest.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike is unique per (user, comment).
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
