package models

import (
	"time"
)

// Comment rows form a flat thread. ParentID points at another comment of the
// same post; there is deliberately no foreign key so deleting a parent never
// cascades into its replies.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
