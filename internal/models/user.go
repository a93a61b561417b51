package models

import (
	"time"
)

// Profile is the account row owned by the auth adapter. The core only reads it,
// except for the username/bio/avatar/cover update path.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:32;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	AvatarURL *string   `json:"avatar_url"`        // opaque object store URL
	CoverURL  *string   `json:"cover_url"`
	Bio       string    `gorm:"size:200" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Follow is only ever counted, never traversed.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
