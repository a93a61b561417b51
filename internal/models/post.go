package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `json:"image_url"` // Optional, verbatim from the object store
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
