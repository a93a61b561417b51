package models

import (
	"time"
)

// Report is append-only. Nothing in the service reads it back.
type Report struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TargetPostID uint      `gorm:"not null;index" json:"target_post_id"`
	ReporterID   uint      `gorm:"not null;index" json:"reporter_id"`
	Reason       string    `gorm:"size:500;not null" json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}
