package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScrapedPost is a row from the external scraper's ingestion table.
// This service only reads it; the external pipeline owns writes.
type ScrapedPost struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username     string     `gorm:"column:username;not null;index" json:"username"`
	Caption      string     `gorm:"column:caption" json:"caption"`
	PostedAt     *time.Time `gorm:"column:posted_at" json:"posted_at,omitempty"`
	ViewCount    int64      `gorm:"column:view_count;not null;default:0" json:"view_count"`
	LikeCount    int64      `gorm:"column:like_count;not null;default:0" json:"like_count"`
	CommentCount int64      `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	VideoURL     string     `gorm:"column:video_url" json:"video_url"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Platform     string     `gorm:"column:platform;not null;default:'instagram'" json:"platform"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (ScrapedPost) TableName() string {
	return "scraped_posts"
}
