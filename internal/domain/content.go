package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentItem is a discovered reel the user explicitly saved. Rows are
// created by migrating an ephemeral scrape result; calendar events may
// only reference persisted content items, never scrape results directly.
type ContentItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client       *Client    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Title        string     `gorm:"column:title" json:"title"`
	URL          string     `gorm:"column:url;not null" json:"url"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Platform     string     `gorm:"column:platform;not null;default:'instagram'" json:"platform"`
	Views        int64      `gorm:"column:views;not null;default:0" json:"views"`
	Likes        int64      `gorm:"column:likes;not null;default:0" json:"likes"`
	PublishedAt  *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	IsSaved      bool       `gorm:"column:is_saved;not null;default:true" json:"is_saved"`
	// SourceRef holds the ephemeral identifier the row was migrated from
	// (legacy numeric scrape ids included), so re-saving the same reel is
	// idempotent.
	SourceRef string    `gorm:"column:source_ref;index" json:"source_ref,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

// ContentMarker is a user-defined colored label placeable on the calendar
// independent of any specific content item.
type ContentMarker struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client      *Client   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Color       string    `gorm:"column:color;not null" json:"color"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContentMarker) TableName() string {
	return "content_markers"
}

// MarkerPalette is the fixed palette colors are assigned from at marker
// creation, cycling in creation order per client.
var MarkerPalette = [8]string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ec4899", // pink
}
