package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventStatusScheduled = "scheduled"
	EventStatusPosted    = "posted"
	EventStatusSkipped   = "skipped"
)

// CalendarEvent is one scheduled slot on the editorial calendar. Exactly
// one of MarkerID and ContentItemID is set. Events sharing a non-null
// RecurrenceGroupID were created by one scheduling action and are edited
// and deleted together unless the user explicitly detaches one.
type CalendarEvent struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client            *Client        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	ScheduledAt       time.Time      `gorm:"column:scheduled_at;not null;index" json:"scheduled_at"`
	MarkerID          *uuid.UUID     `gorm:"type:uuid;index" json:"marker_id,omitempty"`
	Marker            *ContentMarker `gorm:"constraint:OnDelete:CASCADE;foreignKey:MarkerID;references:ID" json:"marker,omitempty"`
	ContentItemID     *uuid.UUID     `gorm:"type:uuid;index" json:"content_item_id,omitempty"`
	ContentItem       *ContentItem   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentItemID;references:ID" json:"content_item,omitempty"`
	Status            string         `gorm:"column:status;not null;default:'scheduled'" json:"status"`
	Notes             string         `gorm:"column:notes" json:"notes"`
	RecurrenceGroupID *uuid.UUID     `gorm:"type:uuid;index" json:"recurrence_group_id,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
