package domain

import (
	"time"

	"github.com/google/uuid"
)

// FollowersGrowth is one daily follower-count sample for a client,
// written by the snapshot job and by successful enrichment runs.
type FollowersGrowth struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index:idx_growth_client_day,unique" json:"client_id"`
	Client     *Client   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	RecordedOn time.Time `gorm:"column:recorded_on;type:date;not null;index:idx_growth_client_day,unique" json:"recorded_on"`
	Followers  *int64    `gorm:"column:followers" json:"followers,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (FollowersGrowth) TableName() string {
	return "followers_growth"
}
