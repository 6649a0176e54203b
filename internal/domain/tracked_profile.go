package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
)

// TrackedProfile is a competitor social-media account monitored for a
// client. Profiles are created and deleted; there is no update path.
type TrackedProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *Client        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Handle    string         `gorm:"column:handle;not null" json:"handle"`
	Platform  string         `gorm:"column:platform;not null;default:'instagram'" json:"platform"`
	Tags      datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	AvatarURL string         `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (TrackedProfile) TableName() string {
	return "tracked_profiles"
}

func ValidPlatform(p string) bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube:
		return true
	default:
		return false
	}
}
