package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Client is a tracked brand/workspace the user manages within the tool.
type Client struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Brief             string         `gorm:"column:brief" json:"brief"`
	InstagramUsername string         `gorm:"column:instagram_username" json:"instagram_username"`
	LogoURL           string         `gorm:"column:logo_url" json:"logo_url"`
	Category          string         `gorm:"column:category" json:"category"`
	SubCategory       string         `gorm:"column:sub_category" json:"sub_category"`
	NicheDescription  string         `gorm:"column:niche_description" json:"niche_description"`
	ContentStrategy   datatypes.JSON `gorm:"column:content_strategy;type:jsonb" json:"content_strategy"`
	Location          string         `gorm:"column:location" json:"location"`
	TargetAudience    string         `gorm:"column:target_audience" json:"target_audience"`
	ToneOfVoice       string         `gorm:"column:tone_of_voice" json:"tone_of_voice"`
	KeyCompetitors    datatypes.JSON `gorm:"column:key_competitors;type:jsonb" json:"key_competitors"`
	FollowersCount    int64          `gorm:"column:followers_count;not null;default:0" json:"followers_count"`
	PostsCount        int64          `gorm:"column:posts_count;not null;default:0" json:"posts_count"`
	// ViewsCount is a heuristic estimate derived from followers_count
	// (floor of followers * 1.5), not a measured value.
	ViewsCount int64     `gorm:"column:views_count;not null;default:0" json:"views_count"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
