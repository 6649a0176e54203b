package domain

import (
	"time"

	"github.com/google/uuid"
)

// EnrichedProfile is the transient output of the AI enrichment adapter.
// It is never persisted on its own, only merged into Client fields.
type EnrichedProfile struct {
	Category         string   `json:"category"`
	SubCategory      string   `json:"sub_category"`
	NicheDescription string   `json:"niche_description"`
	ContentStrategy  []string `json:"content_strategy"`
	Location         string   `json:"location"`
	TargetAudience   string   `json:"target_audience"`
	ToneOfVoice      string   `json:"tone_of_voice"`
	KeyCompetitors   []string `json:"key_competitors"`
}

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"

	RunStageScrape  = "scrape"
	RunStageEnrich  = "enrich"
	RunStagePersist = "persist"
	RunStageDone    = "done"
)

// EnrichmentRun is the audit row for one orchestrator run.
type EnrichmentRun struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *Client   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Username  string    `gorm:"column:username;not null" json:"username"`
	Status    string    `gorm:"column:status;not null;index" json:"status"`
	Stage     string    `gorm:"column:stage;not null" json:"stage"`
	Error     string    `gorm:"column:error" json:"error"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EnrichmentRun) TableName() string {
	return "enrichment_runs"
}
