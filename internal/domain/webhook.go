package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookEvent records every accepted gateway notification. ExternalID is the
// provider's event id; the unique index is what makes redelivery idempotent.
type WebhookEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Provider    string         `gorm:"not null;index;column:provider" json:"provider"`
	EventType   string         `gorm:"not null;column:event_type" json:"event_type"`
	ExternalID  string         `gorm:"uniqueIndex;not null;column:external_id" json:"external_id"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	ReceivedAt  time.Time      `gorm:"not null;default:now();column:received_at" json:"received_at"`
	ProcessedAt *time.Time     `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

func (WebhookEvent) TableName() string { return "webhook_event" }
