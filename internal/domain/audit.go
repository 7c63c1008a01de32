package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is append-only; privileged operations write one row each.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	UserEmail string         `gorm:"not null;column:user_email" json:"user_email"`
	Action    string         `gorm:"not null;index;column:action" json:"action"`
	Details   datatypes.JSON `gorm:"column:details" json:"details"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }

const (
	AuditActionMergeContacts = "MERGE_CONTACTS"
	AuditActionDeletePayment = "DELETE_PAYMENT"
)
