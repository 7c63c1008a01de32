package domain

import (
	"time"

	"github.com/google/uuid"
)

// Relationship is a directed edge between two contacts (spouse, parent,
// employer, ...). Merges must repoint both direction columns.
type Relationship struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID        uuid.UUID `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	RelatedContactID uuid.UUID `gorm:"type:uuid;not null;index;column:related_contact_id" json:"related_contact_id"`
	RelationshipType string    `gorm:"not null;column:relationship_type" json:"relationship_type"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Relationship) TableName() string { return "relationship" }

type RoleAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	Role      string    `gorm:"not null;column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (RoleAssignment) TableName() string { return "role_assignment" }

type StudentRole struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	Program   string    `gorm:"column:program" json:"program"`
	Track     string    `gorm:"column:track" json:"track"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StudentRole) TableName() string { return "student_role" }
