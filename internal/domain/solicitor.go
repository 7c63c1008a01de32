package domain

import (
	"time"

	"github.com/google/uuid"
)

// Solicitor is a role attached to exactly one contact. Its own ID is the key
// bonus tables and payment attribution hang off; ContactID only says which
// contact currently holds the role. A merge repoints ContactID and nothing
// else, so bonus history survives contact dedup intact.
type Solicitor struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:contact_id" json:"contact_id"`
	SolicitorCode string    `gorm:"uniqueIndex;not null;column:solicitor_code" json:"solicitor_code"`
	Active        bool      `gorm:"not null;default:true;column:active" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Solicitor) TableName() string { return "solicitor" }
