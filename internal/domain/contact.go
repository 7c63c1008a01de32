package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is the identity record almost every other entity points at.
// Merges hard-delete source rows, so no gorm.DeletedAt here.
type Contact struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName   string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName    string     `gorm:"not null;column:last_name" json:"last_name"`
	DisplayName string     `gorm:"not null;column:display_name" json:"display_name"`
	Email       string     `gorm:"index;column:email" json:"email"`
	Phone       string     `gorm:"column:phone" json:"phone"`
	LocationID  *uuid.UUID `gorm:"type:uuid;index;column:location_id" json:"location_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }
