package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password   string     `gorm:"not null;column:password" json:"-"`
	FirstName  string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string     `gorm:"not null;column:last_name" json:"last_name"`
	Role       string     `gorm:"not null;default:user;column:role" json:"role"`
	LocationID *uuid.UUID `gorm:"type:uuid;column:location_id" json:"location_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
