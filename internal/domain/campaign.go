package domain

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code          string     `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	StartDate     time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate       *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	GoalAmountUSD float64    `gorm:"not null;default:0;column:goal_amount_usd" json:"goal_amount_usd"`
	Active        bool       `gorm:"not null;default:true;column:active" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Campaign) TableName() string { return "campaign" }
