package domain

import (
	"time"

	"github.com/google/uuid"
)

type Pledge struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID         uuid.UUID  `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	CampaignCode      string     `gorm:"index;column:campaign_code" json:"campaign_code"`
	CategoryID        *uuid.UUID `gorm:"type:uuid;column:category_id" json:"category_id,omitempty"`
	PledgeDate        time.Time  `gorm:"not null;column:pledge_date" json:"pledge_date"`
	OriginalAmountUSD float64    `gorm:"not null;column:original_amount_usd" json:"original_amount_usd"`
	BalanceUSD        float64    `gorm:"not null;column:balance_usd" json:"balance_usd"`
	Description       string     `gorm:"column:description" json:"description"`
	Notes             string     `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Pledge) TableName() string { return "pledge" }

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Category) TableName() string { return "category" }
