package domain

import (
	"time"

	"github.com/google/uuid"
)

// BonusRule is a percentage band for a solicitor: payments whose amount falls
// inside [MinAmountUSD, MaxAmountUSD) while the rule is effective earn
// Percentage of the amount. MaxAmountUSD nil means unbounded.
type BonusRule struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SolicitorID   uuid.UUID  `gorm:"type:uuid;not null;index;column:solicitor_id" json:"solicitor_id"`
	MinAmountUSD  float64    `gorm:"not null;default:0;column:min_amount_usd" json:"min_amount_usd"`
	MaxAmountUSD  *float64   `gorm:"column:max_amount_usd" json:"max_amount_usd,omitempty"`
	Percentage    float64    `gorm:"not null;column:percentage" json:"percentage"`
	EffectiveFrom time.Time  `gorm:"not null;column:effective_from" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"column:effective_to" json:"effective_to,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (BonusRule) TableName() string { return "bonus_rule" }

type BonusCalculation struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SolicitorID     uuid.UUID  `gorm:"type:uuid;not null;index;column:solicitor_id" json:"solicitor_id"`
	PaymentID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:payment_id" json:"payment_id"`
	BonusAmountUSD  float64    `gorm:"not null;column:bonus_amount_usd" json:"bonus_amount_usd"`
	BonusPercentage float64    `gorm:"not null;column:bonus_percentage" json:"bonus_percentage"`
	PaidAt          *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (BonusCalculation) TableName() string { return "bonus_calculation" }
