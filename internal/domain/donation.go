package domain

import (
	"time"

	"github.com/google/uuid"
)

// ManualDonation is a donation recorded outside the pledge/payment pipeline,
// e.g. imported rows or cash handed over at an event.
type ManualDonation struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID       uuid.UUID  `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	AmountUSD       float64    `gorm:"not null;column:amount_usd" json:"amount_usd"`
	PaymentDate     time.Time  `gorm:"not null;column:payment_date" json:"payment_date"`
	PaymentMethod   string     `gorm:"column:payment_method" json:"payment_method"`
	ReferenceNumber string     `gorm:"column:reference_number" json:"reference_number"`
	SolicitorID     *uuid.UUID `gorm:"type:uuid;index;column:solicitor_id" json:"solicitor_id,omitempty"`
	CampaignID      *uuid.UUID `gorm:"type:uuid;index;column:campaign_id" json:"campaign_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ManualDonation) TableName() string { return "manual_donation" }
