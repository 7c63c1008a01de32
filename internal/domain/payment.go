package domain

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PledgeID            uuid.UUID  `gorm:"type:uuid;not null;index;column:pledge_id" json:"pledge_id"`
	PayerContactID      *uuid.UUID `gorm:"type:uuid;index;column:payer_contact_id" json:"payer_contact_id,omitempty"`
	AmountUSD           float64    `gorm:"not null;column:amount_usd" json:"amount_usd"`
	PaymentDate         time.Time  `gorm:"not null;column:payment_date" json:"payment_date"`
	PaymentMethod       string     `gorm:"column:payment_method" json:"payment_method"`
	ReferenceNumber     string     `gorm:"column:reference_number" json:"reference_number"`
	SolicitorID         *uuid.UUID `gorm:"type:uuid;index;column:solicitor_id" json:"solicitor_id,omitempty"`
	IsThirdPartyPayment bool       `gorm:"not null;default:false;column:is_third_party_payment" json:"is_third_party_payment"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Payment) TableName() string { return "payment" }

// PaymentAllocation splits one payment across pledges for bookkeeping.
type PaymentAllocation struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PaymentID      uuid.UUID  `gorm:"type:uuid;not null;index;column:payment_id" json:"payment_id"`
	PledgeID       uuid.UUID  `gorm:"type:uuid;not null;index;column:pledge_id" json:"pledge_id"`
	PayerContactID *uuid.UUID `gorm:"type:uuid;index;column:payer_contact_id" json:"payer_contact_id,omitempty"`
	AmountUSD      float64    `gorm:"not null;column:amount_usd" json:"amount_usd"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PaymentAllocation) TableName() string { return "payment_allocation" }
