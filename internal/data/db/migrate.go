package db

import (
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&types.User{},

		// =========================
		// Contacts and roles
		// =========================
		&types.Contact{},
		&types.Relationship{},
		&types.RoleAssignment{},
		&types.StudentRole{},
		&types.Solicitor{},

		// =========================
		// Money
		// =========================
		&types.Campaign{},
		&types.Category{},
		&types.Pledge{},
		&types.Payment{},
		&types.PaymentAllocation{},
		&types.ManualDonation{},
		&types.BonusRule{},
		&types.BonusCalculation{},

		// =========================
		// Operational
		// =========================
		&types.AuditLog{},
		&types.WebhookEvent{},
	)
}
