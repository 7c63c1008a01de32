package app

import (
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type Repos struct {
	User             repos.UserRepo
	Contact          repos.ContactRepo
	Pledge           repos.PledgeRepo
	Payment          repos.PaymentRepo
	Allocation       repos.PaymentAllocationRepo
	Donation         repos.ManualDonationRepo
	Solicitor        repos.SolicitorRepo
	BonusRule        repos.BonusRuleRepo
	BonusCalculation repos.BonusCalculationRepo
	Campaign         repos.CampaignRepo
	Category         repos.CategoryRepo
	Relationship     repos.RelationshipRepo
	RoleAssignment   repos.RoleAssignmentRepo
	StudentRole      repos.StudentRoleRepo
	AuditLog         repos.AuditLogRepo
	WebhookEvent     repos.WebhookEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		Contact:          repos.NewContactRepo(db, log),
		Pledge:           repos.NewPledgeRepo(db, log),
		Payment:          repos.NewPaymentRepo(db, log),
		Allocation:       repos.NewPaymentAllocationRepo(db, log),
		Donation:         repos.NewManualDonationRepo(db, log),
		Solicitor:        repos.NewSolicitorRepo(db, log),
		BonusRule:        repos.NewBonusRuleRepo(db, log),
		BonusCalculation: repos.NewBonusCalculationRepo(db, log),
		Campaign:         repos.NewCampaignRepo(db, log),
		Category:         repos.NewCategoryRepo(db, log),
		Relationship:     repos.NewRelationshipRepo(db, log),
		RoleAssignment:   repos.NewRoleAssignmentRepo(db, log),
		StudentRole:      repos.NewStudentRoleRepo(db, log),
		AuditLog:         repos.NewAuditLogRepo(db, log),
		WebhookEvent:     repos.NewWebhookEventRepo(db, log),
	}
}
