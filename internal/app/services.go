package app

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type Services struct {
	Auth             services.AuthService
	Contact          services.ContactService
	ContactMerge     services.ContactMergeService
	FinancialHistory services.FinancialHistoryService
	Pledge           services.PledgeService
	Payment          services.PaymentService
	Donation         services.DonationService
	Solicitor        services.SolicitorService
	Bonus            services.BonusService
	Campaign         services.CampaignService
	Report           services.ReportService
	PayrocWebhook    services.PayrocWebhookService
	Audit            services.AuditService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, rdb *goredis.Client) Services {
	log.Info("Wiring services...")

	bonus := services.NewBonusService(db, log, r.BonusRule, r.BonusCalculation, r.Solicitor)
	payment := services.NewPaymentService(db, log, r.Payment, r.Pledge, r.Allocation, bonus, r.AuditLog)
	campaign := services.NewCampaignService(db, log, r.Campaign)

	return Services{
		Auth:    services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Contact: services.NewContactService(db, log, r.Contact, r.Pledge, r.Donation, r.Solicitor),
		ContactMerge: services.NewContactMergeService(
			db, log,
			r.Contact, r.RoleAssignment, r.StudentRole, r.Relationship,
			r.Pledge, r.Payment, r.Donation, r.Solicitor, r.Allocation, r.AuditLog,
		),
		FinancialHistory: services.NewFinancialHistoryService(db, log, r.Pledge, r.Payment, r.Donation),
		Pledge:           services.NewPledgeService(db, log, r.Pledge, r.Contact, r.Payment, r.Category),
		Payment:          payment,
		Donation:         services.NewDonationService(db, log, r.Donation, r.Contact),
		Solicitor:        services.NewSolicitorService(db, log, r.Solicitor, r.Contact, r.BonusCalculation),
		Bonus:            bonus,
		Campaign:         campaign,
		Report:           services.NewReportService(db, log, rdb, campaign),
		PayrocWebhook:    services.NewPayrocWebhookService(db, log, cfg.PayrocSigningSecret, r.WebhookEvent, payment),
		Audit:            services.NewAuditService(db, log, r.AuditLog),
	}
}
