package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	"github.com/brightgive/donorcrm-backend/internal/data/repos/testutil"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

// env builds every repo and service over one per-test transaction, so suites
// sharing the database never see each other's rows.
type env struct {
	tx  *gorm.DB
	log *logger.Logger

	contactRepo   repos.ContactRepo
	pledgeRepo    repos.PledgeRepo
	paymentRepo   repos.PaymentRepo
	donationRepo  repos.ManualDonationRepo
	solicitorRepo repos.SolicitorRepo
	ruleRepo      repos.BonusRuleRepo
	calcRepo      repos.BonusCalculationRepo
	relRepo       repos.RelationshipRepo
	auditRepo     repos.AuditLogRepo
	campaignRepo  repos.CampaignRepo
	categoryRepo  repos.CategoryRepo

	contacts  services.ContactService
	merge     services.ContactMergeService
	history   services.FinancialHistoryService
	pledges   services.PledgeService
	payments  services.PaymentService
	donations services.DonationService
	solicitor services.SolicitorService
	bonus     services.BonusService
	campaigns services.CampaignService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	e := &env{tx: tx, log: log}

	e.contactRepo = repos.NewContactRepo(tx, log)
	e.pledgeRepo = repos.NewPledgeRepo(tx, log)
	e.paymentRepo = repos.NewPaymentRepo(tx, log)
	e.donationRepo = repos.NewManualDonationRepo(tx, log)
	e.solicitorRepo = repos.NewSolicitorRepo(tx, log)
	e.ruleRepo = repos.NewBonusRuleRepo(tx, log)
	e.calcRepo = repos.NewBonusCalculationRepo(tx, log)
	e.relRepo = repos.NewRelationshipRepo(tx, log)
	e.auditRepo = repos.NewAuditLogRepo(tx, log)
	e.campaignRepo = repos.NewCampaignRepo(tx, log)
	e.categoryRepo = repos.NewCategoryRepo(tx, log)

	roleRepo := repos.NewRoleAssignmentRepo(tx, log)
	studentRepo := repos.NewStudentRoleRepo(tx, log)
	allocationRepo := repos.NewPaymentAllocationRepo(tx, log)

	e.contacts = services.NewContactService(tx, log, e.contactRepo, e.pledgeRepo, e.donationRepo, e.solicitorRepo)
	e.merge = services.NewContactMergeService(
		tx, log,
		e.contactRepo, roleRepo, studentRepo, e.relRepo,
		e.pledgeRepo, e.paymentRepo, e.donationRepo, e.solicitorRepo, allocationRepo, e.auditRepo,
	)
	e.history = services.NewFinancialHistoryService(tx, log, e.pledgeRepo, e.paymentRepo, e.donationRepo)
	e.pledges = services.NewPledgeService(tx, log, e.pledgeRepo, e.contactRepo, e.paymentRepo, e.categoryRepo)
	e.bonus = services.NewBonusService(tx, log, e.ruleRepo, e.calcRepo, e.solicitorRepo)
	e.payments = services.NewPaymentService(tx, log, e.paymentRepo, e.pledgeRepo, allocationRepo, e.bonus, e.auditRepo)
	e.donations = services.NewDonationService(tx, log, e.donationRepo, e.contactRepo)
	e.solicitor = services.NewSolicitorService(tx, log, e.solicitorRepo, e.contactRepo, e.calcRepo)
	e.campaigns = services.NewCampaignService(tx, log, e.campaignRepo)

	return e
}

func adminCtx() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:    uuid.New(),
		UserEmail: "admin@test.local",
		Role:      requestdata.RoleAdmin,
	})
}

func userCtx() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:    uuid.New(),
		UserEmail: "user@test.local",
		Role:      requestdata.RoleUser,
	})
}

func (e *env) seedContact(t *testing.T, name string) *types.Contact {
	t.Helper()
	contact := &types.Contact{
		ID:          uuid.New(),
		FirstName:   name,
		LastName:    "Test",
		DisplayName: name + " Test",
		Email:       name + "@test.local",
	}
	if _, err := e.contactRepo.Create(context.Background(), nil, []*types.Contact{contact}); err != nil {
		t.Fatalf("seed contact: %v", err)
	}
	return contact
}

func (e *env) seedPledge(t *testing.T, contactID uuid.UUID, amount float64, date time.Time) *types.Pledge {
	t.Helper()
	pledge := &types.Pledge{
		ID:                uuid.New(),
		ContactID:         contactID,
		PledgeDate:        date,
		OriginalAmountUSD: amount,
		BalanceUSD:        amount,
	}
	if _, err := e.pledgeRepo.Create(context.Background(), nil, []*types.Pledge{pledge}); err != nil {
		t.Fatalf("seed pledge: %v", err)
	}
	return pledge
}

func (e *env) seedPayment(t *testing.T, pledgeID uuid.UUID, amount float64, date time.Time) *types.Payment {
	t.Helper()
	payment := &types.Payment{
		ID:          uuid.New(),
		PledgeID:    pledgeID,
		AmountUSD:   amount,
		PaymentDate: date,
	}
	if _, err := e.paymentRepo.Create(context.Background(), nil, []*types.Payment{payment}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}

func (e *env) seedDonation(t *testing.T, contactID uuid.UUID, amount float64, date time.Time) *types.ManualDonation {
	t.Helper()
	donation := &types.ManualDonation{
		ID:          uuid.New(),
		ContactID:   contactID,
		AmountUSD:   amount,
		PaymentDate: date,
	}
	if _, err := e.donationRepo.Create(context.Background(), nil, []*types.ManualDonation{donation}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func (e *env) seedSolicitor(t *testing.T, contactID uuid.UUID, code string) *types.Solicitor {
	t.Helper()
	solicitor := &types.Solicitor{
		ID:            uuid.New(),
		ContactID:     contactID,
		SolicitorCode: code,
		Active:        true,
	}
	if _, err := e.solicitorRepo.Create(context.Background(), nil, []*types.Solicitor{solicitor}); err != nil {
		t.Fatalf("seed solicitor: %v", err)
	}
	return solicitor
}
