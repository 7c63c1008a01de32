package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type BonusService interface {
	CreateRule(ctx context.Context, rule *types.BonusRule) (*types.BonusRule, error)
	RulesForSolicitor(ctx context.Context, solicitorID uuid.UUID) ([]*types.BonusRule, error)
	CalculationsForSolicitor(ctx context.Context, solicitorID uuid.UUID) ([]*types.BonusCalculation, error)
	// CalculateForPayment runs inside the payment transaction; no matching
	// rule is not an error, the payment simply earns no bonus.
	CalculateForPayment(ctx context.Context, tx *gorm.DB, payment *types.Payment) error
	DeleteForPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error
}

type bonusService struct {
	db            *gorm.DB
	log           *logger.Logger
	ruleRepo      repos.BonusRuleRepo
	calcRepo      repos.BonusCalculationRepo
	solicitorRepo repos.SolicitorRepo
}

func NewBonusService(db *gorm.DB, log *logger.Logger, ruleRepo repos.BonusRuleRepo, calcRepo repos.BonusCalculationRepo, solicitorRepo repos.SolicitorRepo) BonusService {
	serviceLog := log.With("service", "BonusService")
	return &bonusService{
		db:            db,
		log:           serviceLog,
		ruleRepo:      ruleRepo,
		calcRepo:      calcRepo,
		solicitorRepo: solicitorRepo,
	}
}

func (s *bonusService) CreateRule(ctx context.Context, rule *types.BonusRule) (*types.BonusRule, error) {
	if rule.Percentage <= 0 || rule.Percentage > 100 {
		return nil, fmt.Errorf("bonus percentage must be in (0, 100]: %w", crmerr.ErrInvalidArgument)
	}
	if rule.MaxAmountUSD != nil && *rule.MaxAmountUSD <= rule.MinAmountUSD {
		return nil, fmt.Errorf("bonus band max must exceed min: %w", crmerr.ErrInvalidArgument)
	}

	solicitors, err := s.solicitorRepo.GetByIDs(ctx, nil, []uuid.UUID{rule.SolicitorID})
	if err != nil {
		return nil, fmt.Errorf("resolving solicitor: %w", err)
	}
	if len(solicitors) == 0 {
		return nil, fmt.Errorf("solicitor %s: %w", rule.SolicitorID, crmerr.ErrNotFound)
	}

	rule.ID = uuid.New()
	if _, err := s.ruleRepo.Create(ctx, nil, []*types.BonusRule{rule}); err != nil {
		return nil, fmt.Errorf("creating bonus rule: %w", err)
	}
	return rule, nil
}

func (s *bonusService) RulesForSolicitor(ctx context.Context, solicitorID uuid.UUID) ([]*types.BonusRule, error) {
	rules, err := s.ruleRepo.GetBySolicitorIDs(ctx, nil, []uuid.UUID{solicitorID})
	if err != nil {
		return nil, fmt.Errorf("listing bonus rules: %w", err)
	}
	return rules, nil
}

func (s *bonusService) CalculationsForSolicitor(ctx context.Context, solicitorID uuid.UUID) ([]*types.BonusCalculation, error) {
	calcs, err := s.calcRepo.GetBySolicitorIDs(ctx, nil, []uuid.UUID{solicitorID})
	if err != nil {
		return nil, fmt.Errorf("listing bonus calculations: %w", err)
	}
	return calcs, nil
}

func (s *bonusService) CalculateForPayment(ctx context.Context, tx *gorm.DB, payment *types.Payment) error {
	if payment.SolicitorID == nil {
		return nil
	}

	rule, err := s.ruleRepo.EffectiveRule(ctx, tx, *payment.SolicitorID, payment.PaymentDate, payment.AmountUSD)
	if err != nil {
		return fmt.Errorf("resolving bonus rule: %w", err)
	}
	if rule == nil {
		return nil
	}

	calc := &types.BonusCalculation{
		ID:              uuid.New(),
		SolicitorID:     *payment.SolicitorID,
		PaymentID:       payment.ID,
		BonusAmountUSD:  payment.AmountUSD * rule.Percentage / 100,
		BonusPercentage: rule.Percentage,
	}
	if _, err := s.calcRepo.Create(ctx, tx, []*types.BonusCalculation{calc}); err != nil {
		return fmt.Errorf("creating bonus calculation: %w", err)
	}
	return nil
}

func (s *bonusService) DeleteForPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error {
	return s.calcRepo.DeleteByPaymentIDs(ctx, tx, paymentIDs)
}
