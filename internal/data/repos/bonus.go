package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type BonusRuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rules []*types.BonusRule) ([]*types.BonusRule, error)
	GetBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.BonusRule, error)
	// EffectiveRule resolves the rule in force for a solicitor at a payment
	// date whose amount band contains amountUSD. Returns nil when no rule
	// applies.
	EffectiveRule(ctx context.Context, tx *gorm.DB, solicitorID uuid.UUID, at time.Time, amountUSD float64) (*types.BonusRule, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ruleIDs []uuid.UUID) error
}

type bonusRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBonusRuleRepo(db *gorm.DB, baseLog *logger.Logger) BonusRuleRepo {
	repoLog := baseLog.With("repo", "BonusRuleRepo")
	return &bonusRuleRepo{db: db, log: repoLog}
}

func (r *bonusRuleRepo) Create(ctx context.Context, tx *gorm.DB, rules []*types.BonusRule) ([]*types.BonusRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rules) == 0 {
		return []*types.BonusRule{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *bonusRuleRepo) GetBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.BonusRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BonusRule
	if len(solicitorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("solicitor_id IN ?", solicitorIDs).
		Order("effective_from DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bonusRuleRepo) EffectiveRule(ctx context.Context, tx *gorm.DB, solicitorID uuid.UUID, at time.Time, amountUSD float64) (*types.BonusRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rules []*types.BonusRule
	if err := transaction.WithContext(ctx).
		Where("solicitor_id = ?", solicitorID).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to >= ?", at).
		Where("min_amount_usd <= ?", amountUSD).
		Where("max_amount_usd IS NULL OR max_amount_usd > ?", amountUSD).
		Order("effective_from DESC").
		Limit(1).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return rules[0], nil
}

func (r *bonusRuleRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ruleIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ruleIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ruleIDs).
		Delete(&types.BonusRule{}).Error
}

type BonusCalculationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, calcs []*types.BonusCalculation) ([]*types.BonusCalculation, error)
	GetBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.BonusCalculation, error)
	CountBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) (int64, error)
	DeleteByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error
}

type bonusCalculationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBonusCalculationRepo(db *gorm.DB, baseLog *logger.Logger) BonusCalculationRepo {
	repoLog := baseLog.With("repo", "BonusCalculationRepo")
	return &bonusCalculationRepo{db: db, log: repoLog}
}

func (r *bonusCalculationRepo) Create(ctx context.Context, tx *gorm.DB, calcs []*types.BonusCalculation) ([]*types.BonusCalculation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(calcs) == 0 {
		return []*types.BonusCalculation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&calcs).Error; err != nil {
		return nil, err
	}
	return calcs, nil
}

func (r *bonusCalculationRepo) GetBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.BonusCalculation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BonusCalculation
	if len(solicitorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("solicitor_id IN ?", solicitorIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bonusCalculationRepo) CountBySolicitorIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(solicitorIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BonusCalculation{}).
		Where("solicitor_id IN ?", solicitorIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bonusCalculationRepo) DeleteByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(paymentIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("payment_id IN ?", paymentIDs).
		Delete(&types.BonusCalculation{}).Error
}
