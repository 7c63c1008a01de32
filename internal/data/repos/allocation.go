package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type PaymentAllocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, allocations []*types.PaymentAllocation) ([]*types.PaymentAllocation, error)
	GetByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) ([]*types.PaymentAllocation, error)
	RepointPayer(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	DeleteByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error
}

type paymentAllocationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentAllocationRepo(db *gorm.DB, baseLog *logger.Logger) PaymentAllocationRepo {
	repoLog := baseLog.With("repo", "PaymentAllocationRepo")
	return &paymentAllocationRepo{db: db, log: repoLog}
}

func (r *paymentAllocationRepo) Create(ctx context.Context, tx *gorm.DB, allocations []*types.PaymentAllocation) ([]*types.PaymentAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(allocations) == 0 {
		return []*types.PaymentAllocation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

func (r *paymentAllocationRepo) GetByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) ([]*types.PaymentAllocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PaymentAllocation
	if len(paymentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("payment_id IN ?", paymentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *paymentAllocationRepo) RepointPayer(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.PaymentAllocation{}).
		Where("payer_contact_id IN ?", fromContactIDs).
		Update("payer_contact_id", toContactID)
	return res.RowsAffected, res.Error
}

func (r *paymentAllocationRepo) DeleteByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(paymentIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("payment_id IN ?", paymentIDs).
		Delete(&types.PaymentAllocation{}).Error
}
