package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

// PaymentHistoryRow is a payment decorated with the pledge's campaign code,
// the payer's display name and the solicitor's display name.
type PaymentHistoryRow struct {
	ID              uuid.UUID `gorm:"column:id"`
	PledgeID        uuid.UUID `gorm:"column:pledge_id"`
	CampaignCode    string    `gorm:"column:campaign_code"`
	AmountUSD       float64   `gorm:"column:amount_usd"`
	PaymentDate     time.Time `gorm:"column:payment_date"`
	PaymentMethod   string    `gorm:"column:payment_method"`
	ReferenceNumber string    `gorm:"column:reference_number"`
	PayerName       string    `gorm:"column:payer_name"`
	SolicitorName   string    `gorm:"column:solicitor_name"`
	IsThirdParty    bool      `gorm:"column:is_third_party_payment"`
}

type PaymentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, payments []*types.Payment) ([]*types.Payment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) ([]*types.Payment, error)
	GetByPledgeIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) ([]*types.Payment, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error
	RepointPayer(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]PaymentHistoryRow, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	repoLog := baseLog.With("repo", "PaymentRepo")
	return &paymentRepo{db: db, log: repoLog}
}

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, payments []*types.Payment) ([]*types.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(payments) == 0 {
		return []*types.Payment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) ([]*types.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Payment
	if len(paymentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", paymentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *paymentRepo) GetByPledgeIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) ([]*types.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Payment
	if len(pledgeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("pledge_id IN ?", pledgeIDs).
		Order("payment_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *paymentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, paymentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(paymentIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", paymentIDs).
		Delete(&types.Payment{}).Error
}

func (r *paymentRepo) RepointPayer(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Payment{}).
		Where("payer_contact_id IN ?", fromContactIDs).
		Update("payer_contact_id", toContactID)
	return res.RowsAffected, res.Error
}

// HistoryByContactID returns payments applied to the contact's pledges plus
// payments the contact made directly as a third-party payer.
func (r *paymentRepo) HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]PaymentHistoryRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []PaymentHistoryRow
	if err := transaction.WithContext(ctx).
		Model(&types.Payment{}).
		Select(`payment.id, payment.pledge_id, pledge.campaign_code,
			payment.amount_usd, payment.payment_date, payment.payment_method,
			payment.reference_number, payment.is_third_party_payment,
			COALESCE(payer.display_name, '') AS payer_name,
			COALESCE(sc.display_name, '') AS solicitor_name`).
		Joins("JOIN pledge ON pledge.id = payment.pledge_id").
		Joins("LEFT JOIN contact payer ON payer.id = payment.payer_contact_id").
		Joins("LEFT JOIN solicitor ON solicitor.id = payment.solicitor_id").
		Joins("LEFT JOIN contact sc ON sc.id = solicitor.contact_id").
		Where("pledge.contact_id = ? OR payment.payer_contact_id = ?", contactID, contactID).
		Order("payment.payment_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
