package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

// DonationHistoryRow is a manual donation decorated with its campaign name
// and solicitor display name.
type DonationHistoryRow struct {
	ID              uuid.UUID `gorm:"column:id"`
	AmountUSD       float64   `gorm:"column:amount_usd"`
	PaymentDate     time.Time `gorm:"column:payment_date"`
	PaymentMethod   string    `gorm:"column:payment_method"`
	ReferenceNumber string    `gorm:"column:reference_number"`
	CampaignName    string    `gorm:"column:campaign_name"`
	SolicitorName   string    `gorm:"column:solicitor_name"`
}

type ManualDonationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, donations []*types.ManualDonation) ([]*types.ManualDonation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) ([]*types.ManualDonation, error)
	GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.ManualDonation, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) error
	RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]DonationHistoryRow, error)
}

type manualDonationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewManualDonationRepo(db *gorm.DB, baseLog *logger.Logger) ManualDonationRepo {
	repoLog := baseLog.With("repo", "ManualDonationRepo")
	return &manualDonationRepo{db: db, log: repoLog}
}

func (r *manualDonationRepo) Create(ctx context.Context, tx *gorm.DB, donations []*types.ManualDonation) ([]*types.ManualDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(donations) == 0 {
		return []*types.ManualDonation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *manualDonationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) ([]*types.ManualDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ManualDonation
	if len(donationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", donationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *manualDonationRepo) GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.ManualDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ManualDonation
	if len(contactIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("contact_id IN ?", contactIDs).
		Order("payment_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *manualDonationRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(donationIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", donationIDs).
		Delete(&types.ManualDonation{}).Error
}

func (r *manualDonationRepo) RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.ManualDonation{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	return res.RowsAffected, res.Error
}

func (r *manualDonationRepo) HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]DonationHistoryRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []DonationHistoryRow
	if err := transaction.WithContext(ctx).
		Model(&types.ManualDonation{}).
		Select(`manual_donation.id, manual_donation.amount_usd, manual_donation.payment_date,
			manual_donation.payment_method, manual_donation.reference_number,
			COALESCE(campaign.name, '') AS campaign_name,
			COALESCE(sc.display_name, '') AS solicitor_name`).
		Joins("LEFT JOIN campaign ON campaign.id = manual_donation.campaign_id").
		Joins("LEFT JOIN solicitor ON solicitor.id = manual_donation.solicitor_id").
		Joins("LEFT JOIN contact sc ON sc.id = solicitor.contact_id").
		Where("manual_donation.contact_id = ?", contactID).
		Order("manual_donation.payment_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
