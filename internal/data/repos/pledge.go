package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

// PledgeHistoryRow is a pledge decorated with its joined category name and
// the owning contact's relationship type for the financial-history
// projection.
type PledgeHistoryRow struct {
	ID                uuid.UUID `gorm:"column:id"`
	CampaignCode      string    `gorm:"column:campaign_code"`
	CategoryName      string    `gorm:"column:category_name"`
	RelationshipType  string    `gorm:"column:relationship_type"`
	PledgeDate        time.Time `gorm:"column:pledge_date"`
	OriginalAmountUSD float64   `gorm:"column:original_amount_usd"`
	BalanceUSD        float64   `gorm:"column:balance_usd"`
	Description       string    `gorm:"column:description"`
	Notes             string    `gorm:"column:notes"`
}

type PledgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pledges []*types.Pledge) ([]*types.Pledge, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) ([]*types.Pledge, error)
	GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Pledge, error)
	Update(ctx context.Context, tx *gorm.DB, pledge *types.Pledge) error
	AdjustBalance(ctx context.Context, tx *gorm.DB, pledgeID uuid.UUID, deltaUSD float64) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) error
	RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]PledgeHistoryRow, error)
}

type pledgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPledgeRepo(db *gorm.DB, baseLog *logger.Logger) PledgeRepo {
	repoLog := baseLog.With("repo", "PledgeRepo")
	return &pledgeRepo{db: db, log: repoLog}
}

func (r *pledgeRepo) Create(ctx context.Context, tx *gorm.DB, pledges []*types.Pledge) ([]*types.Pledge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(pledges) == 0 {
		return []*types.Pledge{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&pledges).Error; err != nil {
		return nil, err
	}
	return pledges, nil
}

func (r *pledgeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) ([]*types.Pledge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Pledge
	if len(pledgeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", pledgeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pledgeRepo) GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Pledge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Pledge
	if len(contactIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("contact_id IN ?", contactIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pledgeRepo) Update(ctx context.Context, tx *gorm.DB, pledge *types.Pledge) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(pledge).Error
}

func (r *pledgeRepo) AdjustBalance(ctx context.Context, tx *gorm.DB, pledgeID uuid.UUID, deltaUSD float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Pledge{}).
		Where("id = ?", pledgeID).
		Updates(map[string]interface{}{
			"balance_usd": gorm.Expr("balance_usd + ?", deltaUSD),
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *pledgeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, pledgeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(pledgeIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", pledgeIDs).
		Delete(&types.Pledge{}).Error
}

func (r *pledgeRepo) RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Pledge{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	return res.RowsAffected, res.Error
}

func (r *pledgeRepo) HistoryByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]PledgeHistoryRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []PledgeHistoryRow
	if err := transaction.WithContext(ctx).
		Model(&types.Pledge{}).
		Select(`pledge.id, pledge.campaign_code, COALESCE(category.name, '') AS category_name,
			COALESCE((SELECT r.relationship_type FROM relationship r
				WHERE r.contact_id = pledge.contact_id
				ORDER BY r.created_at LIMIT 1), '') AS relationship_type,
			pledge.pledge_date, pledge.original_amount_usd, pledge.balance_usd,
			pledge.description, pledge.notes`).
		Joins("LEFT JOIN category ON category.id = pledge.category_id").
		Where("pledge.contact_id = ?", contactID).
		Order("pledge.pledge_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
