package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type CampaignRepo interface {
	Create(ctx context.Context, tx *gorm.DB, campaigns []*types.Campaign) ([]*types.Campaign, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, campaignIDs []uuid.UUID) ([]*types.Campaign, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Campaign, error)
	Update(ctx context.Context, tx *gorm.DB, campaign *types.Campaign) error
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Campaign, error)
}

type campaignRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignRepo(db *gorm.DB, baseLog *logger.Logger) CampaignRepo {
	repoLog := baseLog.With("repo", "CampaignRepo")
	return &campaignRepo{db: db, log: repoLog}
}

func (r *campaignRepo) Create(ctx context.Context, tx *gorm.DB, campaigns []*types.Campaign) ([]*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(campaigns) == 0 {
		return []*types.Campaign{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepo) GetByIDs(ctx context.Context, tx *gorm.DB, campaignIDs []uuid.UUID) ([]*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Campaign
	if len(campaignIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", campaignIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *campaignRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Campaign
	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *campaignRepo) Update(ctx context.Context, tx *gorm.DB, campaign *types.Campaign) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(campaign).Error
}

func (r *campaignRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Campaign{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var results []*types.Campaign
	if err := query.Order("start_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
