package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type SolicitorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, solicitors []*types.Solicitor) ([]*types.Solicitor, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.Solicitor, error)
	GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Solicitor, error)
	CountByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) (int64, error)
	RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Solicitor, error)
}

type solicitorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSolicitorRepo(db *gorm.DB, baseLog *logger.Logger) SolicitorRepo {
	repoLog := baseLog.With("repo", "SolicitorRepo")
	return &solicitorRepo{db: db, log: repoLog}
}

func (r *solicitorRepo) Create(ctx context.Context, tx *gorm.DB, solicitors []*types.Solicitor) ([]*types.Solicitor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(solicitors) == 0 {
		return []*types.Solicitor{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&solicitors).Error; err != nil {
		return nil, err
	}
	return solicitors, nil
}

func (r *solicitorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) ([]*types.Solicitor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Solicitor
	if len(solicitorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", solicitorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *solicitorRepo) GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Solicitor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Solicitor
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

func (r *solicitorRepo) CountByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(contactIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Solicitor{}).
		Where("contact_id IN ?", contactIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *solicitorRepo) RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Solicitor{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	return res.RowsAffected, res.Error
}

func (r *solicitorRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, solicitorIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(solicitorIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", solicitorIDs).
		Delete(&types.Solicitor{}).Error
}

func (r *solicitorRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Solicitor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Solicitor{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var results []*types.Solicitor
	if err := query.Order("solicitor_code ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
