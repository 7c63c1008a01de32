package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type ContactListFilter struct {
	Search     string
	LocationID *uuid.UUID
	Page       int
	PageSize   int
}

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contacts []*types.Contact) ([]*types.Contact, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Contact, error)
	Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) error
	UpdateDisplayFields(ctx context.Context, tx *gorm.DB, contactID uuid.UUID, displayName, email string) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) (int64, error)
	List(ctx context.Context, tx *gorm.DB, filter ContactListFilter) ([]*types.Contact, int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (r *contactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*types.Contact) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(contacts) == 0 {
		return []*types.Contact{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepo) GetByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Contact
	if len(contactIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", contactIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contactRepo) Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(contact).Error
}

func (r *contactRepo) UpdateDisplayFields(ctx context.Context, tx *gorm.DB, contactID uuid.UUID, displayName, email string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("id = ?", contactID).
		Updates(map[string]interface{}{
			"display_name": displayName,
			"email":        email,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (r *contactRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(contactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Where("id IN ?", contactIDs).
		Delete(&types.Contact{})
	return res.RowsAffected, res.Error
}

func (r *contactRepo) List(ctx context.Context, tx *gorm.DB, filter ContactListFilter) ([]*types.Contact, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Contact{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"display_name ILIKE ? OR email ILIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 25
	}

	var results []*types.Contact
	if err := query.
		Order("display_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
