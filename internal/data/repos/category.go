package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(categories) == 0 {
		return []*types.Category{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
