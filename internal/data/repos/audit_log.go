package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type AuditLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLog) ([]*types.AuditLog, error)
	List(ctx context.Context, tx *gorm.DB, action string, page, pageSize int) ([]*types.AuditLog, int64, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	repoLog := baseLog.With("repo", "AuditLogRepo")
	return &auditLogRepo{db: db, log: repoLog}
}

func (r *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLog) ([]*types.AuditLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(entries) == 0 {
		return []*types.AuditLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditLogRepo) List(ctx context.Context, tx *gorm.DB, action string, page, pageSize int) ([]*types.AuditLog, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var results []*types.AuditLog
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
