package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type RoleAssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, roles []*types.RoleAssignment) ([]*types.RoleAssignment, error)
	GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.RoleAssignment, error)
	RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
}

type roleAssignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) RoleAssignmentRepo {
	repoLog := baseLog.With("repo", "RoleAssignmentRepo")
	return &roleAssignmentRepo{db: db, log: repoLog}
}

func (r *roleAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, roles []*types.RoleAssignment) ([]*types.RoleAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(roles) == 0 {
		return []*types.RoleAssignment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleAssignmentRepo) GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.RoleAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RoleAssignment
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

func (r *roleAssignmentRepo) RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.RoleAssignment{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	return res.RowsAffected, res.Error
}

type StudentRoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, roles []*types.StudentRole) ([]*types.StudentRole, error)
	GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.StudentRole, error)
	RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
}

type studentRoleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRoleRepo(db *gorm.DB, baseLog *logger.Logger) StudentRoleRepo {
	repoLog := baseLog.With("repo", "StudentRoleRepo")
	return &studentRoleRepo{db: db, log: repoLog}
}

func (r *studentRoleRepo) Create(ctx context.Context, tx *gorm.DB, roles []*types.StudentRole) ([]*types.StudentRole, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(roles) == 0 {
		return []*types.StudentRole{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *studentRoleRepo) GetByContactIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) ([]*types.StudentRole, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudentRole
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

func (r *studentRoleRepo) RepointContact(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.StudentRole{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	return res.RowsAffected, res.Error
}
