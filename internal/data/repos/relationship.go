package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type RelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rels []*types.Relationship) ([]*types.Relationship, error)
	GetByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]*types.Relationship, error)
	// Repoint rewrites both direction columns; an edge can reference a merge
	// source on either end.
	Repoint(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	repoLog := baseLog.With("repo", "RelationshipRepo")
	return &relationshipRepo{db: db, log: repoLog}
}

func (r *relationshipRepo) Create(ctx context.Context, tx *gorm.DB, rels []*types.Relationship) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rels) == 0 {
		return []*types.Relationship{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *relationshipRepo) GetByContactID(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Relationship
	if err := transaction.WithContext(ctx).
		Where("contact_id = ? OR related_contact_id = ?", contactID, contactID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *relationshipRepo) Repoint(ctx context.Context, tx *gorm.DB, fromContactIDs []uuid.UUID, toContactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fromContactIDs) == 0 {
		return 0, nil
	}

	subject := transaction.WithContext(ctx).
		Model(&types.Relationship{}).
		Where("contact_id IN ?", fromContactIDs).
		Update("contact_id", toContactID)
	if subject.Error != nil {
		return subject.RowsAffected, subject.Error
	}

	related := transaction.WithContext(ctx).
		Model(&types.Relationship{}).
		Where("related_contact_id IN ?", fromContactIDs).
		Update("related_contact_id", toContactID)
	return subject.RowsAffected + related.RowsAffected, related.Error
}

func (r *relationshipRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(relIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", relIDs).
		Delete(&types.Relationship{}).Error
}
