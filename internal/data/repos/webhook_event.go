package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type WebhookEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.WebhookEvent) ([]*types.WebhookEvent, error)
	GetByExternalIDs(ctx context.Context, tx *gorm.DB, externalIDs []string) ([]*types.WebhookEvent, error)
	MarkProcessed(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
}

type webhookEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWebhookEventRepo(db *gorm.DB, baseLog *logger.Logger) WebhookEventRepo {
	repoLog := baseLog.With("repo", "WebhookEventRepo")
	return &webhookEventRepo{db: db, log: repoLog}
}

func (r *webhookEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.WebhookEvent) ([]*types.WebhookEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(events) == 0 {
		return []*types.WebhookEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *webhookEventRepo) GetByExternalIDs(ctx context.Context, tx *gorm.DB, externalIDs []string) ([]*types.WebhookEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WebhookEvent
	if len(externalIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("external_id IN ?", externalIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *webhookEventRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.WebhookEvent{}).
		Where("id = ?", eventID).
		Update("processed_at", &now).Error
}
