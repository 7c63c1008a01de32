package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

type AuditService interface {
	List(ctx context.Context, action string, page, pageSize int) ([]*types.AuditLog, int64, error)
}

type auditService struct {
	db        *gorm.DB
	log       *logger.Logger
	auditRepo repos.AuditLogRepo
}

func NewAuditService(db *gorm.DB, log *logger.Logger, auditRepo repos.AuditLogRepo) AuditService {
	serviceLog := log.With("service", "AuditService")
	return &auditService{db: db, log: serviceLog, auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, action string, page, pageSize int) ([]*types.AuditLog, int64, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, 0, fmt.Errorf("missing request identity: %w", crmerr.ErrUnauthorized)
	}
	if !rd.IsAdmin() {
		return nil, 0, fmt.Errorf("audit log access requires an admin role: %w", crmerr.ErrForbidden)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	entries, total, err := s.auditRepo.List(ctx, nil, action, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit log: %w", err)
	}
	return entries, total, nil
}
