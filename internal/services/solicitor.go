package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type SolicitorService interface {
	Attach(ctx context.Context, contactID uuid.UUID, solicitorCode string) (*types.Solicitor, error)
	Detach(ctx context.Context, solicitorID uuid.UUID) error
	Get(ctx context.Context, solicitorID uuid.UUID) (*types.Solicitor, error)
	List(ctx context.Context, activeOnly bool) ([]*types.Solicitor, error)
}

type solicitorService struct {
	db            *gorm.DB
	log           *logger.Logger
	solicitorRepo repos.SolicitorRepo
	contactRepo   repos.ContactRepo
	calcRepo      repos.BonusCalculationRepo
}

func NewSolicitorService(db *gorm.DB, log *logger.Logger, solicitorRepo repos.SolicitorRepo, contactRepo repos.ContactRepo, calcRepo repos.BonusCalculationRepo) SolicitorService {
	serviceLog := log.With("service", "SolicitorService")
	return &solicitorService{
		db:            db,
		log:           serviceLog,
		solicitorRepo: solicitorRepo,
		contactRepo:   contactRepo,
		calcRepo:      calcRepo,
	}
}

func (s *solicitorService) Attach(ctx context.Context, contactID uuid.UUID, solicitorCode string) (*types.Solicitor, error) {
	solicitorCode = strings.ToUpper(strings.TrimSpace(solicitorCode))
	if solicitorCode == "" {
		return nil, fmt.Errorf("solicitor code is required: %w", crmerr.ErrInvalidArgument)
	}

	contacts, err := s.contactRepo.GetByIDs(ctx, nil, []uuid.UUID{contactID})
	if err != nil {
		return nil, fmt.Errorf("resolving contact: %w", err)
	}
	if len(contacts) == 0 {
		return nil, fmt.Errorf("contact %s: %w", contactID, crmerr.ErrNotFound)
	}

	existing, err := s.solicitorRepo.GetByContactIDs(ctx, nil, []uuid.UUID{contactID})
	if err != nil {
		return nil, fmt.Errorf("checking existing role: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("contact already holds a solicitor role: %w", crmerr.ErrConflict)
	}

	solicitor := &types.Solicitor{
		ID:            uuid.New(),
		ContactID:     contactID,
		SolicitorCode: solicitorCode,
		Active:        true,
	}
	if _, err := s.solicitorRepo.Create(ctx, nil, []*types.Solicitor{solicitor}); err != nil {
		return nil, fmt.Errorf("creating solicitor: %w", err)
	}
	return solicitor, nil
}

// Detach refuses while bonus calculations exist; those rows key on the
// solicitor id and would be orphaned.
func (s *solicitorService) Detach(ctx context.Context, solicitorID uuid.UUID) error {
	if _, err := s.Get(ctx, solicitorID); err != nil {
		return err
	}

	count, err := s.calcRepo.CountBySolicitorIDs(ctx, nil, []uuid.UUID{solicitorID})
	if err != nil {
		return fmt.Errorf("counting bonus calculations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("solicitor has %d bonus calculations on record: %w", count, crmerr.ErrConflict)
	}

	if err := s.solicitorRepo.DeleteByIDs(ctx, nil, []uuid.UUID{solicitorID}); err != nil {
		return fmt.Errorf("deleting solicitor: %w", err)
	}
	return nil
}

func (s *solicitorService) Get(ctx context.Context, solicitorID uuid.UUID) (*types.Solicitor, error) {
	found, err := s.solicitorRepo.GetByIDs(ctx, nil, []uuid.UUID{solicitorID})
	if err != nil {
		return nil, fmt.Errorf("fetching solicitor: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("solicitor %s: %w", solicitorID, crmerr.ErrNotFound)
	}
	return found[0], nil
}

func (s *solicitorService) List(ctx context.Context, activeOnly bool) ([]*types.Solicitor, error) {
	solicitors, err := s.solicitorRepo.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing solicitors: %w", err)
	}
	return solicitors, nil
}
