package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type DonationService interface {
	Create(ctx context.Context, donation *types.ManualDonation) (*types.ManualDonation, error)
	Get(ctx context.Context, donationID uuid.UUID) (*types.ManualDonation, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*types.ManualDonation, error)
	Delete(ctx context.Context, donationID uuid.UUID) error
}

type donationService struct {
	db           *gorm.DB
	log          *logger.Logger
	donationRepo repos.ManualDonationRepo
	contactRepo  repos.ContactRepo
}

func NewDonationService(db *gorm.DB, log *logger.Logger, donationRepo repos.ManualDonationRepo, contactRepo repos.ContactRepo) DonationService {
	serviceLog := log.With("service", "DonationService")
	return &donationService{db: db, log: serviceLog, donationRepo: donationRepo, contactRepo: contactRepo}
}

func (s *donationService) Create(ctx context.Context, donation *types.ManualDonation) (*types.ManualDonation, error) {
	if donation.AmountUSD <= 0 {
		return nil, fmt.Errorf("donation amount must be positive: %w", crmerr.ErrInvalidArgument)
	}

	owners, err := s.contactRepo.GetByIDs(ctx, nil, []uuid.UUID{donation.ContactID})
	if err != nil {
		return nil, fmt.Errorf("resolving contact: %w", err)
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("contact %s: %w", donation.ContactID, crmerr.ErrNotFound)
	}

	donation.ID = uuid.New()
	if _, err := s.donationRepo.Create(ctx, nil, []*types.ManualDonation{donation}); err != nil {
		return nil, fmt.Errorf("creating donation: %w", err)
	}
	return donation, nil
}

func (s *donationService) Get(ctx context.Context, donationID uuid.UUID) (*types.ManualDonation, error) {
	found, err := s.donationRepo.GetByIDs(ctx, nil, []uuid.UUID{donationID})
	if err != nil {
		return nil, fmt.Errorf("fetching donation: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("donation %s: %w", donationID, crmerr.ErrNotFound)
	}
	return found[0], nil
}

func (s *donationService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*types.ManualDonation, error) {
	donations, err := s.donationRepo.GetByContactIDs(ctx, nil, []uuid.UUID{contactID})
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}
	return donations, nil
}

func (s *donationService) Delete(ctx context.Context, donationID uuid.UUID) error {
	if _, err := s.Get(ctx, donationID); err != nil {
		return err
	}
	if err := s.donationRepo.DeleteByIDs(ctx, nil, []uuid.UUID{donationID}); err != nil {
		return fmt.Errorf("deleting donation: %w", err)
	}
	return nil
}
