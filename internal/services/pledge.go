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

type PledgeService interface {
	Create(ctx context.Context, pledge *types.Pledge) (*types.Pledge, error)
	Get(ctx context.Context, pledgeID uuid.UUID) (*types.Pledge, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*types.Pledge, error)
	Update(ctx context.Context, pledge *types.Pledge) (*types.Pledge, error)
	// Delete refuses while payments are applied; delete those first so the
	// money trail stays explainable.
	Delete(ctx context.Context, pledgeID uuid.UUID) error
	CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error)
	ListCategories(ctx context.Context) ([]*types.Category, error)
}

type pledgeService struct {
	db           *gorm.DB
	log          *logger.Logger
	pledgeRepo   repos.PledgeRepo
	contactRepo  repos.ContactRepo
	paymentRepo  repos.PaymentRepo
	categoryRepo repos.CategoryRepo
}

func NewPledgeService(db *gorm.DB, log *logger.Logger, pledgeRepo repos.PledgeRepo, contactRepo repos.ContactRepo, paymentRepo repos.PaymentRepo, categoryRepo repos.CategoryRepo) PledgeService {
	serviceLog := log.With("service", "PledgeService")
	return &pledgeService{db: db, log: serviceLog, pledgeRepo: pledgeRepo, contactRepo: contactRepo, paymentRepo: paymentRepo, categoryRepo: categoryRepo}
}

func (s *pledgeService) Create(ctx context.Context, pledge *types.Pledge) (*types.Pledge, error) {
	if pledge.OriginalAmountUSD <= 0 {
		return nil, fmt.Errorf("pledge amount must be positive: %w", crmerr.ErrInvalidArgument)
	}

	owners, err := s.contactRepo.GetByIDs(ctx, nil, []uuid.UUID{pledge.ContactID})
	if err != nil {
		return nil, fmt.Errorf("resolving contact: %w", err)
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("contact %s: %w", pledge.ContactID, crmerr.ErrNotFound)
	}

	if pledge.CategoryID != nil {
		categories, err := s.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{*pledge.CategoryID})
		if err != nil {
			return nil, fmt.Errorf("resolving category: %w", err)
		}
		if len(categories) == 0 {
			return nil, fmt.Errorf("category %s: %w", *pledge.CategoryID, crmerr.ErrNotFound)
		}
	}

	pledge.ID = uuid.New()
	// A fresh pledge is wholly unpaid.
	pledge.BalanceUSD = pledge.OriginalAmountUSD

	if _, err := s.pledgeRepo.Create(ctx, nil, []*types.Pledge{pledge}); err != nil {
		return nil, fmt.Errorf("creating pledge: %w", err)
	}
	return pledge, nil
}

func (s *pledgeService) Get(ctx context.Context, pledgeID uuid.UUID) (*types.Pledge, error) {
	found, err := s.pledgeRepo.GetByIDs(ctx, nil, []uuid.UUID{pledgeID})
	if err != nil {
		return nil, fmt.Errorf("fetching pledge: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("pledge %s: %w", pledgeID, crmerr.ErrNotFound)
	}
	return found[0], nil
}

func (s *pledgeService) Delete(ctx context.Context, pledgeID uuid.UUID) error {
	if _, err := s.Get(ctx, pledgeID); err != nil {
		return err
	}

	payments, err := s.paymentRepo.GetByPledgeIDs(ctx, nil, []uuid.UUID{pledgeID})
	if err != nil {
		return fmt.Errorf("checking payments: %w", err)
	}
	if len(payments) > 0 {
		return fmt.Errorf("pledge has %d payments applied: %w", len(payments), crmerr.ErrConflict)
	}

	if err := s.pledgeRepo.DeleteByIDs(ctx, nil, []uuid.UUID{pledgeID}); err != nil {
		return fmt.Errorf("deleting pledge: %w", err)
	}
	return nil
}

func (s *pledgeService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*types.Pledge, error) {
	pledges, err := s.pledgeRepo.GetByContactIDs(ctx, nil, []uuid.UUID{contactID})
	if err != nil {
		return nil, fmt.Errorf("listing pledges: %w", err)
	}
	return pledges, nil
}

func (s *pledgeService) CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", crmerr.ErrInvalidArgument)
	}
	category.ID = uuid.New()
	if _, err := s.categoryRepo.Create(ctx, nil, []*types.Category{category}); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *pledgeService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	categories, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (s *pledgeService) Update(ctx context.Context, pledge *types.Pledge) (*types.Pledge, error) {
	if _, err := s.Get(ctx, pledge.ID); err != nil {
		return nil, err
	}
	if err := s.pledgeRepo.Update(ctx, nil, pledge); err != nil {
		return nil, fmt.Errorf("updating pledge: %w", err)
	}
	return pledge, nil
}
