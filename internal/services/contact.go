package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

type ContactListResult struct {
	Contacts   []*types.Contact `json:"contacts"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

type ContactService interface {
	Create(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	Get(ctx context.Context, contactID uuid.UUID) (*types.Contact, error)
	Update(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	// Delete refuses while financial records reference the contact; those
	// belong on a merge target, not in the trash.
	Delete(ctx context.Context, contactID uuid.UUID) error
	List(ctx context.Context, search string, page, pageSize int) (*ContactListResult, error)
}

type contactService struct {
	db            *gorm.DB
	log           *logger.Logger
	contactRepo   repos.ContactRepo
	pledgeRepo    repos.PledgeRepo
	donationRepo  repos.ManualDonationRepo
	solicitorRepo repos.SolicitorRepo
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo, pledgeRepo repos.PledgeRepo, donationRepo repos.ManualDonationRepo, solicitorRepo repos.SolicitorRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		db:            db,
		log:           serviceLog,
		contactRepo:   contactRepo,
		pledgeRepo:    pledgeRepo,
		donationRepo:  donationRepo,
		solicitorRepo: solicitorRepo,
	}
}

func (s *contactService) Create(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	contact.FirstName = strings.TrimSpace(contact.FirstName)
	contact.LastName = strings.TrimSpace(contact.LastName)
	if contact.FirstName == "" && contact.LastName == "" {
		return nil, fmt.Errorf("contact needs a first or last name: %w", crmerr.ErrInvalidArgument)
	}
	if contact.DisplayName == "" {
		contact.DisplayName = strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	}
	contact.ID = uuid.New()

	// Non-admin callers create contacts in their own location.
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && !rd.IsAdmin() && contact.LocationID == nil {
		contact.LocationID = rd.LocationID
	}

	if _, err := s.contactRepo.Create(ctx, nil, []*types.Contact{contact}); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, contactID uuid.UUID) (*types.Contact, error) {
	found, err := s.contactRepo.GetByIDs(ctx, nil, []uuid.UUID{contactID})
	if err != nil {
		return nil, fmt.Errorf("fetching contact: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("contact %s: %w", contactID, crmerr.ErrNotFound)
	}
	contact := found[0]

	rd := requestdata.GetRequestData(ctx)
	if rd != nil && !rd.IsAdmin() && rd.LocationID != nil {
		if contact.LocationID == nil || *contact.LocationID != *rd.LocationID {
			return nil, fmt.Errorf("contact %s: %w", contactID, crmerr.ErrNotFound)
		}
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if _, err := s.Get(ctx, contact.ID); err != nil {
		return nil, err
	}
	contact.UpdatedAt = time.Now().UTC()
	if err := s.contactRepo.Update(ctx, nil, contact); err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, contactID uuid.UUID) error {
	if _, err := s.Get(ctx, contactID); err != nil {
		return err
	}

	ids := []uuid.UUID{contactID}
	pledges, err := s.pledgeRepo.GetByContactIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("checking pledges: %w", err)
	}
	donations, err := s.donationRepo.GetByContactIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("checking donations: %w", err)
	}
	solicitorCount, err := s.solicitorRepo.CountByContactIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("checking solicitor role: %w", err)
	}
	if len(pledges) > 0 || len(donations) > 0 || solicitorCount > 0 {
		return fmt.Errorf("contact has financial or solicitor records, merge instead: %w", crmerr.ErrConflict)
	}

	deleted, err := s.contactRepo.DeleteByIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	if deleted != 1 {
		return fmt.Errorf("contact %s: %w", contactID, crmerr.ErrNotFound)
	}
	return nil
}

func (s *contactService) List(ctx context.Context, search string, page, pageSize int) (*ContactListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	filter := repos.ContactListFilter{Search: search, Page: page, PageSize: pageSize}
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && !rd.IsAdmin() {
		filter.LocationID = rd.LocationID
	}

	contacts, total, err := s.contactRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ContactListResult{
		Contacts:   contacts,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
