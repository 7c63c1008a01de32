package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

type CampaignService interface {
	Create(ctx context.Context, campaign *types.Campaign) (*types.Campaign, error)
	GetByCode(ctx context.Context, code string) (*types.Campaign, error)
	Update(ctx context.Context, campaign *types.Campaign) (*types.Campaign, error)
	List(ctx context.Context, activeOnly bool) ([]*types.Campaign, error)
}

type campaignService struct {
	db           *gorm.DB
	log          *logger.Logger
	campaignRepo repos.CampaignRepo
}

func NewCampaignService(db *gorm.DB, log *logger.Logger, campaignRepo repos.CampaignRepo) CampaignService {
	serviceLog := log.With("service", "CampaignService")
	return &campaignService{db: db, log: serviceLog, campaignRepo: campaignRepo}
}

func (s *campaignService) Create(ctx context.Context, campaign *types.Campaign) (*types.Campaign, error) {
	campaign.Code = strings.ToUpper(strings.TrimSpace(campaign.Code))
	if campaign.Code == "" || campaign.Name == "" {
		return nil, fmt.Errorf("campaign code and name are required: %w", crmerr.ErrInvalidArgument)
	}

	existing, err := s.campaignRepo.GetByCodes(ctx, nil, []string{campaign.Code})
	if err != nil {
		return nil, fmt.Errorf("checking campaign code: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("campaign code %s already exists: %w", campaign.Code, crmerr.ErrConflict)
	}

	if _, err := s.campaignRepo.Create(ctx, nil, []*types.Campaign{campaign}); err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) GetByCode(ctx context.Context, code string) (*types.Campaign, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	found, err := s.campaignRepo.GetByCodes(ctx, nil, []string{code})
	if err != nil {
		return nil, fmt.Errorf("fetching campaign: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("campaign %s: %w", code, crmerr.ErrNotFound)
	}
	return found[0], nil
}

func (s *campaignService) Update(ctx context.Context, campaign *types.Campaign) (*types.Campaign, error) {
	if err := s.campaignRepo.Update(ctx, nil, campaign); err != nil {
		return nil, fmt.Errorf("updating campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) List(ctx context.Context, activeOnly bool) ([]*types.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}
