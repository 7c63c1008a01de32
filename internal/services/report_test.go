package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

func TestCampaignCreateRejectsDuplicateCode(t *testing.T) {
	e := newEnv(t)

	campaign := &types.Campaign{
		Code:      "spring26",
		Name:      "Spring 2026",
		StartDate: time.Now(),
	}
	created, err := e.campaigns.Create(context.Background(), campaign)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if created.Code != "SPRING26" {
		t.Errorf("code = %q, want SPRING26", created.Code)
	}

	_, err = e.campaigns.Create(context.Background(), &types.Campaign{
		Code:      "SPRING26",
		Name:      "Duplicate",
		StartDate: time.Now(),
	})
	if !errors.Is(err, crmerr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCampaignSummaryRollup(t *testing.T) {
	e := newEnv(t)
	// nil redis client: reports go straight to the database.
	reports := services.NewReportService(e.tx, e.log, nil, e.campaigns)

	campaign, err := e.campaigns.Create(context.Background(), &types.Campaign{
		Code:          "GALA26",
		Name:          "Gala 2026",
		StartDate:     time.Now(),
		GoalAmountUSD: 10000,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	donorA := e.seedContact(t, "donorA")
	donorB := e.seedContact(t, "donorB")

	pledgeA := e.seedPledge(t, donorA.ID, 2000, time.Now())
	pledgeA.CampaignCode = campaign.Code
	if err := e.pledgeRepo.Update(context.Background(), nil, pledgeA); err != nil {
		t.Fatalf("tag pledge A: %v", err)
	}
	pledgeB := e.seedPledge(t, donorB.ID, 3000, time.Now())
	pledgeB.CampaignCode = campaign.Code
	if err := e.pledgeRepo.Update(context.Background(), nil, pledgeB); err != nil {
		t.Fatalf("tag pledge B: %v", err)
	}

	e.seedPayment(t, pledgeA.ID, 500, time.Now())
	e.seedPayment(t, pledgeB.ID, 1000, time.Now())

	donation := e.seedDonation(t, donorA.ID, 250, time.Now())
	donation.CampaignID = &campaign.ID
	if err := e.tx.WithContext(context.Background()).Save(donation).Error; err != nil {
		t.Fatalf("tag donation: %v", err)
	}

	report, err := reports.CampaignSummary(context.Background(), "GALA26")
	if err != nil {
		t.Fatalf("campaign summary: %v", err)
	}

	if report.TotalPledgedUSD != 5000 {
		t.Errorf("pledged = %v, want 5000", report.TotalPledgedUSD)
	}
	if report.TotalPaidUSD != 1500 {
		t.Errorf("paid = %v, want 1500", report.TotalPaidUSD)
	}
	if report.TotalDonatedUSD != 250 {
		t.Errorf("donated = %v, want 250", report.TotalDonatedUSD)
	}
	if report.TotalRaisedUSD != 1750 {
		t.Errorf("raised = %v, want 1750", report.TotalRaisedUSD)
	}
	if report.GoalProgressPct != 17.5 {
		t.Errorf("goal progress = %v, want 17.5", report.GoalProgressPct)
	}
}

func TestCampaignSummaryUnknownCode(t *testing.T) {
	e := newEnv(t)
	reports := services.NewReportService(e.tx, e.log, nil, e.campaigns)

	_, err := reports.CampaignSummary(context.Background(), "NOPE")
	if !errors.Is(err, crmerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTopDonorsOrdering(t *testing.T) {
	e := newEnv(t)
	reports := services.NewReportService(e.tx, e.log, nil, e.campaigns)

	big := e.seedContact(t, "big")
	small := e.seedContact(t, "small")

	pledge := e.seedPledge(t, big.ID, 10000, time.Now())
	e.seedPayment(t, pledge.ID, 4000, time.Now())
	e.seedDonation(t, small.ID, 100, time.Now())

	donors, err := reports.TopDonors(context.Background(), 10)
	if err != nil {
		t.Fatalf("top donors: %v", err)
	}
	if len(donors) != 2 {
		t.Fatalf("expected 2 donors, got %d", len(donors))
	}
	if donors[0].ContactID != big.ID || donors[0].TotalUSD != 4000 {
		t.Errorf("top donor = %+v, want big at 4000", donors[0])
	}
	if donors[1].ContactID != small.ID || donors[1].TotalUSD != 100 {
		t.Errorf("second donor = %+v, want small at 100", donors[1])
	}
}
