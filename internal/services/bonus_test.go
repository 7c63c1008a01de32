package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
)

func TestBonusBandSelection(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	solicitor := e.seedSolicitor(t, contact.ID, "SOL-1")

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	smallMax := 500.0
	if _, err := e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		MinAmountUSD:  0,
		MaxAmountUSD:  &smallMax,
		Percentage:    5,
		EffectiveFrom: from,
	}); err != nil {
		t.Fatalf("create small band: %v", err)
	}
	if _, err := e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		MinAmountUSD:  500,
		Percentage:    10,
		EffectiveFrom: from,
	}); err != nil {
		t.Fatalf("create large band: %v", err)
	}

	donorContact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, donorContact.ID, 5000, time.Now())

	// 300 falls in the 5% band, 800 in the 10% band.
	p1, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   300,
		PaymentDate: from.AddDate(0, 1, 0),
		SolicitorID: &solicitor.ID,
	}, nil)
	if err != nil {
		t.Fatalf("record payment 1: %v", err)
	}
	p2, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   800,
		PaymentDate: from.AddDate(0, 1, 0),
		SolicitorID: &solicitor.ID,
	}, nil)
	if err != nil {
		t.Fatalf("record payment 2: %v", err)
	}

	calcs, err := e.bonus.CalculationsForSolicitor(context.Background(), solicitor.ID)
	if err != nil {
		t.Fatalf("list calculations: %v", err)
	}
	if len(calcs) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(calcs))
	}
	byPayment := map[string]*types.BonusCalculation{}
	for _, c := range calcs {
		byPayment[c.PaymentID.String()] = c
	}
	if c := byPayment[p1.ID.String()]; c == nil || c.BonusAmountUSD != 15 || c.BonusPercentage != 5 {
		t.Errorf("payment 1 bonus = %+v, want 15 at 5%%", c)
	}
	if c := byPayment[p2.ID.String()]; c == nil || c.BonusAmountUSD != 80 || c.BonusPercentage != 10 {
		t.Errorf("payment 2 bonus = %+v, want 80 at 10%%", c)
	}
}

func TestBonusNoRuleMeansNoCalculation(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	solicitor := e.seedSolicitor(t, contact.ID, "SOL-2")

	donorContact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, donorContact.ID, 1000, time.Now())

	if _, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   100,
		PaymentDate: time.Now(),
		SolicitorID: &solicitor.ID,
	}, nil); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	calcs, err := e.bonus.CalculationsForSolicitor(context.Background(), solicitor.ID)
	if err != nil {
		t.Fatalf("list calculations: %v", err)
	}
	if len(calcs) != 0 {
		t.Errorf("expected no calculations without a rule, got %d", len(calcs))
	}
}

func TestBonusRuleValidation(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	solicitor := e.seedSolicitor(t, contact.ID, "SOL-3")

	_, err := e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		Percentage:    0,
		EffectiveFrom: time.Now(),
	})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Errorf("zero percentage: expected ErrInvalidArgument, got %v", err)
	}

	badMax := 10.0
	_, err = e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		MinAmountUSD:  100,
		MaxAmountUSD:  &badMax,
		Percentage:    5,
		EffectiveFrom: time.Now(),
	})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Errorf("inverted band: expected ErrInvalidArgument, got %v", err)
	}
}

func TestBonusExpiredRuleDoesNotApply(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	solicitor := e.seedSolicitor(t, contact.ID, "SOL-4")

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if _, err := e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		Percentage:    5,
		EffectiveFrom: from,
		EffectiveTo:   &to,
	}); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	donorContact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, donorContact.ID, 1000, time.Now())

	if _, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   100,
		PaymentDate: to.AddDate(0, 6, 0),
		SolicitorID: &solicitor.ID,
	}, nil); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	calcs, err := e.bonus.CalculationsForSolicitor(context.Background(), solicitor.ID)
	if err != nil {
		t.Fatalf("list calculations: %v", err)
	}
	if len(calcs) != 0 {
		t.Errorf("expired rule produced %d calculations", len(calcs))
	}
}
