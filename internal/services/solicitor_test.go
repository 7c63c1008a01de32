package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
)

func TestAttachSolicitorNormalizesCode(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")

	solicitor, err := e.solicitor.Attach(context.Background(), contact.ID, "  sol-xy ")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if solicitor.SolicitorCode != "SOL-XY" {
		t.Errorf("code = %q, want SOL-XY", solicitor.SolicitorCode)
	}
}

func TestAttachSolicitorRejectsSecondRole(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	e.seedSolicitor(t, contact.ID, "SOL-A")

	_, err := e.solicitor.Attach(context.Background(), contact.ID, "SOL-B")
	if !errors.Is(err, crmerr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAttachSolicitorRejectsUnknownContact(t *testing.T) {
	e := newEnv(t)

	_, err := e.solicitor.Attach(context.Background(), uuid.New(), "SOL-C")
	if !errors.Is(err, crmerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDetachSolicitorRefusesWithBonusHistory(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "seller")
	solicitor := e.seedSolicitor(t, contact.ID, "SOL-D")

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := e.bonus.CreateRule(context.Background(), &types.BonusRule{
		SolicitorID:   solicitor.ID,
		Percentage:    5,
		EffectiveFrom: from,
	}); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	donorContact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, donorContact.ID, 1000, time.Now())
	if _, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   100,
		PaymentDate: from.AddDate(0, 1, 0),
		SolicitorID: &solicitor.ID,
	}, nil); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if err := e.solicitor.Detach(context.Background(), solicitor.ID); !errors.Is(err, crmerr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Without bonus history the detach goes through.
	other := e.seedContact(t, "other")
	plain := e.seedSolicitor(t, other.ID, "SOL-E")
	if err := e.solicitor.Detach(context.Background(), plain.ID); err != nil {
		t.Fatalf("detach without history: %v", err)
	}
	if _, err := e.solicitor.Get(context.Background(), plain.ID); !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("solicitor should be gone, got %v", err)
	}
}
