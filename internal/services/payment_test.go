package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

func TestRecordPaymentAdjustsPledgeBalance(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 1000, time.Now())

	payment, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   250,
		PaymentDate: time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if payment.ID == uuid.Nil {
		t.Fatal("payment id not assigned")
	}

	got, err := e.pledges.Get(context.Background(), pledge.ID)
	if err != nil {
		t.Fatalf("pledge lookup: %v", err)
	}
	if got.BalanceUSD != 750 {
		t.Errorf("balance = %v, want 750", got.BalanceUSD)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 100, time.Now())

	_, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   0,
		PaymentDate: time.Now(),
	}, nil)
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRecordPaymentRejectsOverAllocation(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 1000, time.Now())
	other := e.seedPledge(t, contact.ID, 500, time.Now())

	_, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   100,
		PaymentDate: time.Now(),
	}, []services.AllocationInput{{PledgeID: other.ID, AmountUSD: 150}})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDeletePaymentRestoresBalanceAndAudits(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 1000, time.Now())

	payment, err := e.payments.Record(context.Background(), &types.Payment{
		PledgeID:    pledge.ID,
		AmountUSD:   400,
		PaymentDate: time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if err := e.payments.Delete(adminCtx(), payment.ID); err != nil {
		t.Fatalf("delete payment: %v", err)
	}

	got, err := e.pledges.Get(context.Background(), pledge.ID)
	if err != nil {
		t.Fatalf("pledge lookup: %v", err)
	}
	if got.BalanceUSD != 1000 {
		t.Errorf("balance = %v, want 1000 after delete", got.BalanceUSD)
	}

	if _, err := e.payments.Get(context.Background(), payment.ID); !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("payment should be gone, got %v", err)
	}

	_, total, err := e.auditRepo.List(context.Background(), nil, types.AuditActionDeletePayment, 1, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if total != 1 {
		t.Errorf("expected one delete audit row, got %d", total)
	}
}

func TestDeletePaymentRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 100, time.Now())
	payment := e.seedPayment(t, pledge.ID, 50, time.Now())

	if err := e.payments.Delete(userCtx(), payment.ID); !errors.Is(err, crmerr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
