package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

func TestContactCreateDefaultsDisplayName(t *testing.T) {
	e := newEnv(t)

	contact, err := e.contacts.Create(context.Background(), &types.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if contact.DisplayName != "Ada Lovelace" {
		t.Errorf("display name = %q, want %q", contact.DisplayName, "Ada Lovelace")
	}
}

func TestContactCreateRequiresAName(t *testing.T) {
	e := newEnv(t)
	_, err := e.contacts.Create(context.Background(), &types.Contact{Email: "x@test.local"})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestContactLocationScoping(t *testing.T) {
	e := newEnv(t)

	locA := uuid.New()
	locB := uuid.New()

	scoped := &types.Contact{ID: uuid.New(), FirstName: "Scoped", LastName: "Donor", DisplayName: "Scoped Donor", LocationID: &locA}
	if _, err := e.contactRepo.Create(context.Background(), nil, []*types.Contact{scoped}); err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	ctxB := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:     uuid.New(),
		Role:       requestdata.RoleUser,
		LocationID: &locB,
	})
	if _, err := e.contacts.Get(ctxB, scoped.ID); !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("cross-location read should look like not found, got %v", err)
	}

	// Admins see everything.
	if _, err := e.contacts.Get(adminCtx(), scoped.ID); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestContactListSearch(t *testing.T) {
	e := newEnv(t)
	e.seedContact(t, "Margaret")
	e.seedContact(t, "Grace")

	result, err := e.contacts.List(adminCtx(), "marg", 1, 25)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || len(result.Contacts) != 1 {
		t.Fatalf("search hit %d contacts, want 1", result.Total)
	}
	if result.Contacts[0].FirstName != "Margaret" {
		t.Errorf("matched %q, want Margaret", result.Contacts[0].FirstName)
	}
}

func TestContactDeleteRefusesWithFinancialRecords(t *testing.T) {
	e := newEnv(t)

	donor := e.seedContact(t, "Pledged")
	e.seedPledge(t, donor.ID, 100, time.Now())
	if err := e.contacts.Delete(adminCtx(), donor.ID); !errors.Is(err, crmerr.ErrConflict) {
		t.Errorf("delete with pledge: expected ErrConflict, got %v", err)
	}

	sol := e.seedContact(t, "Soliciting")
	e.seedSolicitor(t, sol.ID, "SOL-DEL")
	if err := e.contacts.Delete(adminCtx(), sol.ID); !errors.Is(err, crmerr.ErrConflict) {
		t.Errorf("delete with solicitor role: expected ErrConflict, got %v", err)
	}

	clean := e.seedContact(t, "Clean")
	if err := e.contacts.Delete(adminCtx(), clean.ID); err != nil {
		t.Fatalf("delete clean contact: %v", err)
	}
	if _, err := e.contacts.Get(adminCtx(), clean.ID); !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("deleted contact still readable, got %v", err)
	}
}

func TestPledgeDeleteRefusesWithPayments(t *testing.T) {
	e := newEnv(t)
	donor := e.seedContact(t, "Payer")

	paid := e.seedPledge(t, donor.ID, 500, time.Now())
	e.seedPayment(t, paid.ID, 100, time.Now())
	if err := e.pledges.Delete(context.Background(), paid.ID); !errors.Is(err, crmerr.ErrConflict) {
		t.Errorf("delete pledge with payments: expected ErrConflict, got %v", err)
	}

	empty := e.seedPledge(t, donor.ID, 500, time.Now())
	if err := e.pledges.Delete(context.Background(), empty.ID); err != nil {
		t.Fatalf("delete unpaid pledge: %v", err)
	}
	if _, err := e.pledges.Get(context.Background(), empty.ID); !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("deleted pledge still readable, got %v", err)
	}
}

func TestPledgeCategories(t *testing.T) {
	e := newEnv(t)
	donor := e.seedContact(t, "donor")

	category, err := e.pledges.CreateCategory(context.Background(), &types.Category{Name: "  Building Fund "})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Name != "Building Fund" {
		t.Errorf("category name = %q, want trimmed", category.Name)
	}
	if _, err := e.pledges.CreateCategory(context.Background(), &types.Category{Name: "  "}); !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Errorf("blank name: expected ErrInvalidArgument, got %v", err)
	}

	listed, err := e.pledges.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d categories, want 1", len(listed))
	}

	if _, err := e.pledges.Create(context.Background(), &types.Pledge{
		ContactID:         donor.ID,
		PledgeDate:        time.Now(),
		OriginalAmountUSD: 100,
		CategoryID:        &category.ID,
	}); err != nil {
		t.Fatalf("pledge with category: %v", err)
	}

	ghost := uuid.New()
	_, err = e.pledges.Create(context.Background(), &types.Pledge{
		ContactID:         donor.ID,
		PledgeDate:        time.Now(),
		OriginalAmountUSD: 100,
		CategoryID:        &ghost,
	})
	if !errors.Is(err, crmerr.ErrNotFound) {
		t.Errorf("unknown category: expected ErrNotFound, got %v", err)
	}
}

func TestPledgeCreateStartsFullyUnpaid(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "donor")

	pledge, err := e.pledges.Create(context.Background(), &types.Pledge{
		ContactID:         contact.ID,
		PledgeDate:        time.Now(),
		OriginalAmountUSD: 1200,
	})
	if err != nil {
		t.Fatalf("create pledge: %v", err)
	}
	if pledge.BalanceUSD != 1200 {
		t.Errorf("balance = %v, want 1200", pledge.BalanceUSD)
	}

	_, err = e.pledges.Create(context.Background(), &types.Pledge{
		ContactID:         contact.ID,
		PledgeDate:        time.Now(),
		OriginalAmountUSD: -5,
	})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Errorf("negative amount: expected ErrInvalidArgument, got %v", err)
	}
}
