package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos/testutil"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

func TestMergeRepointsAndDeletesSources(t *testing.T) {
	e := newEnv(t)
	ctx := adminCtx()

	target := e.seedContact(t, "target")
	source := e.seedContact(t, "source")

	pledge := e.seedPledge(t, source.ID, 1000, time.Now())
	e.seedDonation(t, source.ID, 50, time.Now())
	if _, err := e.relRepo.Create(context.Background(), nil, []*types.Relationship{{
		ID:               uuid.New(),
		ContactID:        source.ID,
		RelatedContactID: target.ID,
		RelationshipType: "spouse",
	}}); err != nil {
		t.Fatalf("seed relationship: %v", err)
	}

	summary, err := e.merge.Merge(ctx, services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID},
		TargetContactID:  target.ID,
		DisplayName:      "Merged Name",
		Email:            "merged@test.local",
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if summary.RepointedRows["pledge"] != 1 {
		t.Errorf("expected 1 repointed pledge, got %d", summary.RepointedRows["pledge"])
	}
	if summary.RepointedRows["manual_donation"] != 1 {
		t.Errorf("expected 1 repointed donation, got %d", summary.RepointedRows["manual_donation"])
	}

	// Source gone, target updated.
	if remaining, _ := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(remaining) != 0 {
		t.Errorf("source contact still exists after merge")
	}
	got, err := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{target.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("target contact lookup: %v", err)
	}
	if got[0].DisplayName != "Merged Name" || got[0].Email != "merged@test.local" {
		t.Errorf("target display fields not updated: %q %q", got[0].DisplayName, got[0].Email)
	}

	// Pledge now belongs to the target.
	pledges, err := e.pledgeRepo.GetByIDs(context.Background(), nil, []uuid.UUID{pledge.ID})
	if err != nil || len(pledges) != 1 {
		t.Fatalf("pledge lookup: %v", err)
	}
	if pledges[0].ContactID != target.ID {
		t.Errorf("pledge contact_id = %s, want %s", pledges[0].ContactID, target.ID)
	}

	// No orphan references: nothing points at the source anymore.
	if rows, _ := e.pledgeRepo.GetByContactIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(rows) != 0 {
		t.Errorf("%d pledges still reference the source", len(rows))
	}
	if rows, _ := e.donationRepo.GetByContactIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(rows) != 0 {
		t.Errorf("%d donations still reference the source", len(rows))
	}
	if rows, _ := e.relRepo.GetByContactID(context.Background(), nil, source.ID); len(rows) != 0 {
		t.Errorf("%d relationship edges still reference the source", len(rows))
	}

	// Merge appended an audit row.
	entries, total, err := e.auditRepo.List(context.Background(), nil, types.AuditActionMergeContacts, 1, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Errorf("expected exactly one merge audit row, got %d", total)
	}
}

func TestMergeRejectsSelfMerge(t *testing.T) {
	e := newEnv(t)
	contact := e.seedContact(t, "self")

	_, err := e.merge.Merge(adminCtx(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{contact.ID},
		TargetContactID:  contact.ID,
	})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMergeCollapsesDuplicateSourceIDs(t *testing.T) {
	e := newEnv(t)
	target := e.seedContact(t, "target")
	source := e.seedContact(t, "source")
	e.seedPledge(t, source.ID, 200, time.Now())

	summary, err := e.merge.Merge(adminCtx(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID, source.ID},
		TargetContactID:  target.ID,
	})
	if err != nil {
		t.Fatalf("merge with repeated source id: %v", err)
	}
	if len(summary.MergedContactIDs) != 1 {
		t.Errorf("merged ids = %v, want the one distinct source", summary.MergedContactIDs)
	}
	if remaining, _ := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(remaining) != 0 {
		t.Errorf("source contact still exists after merge")
	}
}

func TestMergeRejectsMissingContacts(t *testing.T) {
	e := newEnv(t)
	target := e.seedContact(t, "target")

	_, err := e.merge.Merge(adminCtx(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{uuid.New()},
		TargetContactID:  target.ID,
	})
	if !errors.Is(err, crmerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMergeRejectsTwoSolicitorRoles(t *testing.T) {
	e := newEnv(t)
	target := e.seedContact(t, "target")
	source := e.seedContact(t, "source")
	e.seedSolicitor(t, target.ID, "SOL-A")
	e.seedSolicitor(t, source.ID, "SOL-B")

	_, err := e.merge.Merge(adminCtx(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID},
		TargetContactID:  target.ID,
	})
	if !errors.Is(err, crmerr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	// Nothing was deleted.
	if remaining, _ := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(remaining) != 1 {
		t.Errorf("source contact should survive a refused merge")
	}
}

func TestMergeRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	target := e.seedContact(t, "target")
	source := e.seedContact(t, "source")

	_, err := e.merge.Merge(userCtx(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID},
		TargetContactID:  target.ID,
	})
	if !errors.Is(err, crmerr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = e.merge.Merge(context.Background(), services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID},
		TargetContactID:  target.ID,
	})
	if !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without identity, got %v", err)
	}
}

type failAuditInsertKey struct{}

// TestMergeRollsBackOnAuditFailure forces the final audit insert to fail and
// asserts no partial writes survive: repointed rows revert and source
// contacts remain.
func TestMergeRollsBackOnAuditFailure(t *testing.T) {
	db := testutil.DB(t)

	const callbackName = "test:fail_audit_insert"
	err := db.Callback().Create().Before("gorm:create").Register(callbackName, func(d *gorm.DB) {
		if d.Statement.Table != "audit_log" {
			return
		}
		if v, ok := d.Statement.Context.Value(failAuditInsertKey{}).(bool); ok && v {
			d.AddError(errors.New("injected audit_log failure"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(callbackName)
	})

	e := newEnv(t)
	target := e.seedContact(t, "target")
	source := e.seedContact(t, "source")
	pledge := e.seedPledge(t, source.ID, 500, time.Now())

	ctx := context.WithValue(adminCtx(), failAuditInsertKey{}, true)
	_, mergeErr := e.merge.Merge(ctx, services.MergeInput{
		SourceContactIDs: []uuid.UUID{source.ID},
		TargetContactID:  target.ID,
		DisplayName:      "Should Not Stick",
	})
	if !errors.Is(mergeErr, crmerr.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", mergeErr)
	}

	// Everything rolled back.
	if remaining, _ := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{source.ID}); len(remaining) != 1 {
		t.Errorf("source contact should survive the rollback")
	}
	pledges, err := e.pledgeRepo.GetByIDs(context.Background(), nil, []uuid.UUID{pledge.ID})
	if err != nil || len(pledges) != 1 {
		t.Fatalf("pledge lookup: %v", err)
	}
	if pledges[0].ContactID != source.ID {
		t.Errorf("pledge repoint was not rolled back: contact_id = %s", pledges[0].ContactID)
	}
	got, _ := e.contactRepo.GetByIDs(context.Background(), nil, []uuid.UUID{target.ID})
	if len(got) == 1 && got[0].DisplayName == "Should Not Stick" {
		t.Errorf("target display update was not rolled back")
	}
}
