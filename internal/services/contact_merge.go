package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

type MergeInput struct {
	SourceContactIDs []uuid.UUID `json:"source_contact_ids"`
	TargetContactID  uuid.UUID   `json:"target_contact_id"`
	DisplayName      string      `json:"display_name"`
	Email            string      `json:"email"`
}

// MergeSummary reports what a committed merge touched, keyed by table.
type MergeSummary struct {
	TargetContactID  uuid.UUID        `json:"target_contact_id"`
	MergedContactIDs []uuid.UUID      `json:"merged_contact_ids"`
	RepointedRows    map[string]int64 `json:"repointed_rows"`
}

type ContactMergeService interface {
	Merge(ctx context.Context, input MergeInput) (*MergeSummary, error)
}

type contactMergeService struct {
	db             *gorm.DB
	log            *logger.Logger
	contactRepo    repos.ContactRepo
	roleRepo       repos.RoleAssignmentRepo
	studentRepo    repos.StudentRoleRepo
	relRepo        repos.RelationshipRepo
	pledgeRepo     repos.PledgeRepo
	paymentRepo    repos.PaymentRepo
	donationRepo   repos.ManualDonationRepo
	solicitorRepo  repos.SolicitorRepo
	allocationRepo repos.PaymentAllocationRepo
	auditRepo      repos.AuditLogRepo
}

func NewContactMergeService(
	db *gorm.DB,
	log *logger.Logger,
	contactRepo repos.ContactRepo,
	roleRepo repos.RoleAssignmentRepo,
	studentRepo repos.StudentRoleRepo,
	relRepo repos.RelationshipRepo,
	pledgeRepo repos.PledgeRepo,
	paymentRepo repos.PaymentRepo,
	donationRepo repos.ManualDonationRepo,
	solicitorRepo repos.SolicitorRepo,
	allocationRepo repos.PaymentAllocationRepo,
	auditRepo repos.AuditLogRepo,
) ContactMergeService {
	serviceLog := log.With("service", "ContactMergeService")
	return &contactMergeService{
		db:             db,
		log:            serviceLog,
		contactRepo:    contactRepo,
		roleRepo:       roleRepo,
		studentRepo:    studentRepo,
		relRepo:        relRepo,
		pledgeRepo:     pledgeRepo,
		paymentRepo:    paymentRepo,
		donationRepo:   donationRepo,
		solicitorRepo:  solicitorRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
	}
}

// Merge consolidates the source contacts into the target inside one
// transaction: repoint every referencing table, delete the sources, append an
// audit row. Repoint-before-delete is load-bearing, not stylistic; the
// schema's foreign keys are restrictive, so deleting first would fail (or,
// under cascade rules, silently drop dependents).
//
// Bonus rules and calculations key on the solicitor row's own id, which a
// merge never rewrites, so they are deliberately absent from the repoint
// list. Concurrent merges over overlapping contacts are serialized by the
// database's row locks; a unique-index violation surfaces as ErrConflict.
func (s *contactMergeService) Merge(ctx context.Context, input MergeInput) (*MergeSummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("acting user not set in context: %w", crmerr.ErrUnauthorized)
	}
	if !rd.IsAdmin() {
		return nil, fmt.Errorf("contact merge requires an admin role: %w", crmerr.ErrForbidden)
	}

	if len(input.SourceContactIDs) == 0 {
		return nil, fmt.Errorf("source contact ids are required: %w", crmerr.ErrInvalidArgument)
	}
	// Repeated source ids are harmless to repoint but would make the
	// deleted-row count lie; collapse them before anything else.
	input.SourceContactIDs = dedupe(input.SourceContactIDs)
	for _, id := range input.SourceContactIDs {
		if id == input.TargetContactID {
			return nil, fmt.Errorf("target contact cannot be one of the sources: %w", crmerr.ErrInvalidArgument)
		}
	}

	allIDs := append(append([]uuid.UUID{}, input.SourceContactIDs...), input.TargetContactID)
	found, err := s.contactRepo.GetByIDs(ctx, nil, allIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving contacts: %w", crmerr.ErrQueryFailed)
	}
	if len(found) != len(dedupe(allIDs)) {
		return nil, fmt.Errorf("one or more contacts do not exist: %w", crmerr.ErrNotFound)
	}

	solicitorCount, err := s.solicitorRepo.CountByContactIDs(ctx, nil, allIDs)
	if err != nil {
		return nil, fmt.Errorf("counting solicitor roles: %w", crmerr.ErrQueryFailed)
	}
	// A caller-fixable input problem, not a storage conflict: pick different
	// contacts or detach a role first.
	if solicitorCount > 1 {
		return nil, fmt.Errorf("merge would attach %d solicitor roles to one contact: %w", solicitorCount, crmerr.ErrInvalidArgument)
	}

	summary := &MergeSummary{
		TargetContactID:  input.TargetContactID,
		MergedContactIDs: input.SourceContactIDs,
		RepointedRows:    map[string]int64{},
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.contactRepo.UpdateDisplayFields(ctx, tx, input.TargetContactID, input.DisplayName, input.Email); err != nil {
			return fmt.Errorf("updating target contact: %w", err)
		}

		repoints := []struct {
			table string
			fn    func() (int64, error)
		}{
			{"role_assignment", func() (int64, error) {
				return s.roleRepo.RepointContact(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"student_role", func() (int64, error) {
				return s.studentRepo.RepointContact(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"relationship", func() (int64, error) {
				return s.relRepo.Repoint(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"pledge", func() (int64, error) {
				return s.pledgeRepo.RepointContact(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"payment", func() (int64, error) {
				return s.paymentRepo.RepointPayer(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"manual_donation", func() (int64, error) {
				return s.donationRepo.RepointContact(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"solicitor", func() (int64, error) {
				return s.solicitorRepo.RepointContact(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
			{"payment_allocation", func() (int64, error) {
				return s.allocationRepo.RepointPayer(ctx, tx, input.SourceContactIDs, input.TargetContactID)
			}},
		}
		for _, rp := range repoints {
			n, err := rp.fn()
			if err != nil {
				return fmt.Errorf("repointing %s: %w", rp.table, err)
			}
			summary.RepointedRows[rp.table] = n
		}

		deleted, err := s.contactRepo.DeleteByIDs(ctx, tx, input.SourceContactIDs)
		if err != nil {
			return fmt.Errorf("deleting source contacts: %w", err)
		}
		if deleted != int64(len(input.SourceContactIDs)) {
			return fmt.Errorf("expected to delete %d source contacts, deleted %d", len(input.SourceContactIDs), deleted)
		}

		details, err := json.Marshal(map[string]interface{}{
			"source_contact_ids": input.SourceContactIDs,
			"target_contact_id":  input.TargetContactID,
			"display_name":       input.DisplayName,
			"email":              input.Email,
		})
		if err != nil {
			return fmt.Errorf("marshalling audit details: %w", err)
		}
		if _, err := s.auditRepo.Create(ctx, tx, []*types.AuditLog{{
			UserID:    rd.UserID,
			UserEmail: rd.UserEmail,
			Action:    types.AuditActionMergeContacts,
			Details:   datatypes.JSON(details),
		}}); err != nil {
			return fmt.Errorf("writing audit log: %w", err)
		}
		return nil
	})
	if txErr != nil {
		s.log.Error("Contact merge rolled back",
			"target_contact_id", input.TargetContactID,
			"source_count", len(input.SourceContactIDs),
			"error", txErr,
		)
		var pgErr *pgconn.PgError
		if errors.As(txErr, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("merge lost a race on unique rows: %w", crmerr.ErrConflict)
		}
		return nil, fmt.Errorf("%v: %w", txErr, crmerr.ErrTransactionFailed)
	}

	s.log.Info("Contacts merged",
		"target_contact_id", input.TargetContactID,
		"merged", len(input.SourceContactIDs),
	)
	return summary, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
