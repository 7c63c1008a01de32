package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

// AllocationInput splits part of a recorded payment onto another pledge.
type AllocationInput struct {
	PledgeID  uuid.UUID `json:"pledge_id"`
	AmountUSD float64   `json:"amount_usd"`
}

type PaymentService interface {
	Record(ctx context.Context, payment *types.Payment, allocations []AllocationInput) (*types.Payment, error)
	Get(ctx context.Context, paymentID uuid.UUID) (*types.Payment, error)
	ListByPledge(ctx context.Context, pledgeID uuid.UUID) ([]*types.Payment, error)
	Delete(ctx context.Context, paymentID uuid.UUID) error
}

type paymentService struct {
	db             *gorm.DB
	log            *logger.Logger
	paymentRepo    repos.PaymentRepo
	pledgeRepo     repos.PledgeRepo
	allocationRepo repos.PaymentAllocationRepo
	bonusService   BonusService
	auditRepo      repos.AuditLogRepo
}

func NewPaymentService(
	db *gorm.DB,
	log *logger.Logger,
	paymentRepo repos.PaymentRepo,
	pledgeRepo repos.PledgeRepo,
	allocationRepo repos.PaymentAllocationRepo,
	bonusService BonusService,
	auditRepo repos.AuditLogRepo,
) PaymentService {
	serviceLog := log.With("service", "PaymentService")
	return &paymentService{
		db:             db,
		log:            serviceLog,
		paymentRepo:    paymentRepo,
		pledgeRepo:     pledgeRepo,
		allocationRepo: allocationRepo,
		bonusService:   bonusService,
		auditRepo:      auditRepo,
	}
}

// Record applies a payment against its pledge: insert the row, decrement the
// pledge balance, write any split allocations, and let the bonus service
// attach a calculation when a solicitor is credited. One transaction; a
// failure in any step leaves no trace of the payment.
func (s *paymentService) Record(ctx context.Context, payment *types.Payment, allocations []AllocationInput) (*types.Payment, error) {
	if payment.AmountUSD <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", crmerr.ErrInvalidArgument)
	}

	pledges, err := s.pledgeRepo.GetByIDs(ctx, nil, []uuid.UUID{payment.PledgeID})
	if err != nil {
		return nil, fmt.Errorf("resolving pledge: %w", err)
	}
	if len(pledges) == 0 {
		return nil, fmt.Errorf("pledge %s: %w", payment.PledgeID, crmerr.ErrNotFound)
	}

	var allocTotal float64
	for _, a := range allocations {
		if a.AmountUSD <= 0 {
			return nil, fmt.Errorf("allocation amounts must be positive: %w", crmerr.ErrInvalidArgument)
		}
		allocTotal += a.AmountUSD
	}
	if allocTotal > payment.AmountUSD {
		return nil, fmt.Errorf("allocations exceed the payment amount: %w", crmerr.ErrInvalidArgument)
	}

	payment.ID = uuid.New()

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.paymentRepo.Create(ctx, tx, []*types.Payment{payment}); err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}
		if err := s.pledgeRepo.AdjustBalance(ctx, tx, payment.PledgeID, -payment.AmountUSD); err != nil {
			return fmt.Errorf("adjusting pledge balance: %w", err)
		}

		if len(allocations) > 0 {
			rows := make([]*types.PaymentAllocation, 0, len(allocations))
			for _, a := range allocations {
				rows = append(rows, &types.PaymentAllocation{
					ID:             uuid.New(),
					PaymentID:      payment.ID,
					PledgeID:       a.PledgeID,
					PayerContactID: payment.PayerContactID,
					AmountUSD:      a.AmountUSD,
				})
			}
			if _, err := s.allocationRepo.Create(ctx, tx, rows); err != nil {
				return fmt.Errorf("creating allocations: %w", err)
			}
		}

		if payment.SolicitorID != nil {
			if err := s.bonusService.CalculateForPayment(ctx, tx, payment); err != nil {
				return fmt.Errorf("calculating solicitor bonus: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		s.log.Error("Payment rollback", "pledge_id", payment.PledgeID, "error", txErr)
		return nil, fmt.Errorf("%v: %w", txErr, crmerr.ErrTransactionFailed)
	}
	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, paymentID uuid.UUID) (*types.Payment, error) {
	found, err := s.paymentRepo.GetByIDs(ctx, nil, []uuid.UUID{paymentID})
	if err != nil {
		return nil, fmt.Errorf("fetching payment: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("payment %s: %w", paymentID, crmerr.ErrNotFound)
	}
	return found[0], nil
}

func (s *paymentService) ListByPledge(ctx context.Context, pledgeID uuid.UUID) ([]*types.Payment, error) {
	payments, err := s.paymentRepo.GetByPledgeIDs(ctx, nil, []uuid.UUID{pledgeID})
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}

// Delete reverses a recorded payment: restore the pledge balance, drop
// allocations and any bonus calculation, remove the row, audit the deletion.
func (s *paymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsAdmin() {
		return fmt.Errorf("payment deletion requires an admin role: %w", crmerr.ErrForbidden)
	}

	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return err
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.pledgeRepo.AdjustBalance(ctx, tx, payment.PledgeID, payment.AmountUSD); err != nil {
			return fmt.Errorf("restoring pledge balance: %w", err)
		}
		if err := s.allocationRepo.DeleteByPaymentIDs(ctx, tx, []uuid.UUID{paymentID}); err != nil {
			return fmt.Errorf("deleting allocations: %w", err)
		}
		if err := s.bonusService.DeleteForPayments(ctx, tx, []uuid.UUID{paymentID}); err != nil {
			return fmt.Errorf("deleting bonus calculation: %w", err)
		}
		if err := s.paymentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{paymentID}); err != nil {
			return fmt.Errorf("deleting payment: %w", err)
		}

		details, err := json.Marshal(map[string]interface{}{
			"payment_id": paymentID,
			"pledge_id":  payment.PledgeID,
			"amount_usd": payment.AmountUSD,
		})
		if err != nil {
			return fmt.Errorf("marshalling audit details: %w", err)
		}
		if _, err := s.auditRepo.Create(ctx, tx, []*types.AuditLog{{
			UserID:    rd.UserID,
			UserEmail: rd.UserEmail,
			Action:    types.AuditActionDeletePayment,
			Details:   datatypes.JSON(details),
		}}); err != nil {
			return fmt.Errorf("writing audit log: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("%v: %w", txErr, crmerr.ErrTransactionFailed)
	}
	return nil
}
