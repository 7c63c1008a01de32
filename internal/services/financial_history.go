package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

const (
	HistoryTypePledge   = "pledge"
	HistoryTypePayment  = "payment"
	HistoryTypeDonation = "donation"
)

// HistoryRecord is the normalized projection shared by all three record
// kinds. Amount fields are pointers so kinds that don't carry them stay
// absent in JSON rather than reading as zero dollars.
type HistoryRecord struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	Campaign        string    `json:"campaign,omitempty"`
	Category        string    `json:"category,omitempty"`
	Relationship    string    `json:"relationship,omitempty"`
	Description     string    `json:"description,omitempty"`
	PledgeAmount    *float64  `json:"pledge_amount,omitempty"`
	PaymentAmount   *float64  `json:"payment_amount,omitempty"`
	Balance         *float64  `json:"balance,omitempty"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Solicitor       string    `json:"solicitor,omitempty"`
	Currency        string    `json:"currency"`
	Notes           string    `json:"notes,omitempty"`
}

type HistoryPagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type HistorySummary struct {
	TotalPledged   float64 `json:"total_pledged"`
	TotalPaid      float64 `json:"total_paid"`
	TotalBalance   float64 `json:"total_balance"`
	TotalDonations float64 `json:"total_donations"`
}

type FinancialHistoryPage struct {
	Records    []HistoryRecord   `json:"records"`
	Pagination HistoryPagination `json:"pagination"`
	Summary    HistorySummary    `json:"summary"`
}

type FinancialHistoryService interface {
	GetHistory(ctx context.Context, contactID uuid.UUID, page, pageSize int) (*FinancialHistoryPage, error)
}

type financialHistoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	pledgeRepo   repos.PledgeRepo
	paymentRepo  repos.PaymentRepo
	donationRepo repos.ManualDonationRepo
}

func NewFinancialHistoryService(
	db *gorm.DB,
	log *logger.Logger,
	pledgeRepo repos.PledgeRepo,
	paymentRepo repos.PaymentRepo,
	donationRepo repos.ManualDonationRepo,
) FinancialHistoryService {
	serviceLog := log.With("service", "FinancialHistoryService")
	return &financialHistoryService{
		db:           db,
		log:          serviceLog,
		pledgeRepo:   pledgeRepo,
		paymentRepo:  paymentRepo,
		donationRepo: donationRepo,
	}
}

// GetHistory merges a contact's pledges, payments and manual donations into
// one date-descending timeline. The three reads are independent queries with
// no shared snapshot; under concurrent writes they may observe slightly
// different points in time. Summary totals cover the full unpaginated set;
// the page slice is cut afterwards, so one page can mix record kinds.
func (s *financialHistoryService) GetHistory(ctx context.Context, contactID uuid.UUID, page, pageSize int) (*FinancialHistoryPage, error) {
	if contactID == uuid.Nil {
		return nil, fmt.Errorf("contact id is required: %w", crmerr.ErrInvalidArgument)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	var (
		pledges   []repos.PledgeHistoryRow
		payments  []repos.PaymentHistoryRow
		donations []repos.DonationHistoryRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.pledgeRepo.HistoryByContactID(gctx, nil, contactID)
		if err != nil {
			return fmt.Errorf("pledge history: %w", err)
		}
		pledges = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.paymentRepo.HistoryByContactID(gctx, nil, contactID)
		if err != nil {
			return fmt.Errorf("payment history: %w", err)
		}
		payments = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.donationRepo.HistoryByContactID(gctx, nil, contactID)
		if err != nil {
			return fmt.Errorf("donation history: %w", err)
		}
		donations = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Financial history read failed", "contact_id", contactID, "error", err)
		return nil, fmt.Errorf("%v: %w", err, crmerr.ErrQueryFailed)
	}

	// Concatenation order (pledges, payments, donations) is the tie-break:
	// the sort below is stable, so records sharing a date keep this order.
	records := make([]HistoryRecord, 0, len(pledges)+len(payments)+len(donations))
	var summary HistorySummary

	for _, p := range pledges {
		pledged := p.OriginalAmountUSD
		balance := p.BalanceUSD
		summary.TotalPledged += pledged
		summary.TotalBalance += balance
		records = append(records, HistoryRecord{
			ID:           p.ID,
			Type:         HistoryTypePledge,
			Date:         p.PledgeDate,
			Campaign:     p.CampaignCode,
			Category:     p.CategoryName,
			Relationship: p.RelationshipType,
			Description:  p.Description,
			PledgeAmount: &pledged,
			Balance:      &balance,
			Currency:     "USD",
			Notes:        p.Notes,
		})
	}
	for _, p := range payments {
		paid := p.AmountUSD
		summary.TotalPaid += paid
		desc := ""
		if p.IsThirdParty {
			desc = fmt.Sprintf("Third-party payment by %s", p.PayerName)
		}
		records = append(records, HistoryRecord{
			ID:              p.ID,
			Type:            HistoryTypePayment,
			Date:            p.PaymentDate,
			Campaign:        p.CampaignCode,
			Description:     desc,
			PaymentAmount:   &paid,
			PaymentMethod:   p.PaymentMethod,
			ReferenceNumber: p.ReferenceNumber,
			Solicitor:       p.SolicitorName,
			Currency:        "USD",
		})
	}
	for _, d := range donations {
		amount := d.AmountUSD
		summary.TotalDonations += amount
		records = append(records, HistoryRecord{
			ID:              d.ID,
			Type:            HistoryTypeDonation,
			Date:            d.PaymentDate,
			Campaign:        d.CampaignName,
			PaymentAmount:   &amount,
			PaymentMethod:   d.PaymentMethod,
			ReferenceNumber: d.ReferenceNumber,
			Solicitor:       d.SolicitorName,
			Currency:        "USD",
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	total := int64(len(records))
	totalPages := (len(records) + pageSize - 1) / pageSize

	offset := (page - 1) * pageSize
	pageRecords := []HistoryRecord{}
	if offset < len(records) {
		end := offset + pageSize
		if end > len(records) {
			end = len(records)
		}
		pageRecords = records[offset:end]
	}

	return &FinancialHistoryPage{
		Records: pageRecords,
		Pagination: HistoryPagination{
			Page:       page,
			Limit:      pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Summary: summary,
	}, nil
}
