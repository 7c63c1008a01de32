package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

const reportCacheTTL = 5 * time.Minute

type CampaignSummaryReport struct {
	CampaignCode     string  `json:"campaign_code"`
	TotalPledgedUSD  float64 `json:"total_pledged_usd"`
	TotalPaidUSD     float64 `json:"total_paid_usd"`
	TotalDonatedUSD  float64 `json:"total_donated_usd"`
	TotalRaisedUSD   float64 `json:"total_raised_usd"`
	DonorCount       int64   `json:"donor_count"`
	GoalAmountUSD    float64 `json:"goal_amount_usd"`
	GoalProgressPct  float64 `json:"goal_progress_pct"`
}

type TopDonorRow struct {
	ContactID   uuid.UUID `json:"contact_id" gorm:"column:contact_id"`
	DisplayName string    `json:"display_name" gorm:"column:display_name"`
	TotalUSD    float64   `json:"total_usd" gorm:"column:total_usd"`
}

type ReportService interface {
	CampaignSummary(ctx context.Context, campaignCode string) (*CampaignSummaryReport, error)
	TopDonors(ctx context.Context, limit int) ([]TopDonorRow, error)
}

type reportService struct {
	db              *gorm.DB
	log             *logger.Logger
	rdb             *goredis.Client
	campaignService CampaignService
}

// NewReportService accepts a nil redis client; reports then always hit the
// database directly.
func NewReportService(db *gorm.DB, log *logger.Logger, rdb *goredis.Client, campaignService CampaignService) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{db: db, log: serviceLog, rdb: rdb, campaignService: campaignService}
}

func (s *reportService) CampaignSummary(ctx context.Context, campaignCode string) (*CampaignSummaryReport, error) {
	campaign, err := s.campaignService.GetByCode(ctx, campaignCode)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:campaign:" + campaign.Code
	var cached CampaignSummaryReport
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	report := &CampaignSummaryReport{
		CampaignCode:  campaign.Code,
		GoalAmountUSD: campaign.GoalAmountUSD,
	}

	type rollup struct {
		Pledged float64 `gorm:"column:pledged"`
		Paid    float64 `gorm:"column:paid"`
		Donors  int64   `gorm:"column:donors"`
	}
	var pledgeRollup rollup
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(pledge.original_amount_usd), 0) AS pledged,
		       COALESCE((SELECT SUM(payment.amount_usd)
		                   FROM payment
		                   JOIN pledge p2 ON p2.id = payment.pledge_id
		                  WHERE p2.campaign_code = ?), 0) AS paid,
		       COUNT(DISTINCT pledge.contact_id) AS donors
		  FROM pledge
		 WHERE pledge.campaign_code = ?`,
		campaign.Code, campaign.Code,
	).Scan(&pledgeRollup).Error; err != nil {
		return nil, fmt.Errorf("campaign pledge rollup: %w", crmerr.ErrQueryFailed)
	}

	type donationRollup struct {
		Donated float64 `gorm:"column:donated"`
		Donors  int64   `gorm:"column:donors"`
	}
	var dr donationRollup
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount_usd), 0) AS donated,
		       COUNT(DISTINCT contact_id) AS donors
		  FROM manual_donation
		 WHERE campaign_id = ?`,
		campaign.ID,
	).Scan(&dr).Error; err != nil {
		return nil, fmt.Errorf("campaign donation rollup: %w", crmerr.ErrQueryFailed)
	}

	report.TotalPledgedUSD = pledgeRollup.Pledged
	report.TotalPaidUSD = pledgeRollup.Paid
	report.TotalDonatedUSD = dr.Donated
	report.TotalRaisedUSD = pledgeRollup.Paid + dr.Donated
	// Donor counts from the two sources can overlap; this is an upper bound,
	// same as the report page always showed.
	report.DonorCount = pledgeRollup.Donors + dr.Donors
	if report.GoalAmountUSD > 0 {
		report.GoalProgressPct = report.TotalRaisedUSD / report.GoalAmountUSD * 100
	}

	s.cacheSet(ctx, cacheKey, report)
	return report, nil
}

func (s *reportService) TopDonors(ctx context.Context, limit int) ([]TopDonorRow, error) {
	if limit < 1 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("report:top_donors:%d", limit)
	var cached []TopDonorRow
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var rows []TopDonorRow
	if err := s.db.WithContext(ctx).Raw(`
		SELECT contact.id AS contact_id, contact.display_name, SUM(t.amount) AS total_usd
		  FROM (
		        SELECT pledge.contact_id AS cid, payment.amount_usd AS amount
		          FROM payment
		          JOIN pledge ON pledge.id = payment.pledge_id
		        UNION ALL
		        SELECT manual_donation.contact_id AS cid, manual_donation.amount_usd AS amount
		          FROM manual_donation
		       ) t
		  JOIN contact ON contact.id = t.cid
		 GROUP BY contact.id, contact.display_name
		 ORDER BY total_usd DESC
		 LIMIT ?`,
		limit,
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top donors rollup: %w", crmerr.ErrQueryFailed)
	}

	s.cacheSet(ctx, cacheKey, rows)
	return rows, nil
}

// Cache misses and redis failures both fall through to the database; a
// broken cache must never break reporting.
func (s *reportService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			s.log.Warn("Report cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("Report cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *reportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, reportCacheTTL).Err(); err != nil {
		s.log.Warn("Report cache write failed", "key", key, "error", err)
	}
}
