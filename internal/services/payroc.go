package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
)

const payrocProvider = "payroc"

// PayrocEvent is the subset of the gateway notification body we act on.
// Amounts arrive in cents.
type PayrocEvent struct {
	EventID     string `json:"event_id"`
	EventType   string `json:"event_type"`
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference"`
	PledgeID    string `json:"pledge_id"`
	OccurredAt  string `json:"occurred_at"`
}

type PayrocWebhookService interface {
	// HandleWebhook verifies the signature over the raw body, records the
	// event, and applies payment.processed notifications. Redelivered events
	// are acknowledged without side effects.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*types.WebhookEvent, error)
}

type payrocWebhookService struct {
	db             *gorm.DB
	log            *logger.Logger
	signingSecret  []byte
	eventRepo      repos.WebhookEventRepo
	paymentService PaymentService
}

func NewPayrocWebhookService(
	db *gorm.DB,
	log *logger.Logger,
	signingSecret string,
	eventRepo repos.WebhookEventRepo,
	paymentService PaymentService,
) PayrocWebhookService {
	serviceLog := log.With("service", "PayrocWebhookService")
	return &payrocWebhookService{
		db:             db,
		log:            serviceLog,
		signingSecret:  []byte(signingSecret),
		eventRepo:      eventRepo,
		paymentService: paymentService,
	}
}

func (s *payrocWebhookService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*types.WebhookEvent, error) {
	if !s.verifySignature(rawBody, signature) {
		return nil, fmt.Errorf("webhook signature mismatch: %w", crmerr.ErrUnauthorized)
	}

	var event PayrocEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("parsing webhook body: %w", crmerr.ErrInvalidArgument)
	}
	if event.EventID == "" || event.EventType == "" {
		return nil, fmt.Errorf("webhook body missing event_id or event_type: %w", crmerr.ErrInvalidArgument)
	}

	existing, err := s.eventRepo.GetByExternalIDs(ctx, nil, []string{event.EventID})
	if err != nil {
		return nil, fmt.Errorf("checking event dedupe: %w", err)
	}
	if len(existing) > 0 {
		s.log.Info("Duplicate webhook delivery", "external_id", event.EventID)
		return existing[0], nil
	}

	record := &types.WebhookEvent{
		ID:         uuid.New(),
		Provider:   payrocProvider,
		EventType:  event.EventType,
		ExternalID: event.EventID,
		Payload:    datatypes.JSON(rawBody),
	}
	if _, err := s.eventRepo.Create(ctx, nil, []*types.WebhookEvent{record}); err != nil {
		return nil, fmt.Errorf("recording webhook event: %w", err)
	}

	if event.EventType != "payment.processed" {
		s.log.Info("Webhook event stored without action", "event_type", event.EventType)
		return record, nil
	}

	if err := s.applyProcessedPayment(ctx, &event); err != nil {
		return nil, err
	}
	if err := s.eventRepo.MarkProcessed(ctx, nil, record.ID); err != nil {
		return nil, fmt.Errorf("marking event processed: %w", err)
	}
	return record, nil
}

func (s *payrocWebhookService) applyProcessedPayment(ctx context.Context, event *PayrocEvent) error {
	pledgeID, err := uuid.Parse(event.PledgeID)
	if err != nil {
		return fmt.Errorf("webhook pledge_id is not a uuid: %w", crmerr.ErrInvalidArgument)
	}
	if event.AmountCents <= 0 {
		return fmt.Errorf("webhook amount must be positive: %w", crmerr.ErrInvalidArgument)
	}

	paymentDate := time.Now().UTC()
	if event.OccurredAt != "" {
		if parsed, err := time.Parse(time.RFC3339, event.OccurredAt); err == nil {
			paymentDate = parsed
		}
	}

	payment := &types.Payment{
		PledgeID:        pledgeID,
		AmountUSD:       float64(event.AmountCents) / 100,
		PaymentDate:     paymentDate,
		PaymentMethod:   "payroc",
		ReferenceNumber: event.Reference,
	}
	if _, err := s.paymentService.Record(ctx, payment, nil); err != nil {
		return fmt.Errorf("recording gateway payment: %w", err)
	}
	return nil
}

// Signature is hex(HMAC-SHA256(secret, rawBody)). hmac.Equal keeps the
// comparison constant time.
func (s *payrocWebhookService) verifySignature(rawBody []byte, signature string) bool {
	if len(s.signingSecret) == 0 || signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.signingSecret)
	mac.Write(rawBody)
	return hmac.Equal(mac.Sum(nil), provided)
}
