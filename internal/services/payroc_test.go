package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

const testSigningSecret = "test-signing-secret"

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSigningSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookService(t *testing.T, e *env) services.PayrocWebhookService {
	t.Helper()
	eventRepo := repos.NewWebhookEventRepo(e.tx, e.log)
	return services.NewPayrocWebhookService(e.tx, e.log, testSigningSecret, eventRepo, e.payments)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	e := newEnv(t)
	svc := newWebhookService(t, e)

	body := []byte(`{"event_id":"evt_1","event_type":"payment.processed"}`)
	_, err := svc.HandleWebhook(context.Background(), body, "deadbeef")
	if !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	_, err = svc.HandleWebhook(context.Background(), body, "")
	if !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty signature, got %v", err)
	}
}

func TestWebhookProcessesPaymentAndDedupes(t *testing.T) {
	e := newEnv(t)
	svc := newWebhookService(t, e)

	contact := e.seedContact(t, "donor")
	pledge := e.seedPledge(t, contact.ID, 1000, time.Now())

	body, _ := json.Marshal(services.PayrocEvent{
		EventID:     "evt_100",
		EventType:   "payment.processed",
		AmountCents: 25000,
		Reference:   "ref-100",
		PledgeID:    pledge.ID.String(),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	event, err := svc.HandleWebhook(context.Background(), body, signBody(body))
	if err != nil {
		t.Fatalf("handle webhook: %v", err)
	}
	if event.ProcessedAt == nil {
		// MarkProcessed writes through the repo; re-read to be sure.
		eventRepo := repos.NewWebhookEventRepo(e.tx, e.log)
		stored, err := eventRepo.GetByExternalIDs(context.Background(), nil, []string{"evt_100"})
		if err != nil || len(stored) != 1 {
			t.Fatalf("stored event lookup: %v", err)
		}
		if stored[0].ProcessedAt == nil {
			t.Errorf("event not marked processed")
		}
	}

	got, err := e.pledges.Get(context.Background(), pledge.ID)
	if err != nil {
		t.Fatalf("pledge lookup: %v", err)
	}
	if got.BalanceUSD != 750 {
		t.Errorf("balance = %v, want 750 after $250 gateway payment", got.BalanceUSD)
	}

	// Redelivery acknowledges without a second payment.
	if _, err := svc.HandleWebhook(context.Background(), body, signBody(body)); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	got, _ = e.pledges.Get(context.Background(), pledge.ID)
	if got.BalanceUSD != 750 {
		t.Errorf("redelivery changed balance to %v", got.BalanceUSD)
	}
}

func TestWebhookStoresUnhandledEventTypes(t *testing.T) {
	e := newEnv(t)
	svc := newWebhookService(t, e)

	body := []byte(`{"event_id":"evt_200","event_type":"payment.refund_requested"}`)
	event, err := svc.HandleWebhook(context.Background(), body, signBody(body))
	if err != nil {
		t.Fatalf("handle webhook: %v", err)
	}
	if event.ExternalID != "evt_200" {
		t.Errorf("external id = %s, want evt_200", event.ExternalID)
	}
	if event.ProcessedAt != nil {
		t.Errorf("unhandled event type should not be marked processed")
	}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	e := newEnv(t)
	svc := newWebhookService(t, e)

	for i, body := range [][]byte{
		[]byte(`not json`),
		[]byte(`{"event_type":"payment.processed"}`),
	} {
		_, err := svc.HandleWebhook(context.Background(), body, signBody(body))
		if !errors.Is(err, crmerr.ErrInvalidArgument) {
			t.Errorf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestWebhookSignatureIsOverExactBytes(t *testing.T) {
	e := newEnv(t)
	svc := newWebhookService(t, e)

	body := []byte(`{"event_id":"evt_300","event_type":"noop"}`)
	tampered := append(append([]byte{}, body...), ' ')
	_, err := svc.HandleWebhook(context.Background(), tampered, signBody(body))
	if !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("tampered body accepted: %v", err)
	}
}
