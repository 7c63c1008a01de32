package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

const headerPayrocSignature = "X-Payroc-Signature"

type PayrocWebhookHandler struct {
	log            *logger.Logger
	webhookService services.PayrocWebhookService
}

func NewPayrocWebhookHandler(log *logger.Logger, webhookService services.PayrocWebhookService) *PayrocWebhookHandler {
	return &PayrocWebhookHandler{
		log:            log.With("handler", "PayrocWebhookHandler"),
		webhookService: webhookService,
	}
}

// Receive reads the raw body before any binding; the signature covers the
// exact bytes the gateway sent.
func (h *PayrocWebhookHandler) Receive(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	event, err := h.webhookService.HandleWebhook(c.Request.Context(), rawBody, c.GetHeader(headerPayrocSignature))
	if err != nil {
		h.log.Warn("Webhook rejected", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event_id": event.ID, "external_id": event.ExternalID})
}
