package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type PaymentHandler struct {
	log            *logger.Logger
	paymentService services.PaymentService
}

func NewPaymentHandler(log *logger.Logger, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		log:            log.With("handler", "PaymentHandler"),
		paymentService: paymentService,
	}
}

type recordPaymentRequest struct {
	PledgeID            uuid.UUID                  `json:"pledge_id" binding:"required"`
	PayerContactID      *uuid.UUID                 `json:"payer_contact_id"`
	AmountUSD           float64                    `json:"amount_usd" binding:"required"`
	PaymentDate         *time.Time                 `json:"payment_date"`
	PaymentMethod       string                     `json:"payment_method"`
	ReferenceNumber     string                     `json:"reference_number"`
	SolicitorID         *uuid.UUID                 `json:"solicitor_id"`
	IsThirdPartyPayment bool                       `json:"is_third_party_payment"`
	Allocations         []services.AllocationInput `json:"allocations"`
}

func (h *PaymentHandler) Record(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	payment := &domain.Payment{
		PledgeID:            req.PledgeID,
		PayerContactID:      req.PayerContactID,
		AmountUSD:           req.AmountUSD,
		PaymentDate:         paymentDate,
		PaymentMethod:       req.PaymentMethod,
		ReferenceNumber:     req.ReferenceNumber,
		SolicitorID:         req.SolicitorID,
		IsThirdPartyPayment: req.IsThirdPartyPayment,
	}
	recorded, err := h.paymentService.Record(c.Request.Context(), payment, req.Allocations)
	if err != nil {
		h.log.Error("Payment record failed", "pledge_id", req.PledgeID, "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"payment": recorded})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	payment, err := h.paymentService.Get(c.Request.Context(), paymentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"payment": payment})
}

func (h *PaymentHandler) ListByPledge(c *gin.Context) {
	pledgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	payments, err := h.paymentService.ListByPledge(c.Request.Context(), pledgeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"payments": payments})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), paymentID); err != nil {
		h.log.Error("Payment delete failed", "payment_id", paymentID, "error", err)
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
