package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type DonationHandler struct {
	log             *logger.Logger
	donationService services.DonationService
}

func NewDonationHandler(log *logger.Logger, donationService services.DonationService) *DonationHandler {
	return &DonationHandler{
		log:             log.With("handler", "DonationHandler"),
		donationService: donationService,
	}
}

func (h *DonationHandler) Create(c *gin.Context) {
	var donation domain.ManualDonation
	if err := c.ShouldBindJSON(&donation); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.donationService.Create(c.Request.Context(), &donation)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"donation": created})
}

func (h *DonationHandler) Get(c *gin.Context) {
	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	donation, err := h.donationService.Get(c.Request.Context(), donationID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"donation": donation})
}

func (h *DonationHandler) ListByContact(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	donations, err := h.donationService.ListByContact(c.Request.Context(), contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"donations": donations})
}

func (h *DonationHandler) Delete(c *gin.Context) {
	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.donationService.Delete(c.Request.Context(), donationID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
