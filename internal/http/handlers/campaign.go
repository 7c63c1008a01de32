package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type CampaignHandler struct {
	log             *logger.Logger
	campaignService services.CampaignService
}

func NewCampaignHandler(log *logger.Logger, campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		log:             log.With("handler", "CampaignHandler"),
		campaignService: campaignService,
	}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var campaign domain.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.campaignService.Create(c.Request.Context(), &campaign)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"campaign": created})
}

func (h *CampaignHandler) GetByCode(c *gin.Context) {
	campaign, err := h.campaignService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaign": campaign})
}

func (h *CampaignHandler) Update(c *gin.Context) {
	existing, err := h.campaignService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var campaign domain.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	campaign.ID = existing.ID
	campaign.Code = existing.Code
	updated, err := h.campaignService.Update(c.Request.Context(), &campaign)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaign": updated})
}

func (h *CampaignHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	campaigns, err := h.campaignService.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaigns": campaigns})
}
