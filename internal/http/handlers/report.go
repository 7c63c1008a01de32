package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:           log.With("handler", "ReportHandler"),
		reportService: reportService,
	}
}

func (h *ReportHandler) CampaignSummary(c *gin.Context) {
	report, err := h.reportService.CampaignSummary(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.log.Error("Campaign summary failed", "code", c.Param("code"), "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func (h *ReportHandler) TopDonors(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	donors, err := h.reportService.TopDonors(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Top donors failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"donors": donors})
}
