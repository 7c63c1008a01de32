package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type AuditHandler struct {
	log          *logger.Logger
	auditService services.AuditService
}

func NewAuditHandler(log *logger.Logger, auditService services.AuditService) *AuditHandler {
	return &AuditHandler{
		log:          log.With("handler", "AuditHandler"),
		auditService: auditService,
	}
}

func (h *AuditHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 50)
	entries, total, err := h.auditService.List(c.Request.Context(), c.Query("action"), page, pageSize)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}
