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

type SolicitorHandler struct {
	log              *logger.Logger
	solicitorService services.SolicitorService
	bonusService     services.BonusService
}

func NewSolicitorHandler(log *logger.Logger, solicitorService services.SolicitorService, bonusService services.BonusService) *SolicitorHandler {
	return &SolicitorHandler{
		log:              log.With("handler", "SolicitorHandler"),
		solicitorService: solicitorService,
		bonusService:     bonusService,
	}
}

type attachSolicitorRequest struct {
	ContactID     uuid.UUID `json:"contact_id" binding:"required"`
	SolicitorCode string    `json:"solicitor_code" binding:"required"`
}

func (h *SolicitorHandler) Attach(c *gin.Context) {
	var req attachSolicitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	solicitor, err := h.solicitorService.Attach(c.Request.Context(), req.ContactID, req.SolicitorCode)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"solicitor": solicitor})
}

func (h *SolicitorHandler) Detach(c *gin.Context) {
	solicitorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.solicitorService.Detach(c.Request.Context(), solicitorID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SolicitorHandler) Get(c *gin.Context) {
	solicitorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	solicitor, err := h.solicitorService.Get(c.Request.Context(), solicitorID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"solicitor": solicitor})
}

func (h *SolicitorHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	solicitors, err := h.solicitorService.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"solicitors": solicitors})
}

func (h *SolicitorHandler) CreateBonusRule(c *gin.Context) {
	solicitorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var rule domain.BonusRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	rule.SolicitorID = solicitorID
	created, err := h.bonusService.CreateRule(c.Request.Context(), &rule)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"bonus_rule": created})
}

func (h *SolicitorHandler) ListBonusRules(c *gin.Context) {
	solicitorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rules, err := h.bonusService.RulesForSolicitor(c.Request.Context(), solicitorID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bonus_rules": rules})
}

func (h *SolicitorHandler) ListBonusCalculations(c *gin.Context) {
	solicitorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	calcs, err := h.bonusService.CalculationsForSolicitor(c.Request.Context(), solicitorID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bonus_calculations": calcs})
}
