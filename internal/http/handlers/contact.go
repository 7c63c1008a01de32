package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/http/response"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

type ContactHandler struct {
	log            *logger.Logger
	contactService services.ContactService
	mergeService   services.ContactMergeService
	historyService services.FinancialHistoryService
}

func NewContactHandler(
	log *logger.Logger,
	contactService services.ContactService,
	mergeService services.ContactMergeService,
	historyService services.FinancialHistoryService,
) *ContactHandler {
	return &ContactHandler{
		log:            log.With("handler", "ContactHandler"),
		contactService: contactService,
		mergeService:   mergeService,
		historyService: historyService,
	}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var contact domain.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.contactService.Create(c.Request.Context(), &contact)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contact": created})
}

func (h *ContactHandler) Get(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	contact, err := h.contactService.Get(c.Request.Context(), contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contact": contact})
}

func (h *ContactHandler) Update(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var contact domain.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	contact.ID = contactID
	updated, err := h.contactService.Update(c.Request.Context(), &contact)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contact": updated})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), contactID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContactHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 25)
	result, err := h.contactService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		h.log.Error("Contact list failed", "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *ContactHandler) Merge(c *gin.Context) {
	var input services.MergeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	summary, err := h.mergeService.Merge(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Contact merge failed", "target_contact_id", input.TargetContactID, "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (h *ContactHandler) FinancialHistory(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "limit", 25)
	history, err := h.historyService.GetHistory(c.Request.Context(), contactID, page, pageSize)
	if err != nil {
		h.log.Error("Financial history failed", "contact_id", contactID, "error", err)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, history)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
