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

type PledgeHandler struct {
	log           *logger.Logger
	pledgeService services.PledgeService
}

func NewPledgeHandler(log *logger.Logger, pledgeService services.PledgeService) *PledgeHandler {
	return &PledgeHandler{
		log:           log.With("handler", "PledgeHandler"),
		pledgeService: pledgeService,
	}
}

func (h *PledgeHandler) Create(c *gin.Context) {
	var pledge domain.Pledge
	if err := c.ShouldBindJSON(&pledge); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.pledgeService.Create(c.Request.Context(), &pledge)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"pledge": created})
}

func (h *PledgeHandler) Get(c *gin.Context) {
	pledgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pledge, err := h.pledgeService.Get(c.Request.Context(), pledgeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pledge": pledge})
}

func (h *PledgeHandler) ListByContact(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pledges, err := h.pledgeService.ListByContact(c.Request.Context(), contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pledges": pledges})
}

func (h *PledgeHandler) CreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.pledgeService.CreateCategory(c.Request.Context(), &category)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"category": created})
}

func (h *PledgeHandler) ListCategories(c *gin.Context) {
	categories, err := h.pledgeService.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}

func (h *PledgeHandler) Delete(c *gin.Context) {
	pledgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.pledgeService.Delete(c.Request.Context(), pledgeID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PledgeHandler) Update(c *gin.Context) {
	pledgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var pledge domain.Pledge
	if err := c.ShouldBindJSON(&pledge); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pledge.ID = pledgeID
	updated, err := h.pledgeService.Update(c.Request.Context(), &pledge)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pledge": updated})
}
