package quote

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/domain"
	"fieldops/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     Broadcaster
}

func NewHandler(service *Service, hub Broadcaster) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/:id", h.GetQuote)
	rg.PUT("/quotes/:id", h.UpdateQuote)
	rg.DELETE("/quote-line-items/:id", h.DeleteLineItem)
	rg.GET("/leads/:id/quote", h.GetLeadQuote)
}

func (h *Handler) GetQuote(c *gin.Context) {
	q, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// GetLeadQuote returns the lead's quote, creating a draft if none exists.
func (h *Handler) GetLeadQuote(c *gin.Context) {
	q, err := h.service.GetOrCreateForLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

func (h *Handler) UpdateQuote(c *gin.Context) {
	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	q, err := h.service.UpdateQuote(c.Request.Context(), c.Param("id"), req, c.GetBool("is_manager"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.broadcast(q)
	response.Success(c, http.StatusOK, q)
}

func (h *Handler) DeleteLineItem(c *gin.Context) {
	q, err := h.service.DeleteLineItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.broadcast(q)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) broadcast(q *domain.Quote) {
	if h.hub != nil && q != nil {
		h.hub.PublishQuote(q.LeadID, q)
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid quote update")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
	case ErrLineItemNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Line item not found")
	case ErrPlanNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service plan not found")
	case ErrAddonNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Add-on service not found")
	case ErrSlotConflict:
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Another line already occupies this slot")
	case ErrAddonNotEligible:
		response.Error(c, http.StatusUnprocessableEntity, "NOT_ELIGIBLE", "Add-on is not eligible for the selected plan")
	case ErrDiscountNotEligible:
		response.Error(c, http.StatusUnprocessableEntity, "NOT_ELIGIBLE", "Discount is not applicable to this plan")
	case ErrCustomPriceForbidden:
		response.Error(c, http.StatusUnprocessableEntity, "CUSTOM_PRICE_FORBIDDEN", "Plan does not allow custom pricing")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update quote")
	}
}
