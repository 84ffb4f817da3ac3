package discount

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/pkg/response"
)

// Handler handles discount HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates discount handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Available handles GET /api/v1/companies/:companyId/discounts/available
// Query params: planId (optional), userIsManager (bool).
func (h *Handler) Available(c *gin.Context) {
	companyID := c.Param("companyId")
	if companyID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Company ID is required")
		return
	}

	planID := c.Query("planId")
	isManager := c.Query("userIsManager") == "true"

	discounts, err := h.service.Available(c.Request.Context(), companyID, planID, isManager)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch discounts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"discounts": discounts})
}

// Get handles GET /api/v1/companies/:companyId/discounts/:discountId
func (h *Handler) Get(c *gin.Context) {
	companyID := c.Param("companyId")
	discountID := c.Param("discountId")
	if companyID == "" || discountID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Company ID and Discount ID are required")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), companyID, discountID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Discount not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch discount")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"discount": d})
}
