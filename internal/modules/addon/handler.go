package addon

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/add-on-services/:companyId", h.List)
	rg.GET("/add-on-services/:companyId/:addonId", h.Get)
}

// Get handles GET /api/v1/add-on-services/:companyId/:addonId
func (h *Handler) Get(c *gin.Context) {
	companyID := c.Param("companyId")
	addonID := c.Param("addonId")
	if companyID == "" || addonID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Company ID and add-on ID are required")
		return
	}

	a, err := h.service.Get(c.Request.Context(), companyID, addonID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Add-on service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch add-on service")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"addon": a})
}

// List handles GET /api/v1/add-on-services/:companyId?planId=
func (h *Handler) List(c *gin.Context) {
	companyID := c.Param("companyId")
	if companyID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Company ID is required")
		return
	}

	addons, err := h.service.ListForPlan(c.Request.Context(), companyID, c.Query("planId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch add-on services")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"addons": addons})
}
