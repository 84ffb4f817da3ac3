package lead

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldops/internal/pkg/response"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListLeads handles GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	companyID := c.GetString("company_id")

	var status *Status
	if s := c.Query("status"); s != "" {
		st := Status(s)
		status = &st
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, total, err := h.service.ListLeads(c.Request.Context(), companyID, status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leads")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"leads": leads,
		"total": total,
	})
}

// GetLead handles GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	l, err := h.service.GetLead(c.Request.Context(), companyID, id)
	if err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch lead")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lead": l})
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), companyID, id, req.Status)
	if err != nil {
		switch err {
		case ErrLeadNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown lead status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update lead")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// GetStats handles GET /api/v1/leads/stats
func (h *Handler) GetStats(c *gin.Context) {
	companyID := c.GetString("company_id")

	stats, err := h.service.GetStats(c.Request.Context(), companyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
