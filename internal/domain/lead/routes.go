package lead

import "github.com/gin-gonic/gin"

// RegisterRoutes registers lead routes on an authenticated group. The
// lead's quote endpoint lives with the quote module, not here.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.ListLeads)
		leads.GET("/stats", handler.GetStats)
		leads.GET("/:id", handler.GetLead)
		leads.PATCH("/:id/status", handler.UpdateStatus)
	}
}
