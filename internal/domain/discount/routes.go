package discount

import "github.com/gin-gonic/gin"

// RegisterRoutes registers discount routes on an authenticated group
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	g := r.Group("/companies/:companyId/discounts")
	{
		g.GET("/available", handler.Available)
		g.GET("/:discountId", handler.Get)
	}
}
