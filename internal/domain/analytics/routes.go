package analytics

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	adminGroup := protected.Group("/admin/analytics", middleware.AdminOnly())
	{
		adminGroup.GET("/dashboard", h.Dashboard)
		adminGroup.GET("/ads/top", h.TopAds)
	}
}

func (h *Handler) RegisterVendorRoutes(protected *gin.RouterGroup) {
	vendorGroup := protected.Group("/vendor/analytics", middleware.VendorOnly())
	{
		vendorGroup.GET("/revenue", h.MyRevenue)
	}
}
