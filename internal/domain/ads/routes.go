package ads

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

// RegisterPublicRoutes exposes the tracking endpoints.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/ads/:id/impression", h.Impression)
	v1.POST("/ads/:id/click", h.Click)
}

func (h *Handler) RegisterVendorRoutes(protected *gin.RouterGroup) {
	vendorGroup := protected.Group("/vendor/ads", middleware.VendorOnly())
	{
		vendorGroup.GET("", h.MyAds)
		vendorGroup.POST("", h.Create)
		vendorGroup.GET("/:id/slots", h.GetTimeSlots)
		vendorGroup.PUT("/:id/slots", h.UpdateTimeSlots)
	}
}

func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	adminGroup := protected.Group("/admin/ads", middleware.AdminOnly())
	{
		adminGroup.GET("", h.ListByStatus)
		adminGroup.GET("/:id", h.Get)
		adminGroup.POST("/:id/approve", h.Approve)
		adminGroup.POST("/:id/reject", h.Reject)
		adminGroup.POST("/:id/activate", h.Activate)
		adminGroup.POST("/:id/expire", h.Expire)
		adminGroup.GET("/:id/slots", h.GetTimeSlots)
		adminGroup.PUT("/:id/slots", h.UpdateTimeSlots)
	}
}
