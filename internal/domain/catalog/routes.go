package catalog

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

// RegisterPublicRoutes exposes search/detail without authentication.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/listings", h.Search)
	v1.GET("/listings/:id", h.Get)
}

// RegisterVendorRoutes exposes CRUD over the vendor's own listings.
func (h *Handler) RegisterVendorRoutes(protected *gin.RouterGroup) {
	vendorGroup := protected.Group("/vendor/listings", middleware.VendorOnly())
	{
		vendorGroup.GET("", h.MyListings)
		vendorGroup.POST("", h.Create)
		vendorGroup.PUT("/:id", h.Update)
		vendorGroup.DELETE("/:id", h.Delete)
	}
}

// RegisterAdminRoutes exposes the moderation queue.
func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	adminGroup := protected.Group("/admin/listings", middleware.AdminOnly())
	{
		adminGroup.GET("/pending", h.Pending)
		adminGroup.POST("/:id/approve", h.Approve)
		adminGroup.POST("/:id/reject", h.Reject)
	}
}
