package booking

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

// RegisterRoutes registers all booking routes under the protected
// group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.Mine)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/cancel", h.Cancel)

		// vendor actions
		bookings.POST("/:id/confirm", middleware.VendorOnly(), h.Confirm)
		bookings.POST("/:id/payment", middleware.VendorOnly(), h.RecordPayment)
	}
}
