package adscheduling

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

// RegisterAdminRoutes mounts the scheduling endpoints. All scheduling
// mutations are admin actions.
func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	adminGroup := protected.Group("/admin/schedules", middleware.AdminOnly())
	{
		adminGroup.GET("/availability", h.CheckAvailability)
		adminGroup.POST("", h.Schedule)
		adminGroup.POST("/bulk", h.BulkSchedule)
		adminGroup.GET("/:id", h.Get)
		adminGroup.DELETE("/:id", h.Cancel)
		adminGroup.PUT("/:id/reschedule", h.Reschedule)
		adminGroup.POST("/:id/retry", h.Retry)
		adminGroup.GET("/:id/logs", h.Logs)
		adminGroup.GET("/ad/:adId", h.ListForAd)
		adminGroup.POST("/ad/:adId/pause", h.PauseAd)
		adminGroup.POST("/ad/:adId/resume", h.ResumeAd)
	}
}
