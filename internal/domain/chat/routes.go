package chat

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

// RegisterRoutes mounts the REST chat endpoints. The WebSocket
// endpoint authenticates itself and is mounted on the public group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	chatGroup := protected.Group("/chat")
	{
		chatGroup.POST("/conversations", h.Open)
		chatGroup.GET("/conversations", h.List)
		chatGroup.GET("/conversations/:id/messages", h.Messages)
		chatGroup.POST("/conversations/:id/messages", h.Send)
		chatGroup.POST("/conversations/:id/read", h.MarkRead)
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/ws/chat", h.ServeWS)
}

func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	adminGroup := protected.Group("/admin/chat", middleware.AdminOnly())
	{
		adminGroup.GET("/conversations/:id", h.AdminConversation)
	}
}
