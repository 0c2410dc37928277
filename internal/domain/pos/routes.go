package pos

import (
	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
)

func (h *Handler) RegisterVendorRoutes(protected *gin.RouterGroup) {
	vendorGroup := protected.Group("/vendor/pos", middleware.VendorOnly())
	{
		vendorGroup.POST("/transactions", h.CreateTransaction)
		vendorGroup.GET("/transactions", h.ListTransactions)
		vendorGroup.POST("/expenses", h.CreateExpense)
		vendorGroup.GET("/expenses", h.ListExpenses)
		vendorGroup.PUT("/expenses/:id", h.UpdateExpense)
		vendorGroup.DELETE("/expenses/:id", h.DeleteExpense)
		vendorGroup.GET("/summary", h.Summary)
	}
}
