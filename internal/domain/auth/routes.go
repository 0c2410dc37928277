package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register/user", h.RegisterUser)
		authGroup.POST("/register/vendor", h.RegisterVendor)
		authGroup.POST("/login/:role", h.Login)
		authGroup.POST("/otp/:role/request", h.RequestOTP)
		authGroup.POST("/otp/:role/verify", h.VerifyOTP)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/me", h.Me)
}
