package otp

import (
	"github.com/RNiyam/attendance-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	otp := r.Group("/otp")
	{
		otp.POST("/send", middleware.RateLimitByIP(0.2, 3), handler.Send)
		otp.POST("/verify", middleware.RateLimitByIP(1, 5), handler.Verify)
	}
}
