package attendance

import (
	"github.com/RNiyam/attendance-system/internal/middleware"
	"github.com/RNiyam/attendance-system/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")

	// Kiosk endpoint: no caller identity, the face is the credential.
	attendance.POST("/check-in",
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(1, 5),
		middleware.Idempotency(rdb, logger),
		h.CheckIn,
	)

	authed := attendance.Group("")
	authed.Use(middleware.AuthMiddleware(jwtSecret))
	authed.Use(middleware.ContextLogger(logger))
	{
		authed.POST("/clock-out",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionClockOut),
			middleware.Idempotency(rdb, logger),
			h.ClockOut,
		)
		authed.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.History,
		)
		authed.GET("/stats",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.Stats,
		)
	}
}
