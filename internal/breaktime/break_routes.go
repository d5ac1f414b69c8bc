package breaktime

import (
	"github.com/RNiyam/attendance-system/internal/middleware"
	"github.com/RNiyam/attendance-system/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	logger *zap.Logger,
) {
	breaks := r.Group("/breaks")
	breaks.Use(middleware.AuthMiddleware(jwtSecret))
	breaks.Use(middleware.ContextLogger(logger))
	{
		breaks.POST("/start",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceBreak, rbac.ActionWrite),
			h.Start,
		)
		breaks.POST("/end",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceBreak, rbac.ActionWrite),
			h.End,
		)
		breaks.GET("/today",
			middleware.RBACAuthorize(rbacService, rbac.ResourceBreak, rbac.ActionRead),
			h.Today,
		)
	}
}
