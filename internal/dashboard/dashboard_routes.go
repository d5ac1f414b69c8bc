package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(jwtSecret))
	dashboard.Use(middleware.ContextLogger(logger))
	dashboard.Use(middleware.RateLimitByUser(2, 10))
	{
		dashboard.GET("/employee",
			middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionReadOwn),
			h.Employee,
		)
		dashboard.GET("/admin",
			middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionAdmin),
			h.Admin,
		)
	}
}
