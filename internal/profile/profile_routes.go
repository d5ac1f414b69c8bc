package profile

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
	profiles := r.Group("/profile")
	profiles.Use(middleware.AuthMiddleware(jwtSecret))
	profiles.Use(middleware.ContextLogger(logger))
	profiles.Use(middleware.RateLimitByUser(1, 5))
	{
		profiles.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionReadOwn),
			h.Get,
		)
		profiles.PUT("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionWrite),
			h.Update,
		)
		profiles.GET("/preferences",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionReadOwn),
			h.Preferences,
		)
		profiles.PUT("/preferences",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionWrite),
			h.UpdatePreferences,
		)
	}
}
