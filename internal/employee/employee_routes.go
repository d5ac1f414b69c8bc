package employee

import (
	"github.com/RNiyam/attendance-system/internal/middleware"
	"github.com/RNiyam/attendance-system/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(jwtSecret))
	employees.Use(middleware.ContextLogger(logger))
	{
		// Registration calls the face service, so it is throttled hard.
		employees.POST("/register",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate),
			handler.Register,
		)

		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetAll,
		)

		employees.GET("/:code",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetByCode,
		)

		employees.PUT("/:code/face",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.ReplaceFace,
		)
	}

	onboarding := r.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware(jwtSecret))
	onboarding.Use(middleware.ContextLogger(logger))
	{
		onboarding.POST("/complete",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOnboarding, rbac.ActionWrite),
			handler.Onboard,
		)
		onboarding.GET("/status",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOnboarding, rbac.ActionRead),
			handler.OnboardingStatus,
		)
	}
}
