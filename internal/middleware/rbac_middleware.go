package middleware

import (
	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, apperror.ErrMissingAuthContext)
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			abortWith(c, err)
			return
		}

		if !allowed {
			abortWith(c, autherrors.ErrForbidden.WithDetails(gin.H{
				"required": resource + ":" + action,
			}))
			return
		}
		c.Next()
	}
}
