package middleware

import (
	"strings"

	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"
	"github.com/RNiyam/attendance-system/internal/auth/token"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts an access token from the Authorization header or the
// access_token cookie and sets user_id and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrMissingToken)
			return
		}

		claims, err := token.Parse(tokenString, secret)
		if err != nil {
			abortWith(c, err)
			return
		}

		if claims.Type == token.TypeRefresh {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
