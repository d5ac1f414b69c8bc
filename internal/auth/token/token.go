package token

import (
	"errors"
	"fmt"
	"time"

	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Claims struct {
	UserID string
	Role   string
	Type   string
}

func Generate(secret, userID, role, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"typ":     tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies an HS256 token and returns its claims. Expired tokens
// yield autherrors.ErrTokenExpired.
func Parse(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, autherrors.ErrTokenExpired
		}
		return Claims{}, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, autherrors.ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, autherrors.ErrInvalidToken
	}

	userID, _ := mc["user_id"].(string)
	if userID == "" {
		return Claims{}, autherrors.ErrInvalidToken
	}
	role, _ := mc["role"].(string)
	typ, _ := mc["typ"].(string)

	return Claims{UserID: userID, Role: role, Type: typ}, nil
}
