package app

import (
	"context"
	"net/http"
	"time"

	"github.com/RNiyam/attendance-system/internal/face"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"
	"github.com/RNiyam/attendance-system/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type healthStatus struct {
	Database    string `json:"database"`
	Redis       string `json:"redis"`
	FaceService string `json:"face_service"`
}

// healthHandler reports 503 when the database or Redis is unreachable. The
// face service is reported but does not fail the check.
func healthHandler(conns *Infra, faceClient face.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := healthStatus{Database: "ok", Redis: "ok", FaceService: "ok"}
		healthy := true

		if err := conns.DB.PingContext(ctx); err != nil {
			status.Database = err.Error()
			healthy = false
		}
		if err := conns.Redis.Ping(ctx).Err(); err != nil {
			status.Redis = err.Error()
			healthy = false
		}
		if err := faceClient.Health(ctx); err != nil {
			status.FaceService = "unavailable"
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, status, nil)
	}
}
