package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RNiyam/attendance-system/internal/face/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type healthEnvelope struct {
	Ok    bool           `json:"ok"`
	Data  healthStatus   `json:"data"`
	Error map[string]any `json:"error"`
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		faceErr    error
		wantStatus int
		wantOk     bool
	}{
		{name: "all dependencies up", wantStatus: http.StatusOK, wantOk: true},
		{name: "face service down is reported only", faceErr: errors.New("connection refused"), wantStatus: http.StatusOK, wantOk: true},
		{name: "database down", dbErr: errors.New("db down"), wantStatus: http.StatusServiceUnavailable},
		{name: "redis down", redisErr: errors.New("redis down"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			rdb, redisMock := redismock.NewClientMock()
			ctrl := gomock.NewController(t)
			faceClient := mock.NewMockClient(ctrl)

			if tt.dbErr != nil {
				dbMock.ExpectPing().WillReturnError(tt.dbErr)
			} else {
				dbMock.ExpectPing()
			}
			if tt.redisErr != nil {
				redisMock.ExpectPing().SetErr(tt.redisErr)
			} else {
				redisMock.ExpectPing().SetVal("PONG")
			}
			faceClient.EXPECT().Health(gomock.Any()).Return(tt.faceErr)

			r := gin.New()
			r.GET("/health", healthHandler(&Infra{DB: db, Redis: rdb}, faceClient))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body healthEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantOk, body.Ok)

			if tt.wantOk {
				assert.Equal(t, "ok", body.Data.Database)
				assert.Equal(t, "ok", body.Data.Redis)
				if tt.faceErr != nil {
					assert.Equal(t, "unavailable", body.Data.FaceService)
				} else {
					assert.Equal(t, "ok", body.Data.FaceService)
				}
			} else {
				assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error["code"])
			}
			assert.NoError(t, dbMock.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}
