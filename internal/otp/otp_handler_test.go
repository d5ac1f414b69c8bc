package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	otperrors "github.com/RNiyam/attendance-system/internal/otp/errors"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeService struct {
	sendFn   func(ctx context.Context, mobile string) (SendResponse, error)
	verifyFn func(ctx context.Context, mobile, code string) (VerifyResponse, error)
}

func (f *fakeService) Send(ctx context.Context, mobile string) (SendResponse, error) {
	return f.sendFn(ctx, mobile)
}

func (f *fakeService) Verify(ctx context.Context, mobile, code string) (VerifyResponse, error) {
	return f.verifyFn(ctx, mobile, code)
}

func (f *fakeService) IsVerified(ctx context.Context, mobile string) (bool, error) {
	return false, nil
}

func doJSON(t *testing.T, handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestHandler_Send(t *testing.T) {
	expires := time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC)
	h := NewHandler(&fakeService{
		sendFn: func(ctx context.Context, mobile string) (SendResponse, error) {
			assert.Equal(t, "9876543210", mobile)
			return SendResponse{MobileNumber: mobile, ExpiresAt: expires}, nil
		},
	})

	w, env := doJSON(t, h.Send, `{"mobileNumber":" 9876543210 "}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env["ok"])
}

func TestHandler_Send_RateLimited(t *testing.T) {
	h := NewHandler(&fakeService{
		sendFn: func(ctx context.Context, mobile string) (SendResponse, error) {
			return SendResponse{}, otperrors.ErrTooManyRequests
		},
	})

	w, env := doJSON(t, h.Send, `{"mobileNumber":"9876543210"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env["error"].(map[string]any)["code"])
}

func TestHandler_Verify_Expired(t *testing.T) {
	h := NewHandler(&fakeService{
		verifyFn: func(ctx context.Context, mobile, code string) (VerifyResponse, error) {
			return VerifyResponse{}, otperrors.ErrExpired
		},
	})

	w, _ := doJSON(t, h.Verify, `{"mobileNumber":"9876543210","otp":"1234"}`)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestHandler_Verify_MissingOTP(t *testing.T) {
	h := NewHandler(&fakeService{})

	w, env := doJSON(t, h.Verify, `{"mobileNumber":"9876543210"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Otp is required", env["error"].(map[string]any)["message"])
}
