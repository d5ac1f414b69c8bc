package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RNiyam/attendance-system/internal/attendance"
	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	checkInFn  func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error)
	clockOutFn func(ctx context.Context, userID string, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error)
	historyFn  func(ctx context.Context, q attendance.HistoryQuery) ([]attendance.EventResponse, error)
	statsFn    func(ctx context.Context) (attendance.StatsResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	return f.checkInFn(ctx, req)
}
func (f *fakeService) ClockOut(ctx context.Context, userID string, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	return f.clockOutFn(ctx, userID, req)
}
func (f *fakeService) History(ctx context.Context, q attendance.HistoryQuery) ([]attendance.EventResponse, error) {
	return f.historyFn(ctx, q)
}
func (f *fakeService) Stats(ctx context.Context) (attendance.StatsResponse, error) {
	return f.statsFn(ctx)
}

type errorBody struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func postJSON(h gin.HandlerFunc, body string, setup func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if setup != nil {
		setup(c)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestHandler_CheckIn(t *testing.T) {
	body := `{"empCode":"EMP001","image":"data:image/jpeg;base64,AAAA"}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
				assert.Equal(t, "EMP001", req.EmpCode)
				return attendance.CheckInResponse{Success: true, Status: attendance.StatusIn, Message: "Attendance marked as IN"}, nil
			},
		}

		w := postJSON(attendance.NewHandler(svc).CheckIn, body, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"IN"`)
	})

	t.Run("missing empCode", func(t *testing.T) {
		w := postJSON(attendance.NewHandler(&fakeService{}).CheckIn, `{"image":"data:image/jpeg;base64,AAAA"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("rejection exposes confidence and distance", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
				return attendance.CheckInResponse{}, attendanceerrors.ErrLowConfidence.WithDetails(attendanceerrors.RejectionDetails{
					Confidence: 0.5,
					Distance:   0.1,
					Message:    "Confidence (50.0%) is below required threshold (55%).",
				})
			},
		}

		w := postJSON(attendance.NewHandler(svc).CheckIn, body, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Ok)
		assert.Equal(t, "LOW_CONFIDENCE", resp.Error.Code)
		assert.Equal(t, 0.5, resp.Error.Details["confidence"])
		assert.Equal(t, 0.1, resp.Error.Details["distance"])
		assert.NotEmpty(t, resp.Error.Details["message"])
	})

	t.Run("duplicate employee code is a server error", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
				return attendance.CheckInResponse{}, employeeerrors.ErrIntegrityViolation
			},
		}

		w := postJSON(attendance.NewHandler(svc).CheckIn, body, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTEGRITY_VIOLATION")
	})
}

func TestHandler_ClockOut(t *testing.T) {
	svc := &fakeService{
		clockOutFn: func(ctx context.Context, userID string, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
			if userID != "user-1" {
				t.Errorf("unexpected user id %q", userID)
			}
			return attendance.ClockOutResponse{}, attendanceerrors.ErrNotClockedIn
		},
	}

	w := postJSON(attendance.NewHandler(svc).ClockOut, `{"empCode":"EMP001","image":"data:image/jpeg;base64,AAAA"}`, func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not currently clocked in")
}

func TestHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantLimit int
		wantCode  string
	}{
		{"/attendance?limit=20&empCode=EMP001", 20, "EMP001"},
		{"/attendance?limit=abc", 0, ""},
		{"/attendance", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &fakeService{
				historyFn: func(ctx context.Context, q attendance.HistoryQuery) ([]attendance.EventResponse, error) {
					assert.Equal(t, tt.wantLimit, q.Limit)
					assert.Equal(t, tt.wantCode, q.EmpCode)
					return []attendance.EventResponse{{ID: "1", Status: attendance.StatusIn}}, nil
				},
			}
			r := gin.New()
			r.GET("/attendance", attendance.NewHandler(svc).History)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	svc := &fakeService{
		statsFn: func(ctx context.Context) (attendance.StatsResponse, error) {
			return attendance.StatsResponse{TotalEmployees: 3, TotalRecords: 5}, nil
		},
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/attendance/stats", attendance.NewHandler(svc).Stats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_employees":3`)
}
