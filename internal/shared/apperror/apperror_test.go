package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status code and details", func(t *testing.T) {
		base := New(CodeFaceMismatch, "Face does not match", http.StatusUnauthorized)
		err := base.WithDetails(map[string]float64{"confidence": 0.9})

		got := ToHTTP(fmt.Errorf("check-in: %w", err))

		assert.Equal(t, http.StatusUnauthorized, got.Status)
		assert.Equal(t, CodeFaceMismatch, got.Code)
		assert.Equal(t, "Face does not match", got.Message)
		assert.Equal(t, map[string]float64{"confidence": 0.9}, got.Details)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		got := ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Nil(t, got.Details)
	})
}

func TestAppError_Is(t *testing.T) {
	sentinel := New(CodeNotFound, "Employee not found", http.StatusNotFound)

	assert.ErrorIs(t, sentinel.WithDetails("x"), sentinel)
	assert.ErrorIs(t, WrapAs(errors.New("record not found"), sentinel), sentinel)
	assert.NotErrorIs(t, New(CodeNotFound, "Break not found", http.StatusNotFound), sentinel)
	assert.Nil(t, sentinel.Details, "WithDetails must not mutate the sentinel")
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		EmpCode string `validate:"required"`
		Mobile  string `validate:"len=10"`
	}
	v := validator.New()

	err := MapValidationError(v.Struct(payload{Mobile: "0123456789"}))
	assert.Equal(t, "Emp Code is required", err.Error())

	err = MapValidationError(v.Struct(payload{EmpCode: "EMP001", Mobile: "1"}))
	assert.Equal(t, "Mobile is invalid", err.Error())

	err = MapValidationError(errors.New("EOF"))
	assert.Equal(t, "Invalid input", err.Error())
}

func TestFormatFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"emp_code", "Emp Code"},
		{"empCode", "Emp Code"},
		{"empID", "Emp Id"},
		{"OTP", "Otp"},
		{"HTTPServer", "Http Server"},
		{"mobileNumber", "Mobile Number"},
		{"address2Line", "Address2 Line"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFieldName(tt.in))
		})
	}
}
