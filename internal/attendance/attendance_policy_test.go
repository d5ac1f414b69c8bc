package attendance

import (
	"errors"
	"testing"

	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	"github.com/RNiyam/attendance-system/internal/face"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Evaluate(t *testing.T) {
	policy := Policy{MinConfidence: 0.55, MaxDistance: 0.45}

	tests := []struct {
		name    string
		result  face.Result
		wantErr error
	}{
		{
			name:    "mismatch wins over good scores",
			result:  face.Result{Match: false, Confidence: 0.9, Distance: 0.1},
			wantErr: attendanceerrors.ErrFaceMismatch,
		},
		{
			name:    "low confidence despite low distance",
			result:  face.Result{Match: true, Confidence: 0.50, Distance: 0.10},
			wantErr: attendanceerrors.ErrLowConfidence,
		},
		{
			name:    "high distance despite high confidence",
			result:  face.Result{Match: true, Confidence: 0.80, Distance: 0.50},
			wantErr: attendanceerrors.ErrDistanceTooHigh,
		},
		{
			name:    "distance at the ceiling is rejected",
			result:  face.Result{Match: true, Confidence: 0.80, Distance: 0.45},
			wantErr: attendanceerrors.ErrDistanceTooHigh,
		},
		{
			name:   "confidence at the floor is accepted",
			result: face.Result{Match: true, Confidence: 0.55, Distance: 0.30},
		},
		{
			name:   "accepted",
			result: face.Result{Match: true, Confidence: 0.80, Distance: 0.30},
		},
		{
			name:    "defaulted result is rejected",
			result:  face.Result{Match: true, Confidence: 0, Distance: 1},
			wantErr: attendanceerrors.ErrLowConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Evaluate(tt.result)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicy_EvaluateDetails(t *testing.T) {
	err := Policy{MinConfidence: 0.55, MaxDistance: 0.45}.Evaluate(face.Result{Match: true, Confidence: 0.8, Distance: 0.5})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details.(attendanceerrors.RejectionDetails)
	require.True(t, ok)
	assert.Equal(t, 0.8, details.Confidence)
	assert.Equal(t, 0.5, details.Distance)
	assert.Contains(t, details.Message, "0.5000")

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 401, httpErr.Status)
	assert.Equal(t, details, httpErr.Details)
}
