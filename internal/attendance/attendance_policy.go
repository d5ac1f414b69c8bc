package attendance

import (
	"fmt"

	attendanceerrors "github.com/RNiyam/attendance-system/internal/attendance/errors"
	"github.com/RNiyam/attendance-system/internal/config"
	"github.com/RNiyam/attendance-system/internal/face"
)

// Policy is the acceptance gate applied to every verification result.
// A result passes only if match is true, confidence >= MinConfidence and
// distance < MaxDistance, checked in that order.
type Policy struct {
	MinConfidence float64
	MaxDistance   float64
}

func PolicyFromConfig(cfg config.Policy) Policy {
	return Policy{MinConfidence: cfg.MinConfidence, MaxDistance: cfg.MaxDistance}
}

// Evaluate returns nil on acceptance, otherwise the first failed gate as an
// AppError carrying RejectionDetails.
func (p Policy) Evaluate(r face.Result) error {
	if !r.Match {
		return attendanceerrors.ErrFaceMismatch.WithDetails(attendanceerrors.RejectionDetails{
			Confidence: r.Confidence,
			Distance:   r.Distance,
			Message:    fmt.Sprintf("Face distance (%.4f) exceeds threshold. This appears to be a different person.", r.Distance),
		})
	}

	if r.Confidence < p.MinConfidence {
		return attendanceerrors.ErrLowConfidence.WithDetails(attendanceerrors.RejectionDetails{
			Confidence: r.Confidence,
			Distance:   r.Distance,
			Message: fmt.Sprintf("Confidence (%.1f%%) is below required threshold (%.0f%%). This appears to be a different person.",
				r.Confidence*100, p.MinConfidence*100),
		})
	}

	if r.Distance >= p.MaxDistance {
		return attendanceerrors.ErrDistanceTooHigh.WithDetails(attendanceerrors.RejectionDetails{
			Confidence: r.Confidence,
			Distance:   r.Distance,
			Message: fmt.Sprintf("Face distance (%.4f) exceeds maximum allowed (%v). This appears to be a different person.",
				r.Distance, p.MaxDistance),
		})
	}

	return nil
}
