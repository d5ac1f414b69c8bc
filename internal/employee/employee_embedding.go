package employee

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"

	"gorm.io/datatypes"
)

// ParseEmbedding decodes a persisted embedding. It accepts a JSON array of
// finite numbers, or such an array stored as a JSON string by older rows.
// Anything else is ErrInvalidEmbedding.
func ParseEmbedding(raw []byte) ([]float64, error) {
	return parseEmbedding(raw, true)
}

func parseEmbedding(raw []byte, allowString bool) ([]float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, invalidEmbedding(errors.New("embedding is absent"))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalidEmbedding(err)
	}

	if s, ok := v.(string); ok && allowString {
		return parseEmbedding([]byte(s), false)
	}

	items, ok := v.([]any)
	if !ok {
		return nil, invalidEmbedding(fmt.Errorf("embedding is %T, not an array", v))
	}
	if len(items) == 0 {
		return nil, invalidEmbedding(errors.New("embedding is empty"))
	}

	out := make([]float64, len(items))
	for i, item := range items {
		n, ok := item.(json.Number)
		if !ok {
			return nil, invalidEmbedding(fmt.Errorf("element %d is %T, not a number", i, item))
		}
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, invalidEmbedding(fmt.Errorf("element %d is not finite", i))
		}
		out[i] = f
	}
	return out, nil
}

func encodeEmbedding(v []float64) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func invalidEmbedding(err error) error {
	return apperror.WrapAs(err, employeeerrors.ErrInvalidEmbedding)
}
