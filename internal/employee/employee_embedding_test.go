package employee

import (
	"testing"

	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseEmbedding(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []float64
		wantErr bool
	}{
		{name: "array", raw: `[0.1, -2, 3e-2]`, want: []float64{0.1, -2, 0.03}},
		{name: "array stored as string", raw: `"[1,2]"`, want: []float64{1, 2}},
		{name: "empty input", raw: ``, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "empty array", raw: `[]`, wantErr: true},
		{name: "object", raw: `{"a":1}`, wantErr: true},
		{name: "string element", raw: `[1,"2"]`, wantErr: true},
		{name: "null element", raw: `[1,null]`, wantErr: true},
		{name: "doubly encoded string", raw: `"\"[1]\""`, wantErr: true},
		{name: "malformed", raw: `[1,`, wantErr: true},
		{name: "overflow", raw: `[1e400]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEmbedding([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmbedding)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestEncodeEmbedding_RoundTrip(t *testing.T) {
	raw, err := encodeEmbedding([]float64{0.25, -1})
	assert.NoError(t, err)

	got, err := ParseEmbedding(raw)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.25, -1}, got)
}
