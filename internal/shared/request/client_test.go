package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		userAgent string
		want      ClientType
	}{
		{"explicit mobile", "Mobile", "Mozilla/5.0", ClientMobile},
		{"explicit kiosk", "kiosk", "", ClientKiosk},
		{"okhttp agent", "", "okhttp/4.12.0", ClientMobile},
		{"browser", "", "Mozilla/5.0 (X11; Linux x86_64)", ClientWeb},
		{"unknown header falls back to agent", "tv", "Dart/3.3", ClientMobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveClientType(tt.header, tt.userAgent))
		})
	}
	assert.True(t, IsWebClient(ClientWeb))
	assert.False(t, IsWebClient(ClientKiosk))
}
