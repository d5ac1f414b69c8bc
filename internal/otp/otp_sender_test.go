package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHTTPSender_Send(t *testing.T) {
	var got smsMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSender(SMSOptions{APIURL: srv.URL, APIKey: "k-1", SenderName: "ATTEND"}, zap.NewNop())

	err := sender.Send(context.Background(), "9876543210", "1234 is your code")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer k-1", auth)
	assert.Equal(t, "+919876543210", got.To)
	assert.Equal(t, "ATTEND", got.Sender)
}

func TestHTTPSender_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewSender(SMSOptions{APIURL: srv.URL}, zap.NewNop())

	err := sender.Send(context.Background(), "9876543210", "msg")
	assert.EqualError(t, err, "sms provider returned status 502")
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	sender := NewSender(SMSOptions{}, zap.NewNop())

	_, ok := sender.(*logSender)
	assert.True(t, ok)
	assert.NoError(t, sender.Send(context.Background(), "9876543210", "msg"))
}
