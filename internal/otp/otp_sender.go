package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, mobile, message string) error
}

type SMSOptions struct {
	APIURL     string
	APIKey     string
	SenderName string
	// CountryCode is prefixed to the 10-digit number.
	CountryCode string
	Timeout     time.Duration
}

type httpSender struct {
	opts   SMSOptions
	http   *http.Client
	logger *zap.Logger
}

// NewSender returns an SMS provider client, or a sender that only logs when
// no provider URL is configured.
func NewSender(opts SMSOptions, logger ...*zap.Logger) Sender {
	l := zap.L().Named("otp.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("otp.sender")
	}

	if opts.APIURL == "" {
		return &logSender{logger: l}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CountryCode == "" {
		opts.CountryCode = "+91"
	}

	return &httpSender{
		opts:   opts,
		http:   &http.Client{Timeout: opts.Timeout},
		logger: l,
	}
}

type smsMessage struct {
	To      string `json:"to"`
	Sender  string `json:"sender,omitempty"`
	Message string `json:"message"`
}

func (s *httpSender) Send(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(smsMessage{
		To:      s.opts.CountryCode + mobile,
		Sender:  s.opts.SenderName,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.APIKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	s.logger.Debug("sms sent", zap.String("mobile", maskMobile(mobile)))
	return nil
}

type logSender struct {
	logger *zap.Logger
}

func (s *logSender) Send(ctx context.Context, mobile, message string) error {
	s.logger.Info("sms provider not configured, message logged",
		zap.String("mobile", maskMobile(mobile)),
		zap.String("message", message),
	)
	return nil
}

func maskMobile(mobile string) string {
	if len(mobile) < 4 {
		return "****"
	}
	return "******" + mobile[len(mobile)-4:]
}
