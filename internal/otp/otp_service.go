package otp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	otperrors "github.com/RNiyam/attendance-system/internal/otp/errors"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CodeTTL          = 60 * time.Second
	VerifiedTTL      = 5 * time.Minute
	MaxSendsPerHour  = 5
	challengeKeepTTL = 10 * time.Minute
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	codePattern   = regexp.MustCompile(`^[0-9]{4}$`)
)

var codeOpts = totp.ValidateOpts{
	Period:    uint(CodeTTL / time.Second),
	Skew:      0,
	Digits:    otp.Digits(4),
	Algorithm: otp.AlgorithmSHA1,
}

//go:generate mockgen -source=otp_service.go -destination=mock/otp_service_mock.go -package=mock
type Service interface {
	Send(ctx context.Context, mobile string) (SendResponse, error)
	Verify(ctx context.Context, mobile, code string) (VerifyResponse, error)
	IsVerified(ctx context.Context, mobile string) (bool, error)
}

type service struct {
	rdb       *redis.Client
	sender    Sender
	now       func() time.Time
	newSecret func(mobile string) (string, error)
	logger    *zap.Logger
}

func NewService(rdb *redis.Client, sender Sender, logger ...*zap.Logger) Service {
	l := zap.L().Named("otp.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("otp.service")
	}
	return &service{
		rdb:       rdb,
		sender:    sender,
		now:       time.Now,
		newSecret: generateSecret,
		logger:    l,
	}
}

func generateSecret(mobile string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "attendance-system",
		AccountName: mobile,
		Period:      codeOpts.Period,
		Digits:      codeOpts.Digits,
		Algorithm:   codeOpts.Algorithm,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

func challengeKey(mobile string) string { return "otp:challenge:" + mobile }
func counterKey(mobile string) string   { return "otp:count:" + mobile }
func verifiedKey(mobile string) string  { return "otp:verified:" + mobile }

func (s *service) Send(ctx context.Context, mobile string) (SendResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !mobilePattern.MatchString(mobile) {
		return SendResponse{}, otperrors.ErrInvalidMobile
	}

	sent, err := s.rdb.Incr(ctx, counterKey(mobile)).Result()
	if err != nil {
		s.logger.Error("otp rate counter failed", zap.String("request_id", rid), zap.Error(err))
		return SendResponse{}, err
	}
	if sent == 1 {
		if err := s.rdb.Expire(ctx, counterKey(mobile), time.Hour).Err(); err != nil {
			s.logger.Warn("otp rate counter expiry failed", zap.String("request_id", rid), zap.Error(err))
		}
	}
	if sent > MaxSendsPerHour {
		s.logger.Warn("otp send rate limited", zap.String("request_id", rid), zap.String("mobile", maskMobile(mobile)))
		return SendResponse{}, otperrors.ErrTooManyRequests
	}

	secret, err := s.newSecret(mobile)
	if err != nil {
		return SendResponse{}, err
	}

	issuedAt := s.now()
	code, err := totp.GenerateCodeCustom(secret, issuedAt, codeOpts)
	if err != nil {
		return SendResponse{}, err
	}

	// The challenge outlives the code so an expired code reports 410
	// instead of looking like it was never sent.
	if err := s.rdb.HSet(ctx, challengeKey(mobile),
		"secret", secret,
		"issued_at", strconv.FormatInt(issuedAt.Unix(), 10),
	).Err(); err != nil {
		s.logger.Error("otp store challenge failed", zap.String("request_id", rid), zap.Error(err))
		return SendResponse{}, err
	}
	if err := s.rdb.Expire(ctx, challengeKey(mobile), challengeKeepTTL).Err(); err != nil {
		return SendResponse{}, err
	}

	message := fmt.Sprintf("%s is your attendance verification code. It expires in %d seconds. Do not share it with anyone.", code, int(CodeTTL/time.Second))
	if err := s.sender.Send(ctx, mobile, message); err != nil {
		// Delivery is best effort, the client may resend.
		s.logger.Error("otp delivery failed",
			zap.String("request_id", rid),
			zap.String("mobile", maskMobile(mobile)),
			zap.Error(err),
		)
	}

	s.logger.Info("otp sent", zap.String("request_id", rid), zap.String("mobile", maskMobile(mobile)), zap.Int64("sent_this_hour", sent))
	return SendResponse{MobileNumber: mobile, ExpiresAt: issuedAt.Add(CodeTTL)}, nil
}

func (s *service) Verify(ctx context.Context, mobile, code string) (VerifyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !mobilePattern.MatchString(mobile) {
		return VerifyResponse{}, otperrors.ErrInvalidMobile
	}
	if !codePattern.MatchString(code) {
		return VerifyResponse{}, otperrors.ErrInvalidCodeFormat
	}

	fields, err := s.rdb.HGetAll(ctx, challengeKey(mobile)).Result()
	if err != nil {
		return VerifyResponse{}, err
	}
	secret := fields["secret"]
	issuedUnix, convErr := strconv.ParseInt(fields["issued_at"], 10, 64)
	if secret == "" || convErr != nil {
		return VerifyResponse{}, otperrors.ErrInvalidCode
	}
	issuedAt := time.Unix(issuedUnix, 0)

	ok, err := totp.ValidateCustom(code, secret, issuedAt, codeOpts)
	if err != nil || !ok {
		s.logger.Warn("otp verification rejected", zap.String("request_id", rid), zap.String("mobile", maskMobile(mobile)))
		return VerifyResponse{}, otperrors.ErrInvalidCode
	}

	now := s.now()
	if now.Sub(issuedAt) > CodeTTL {
		return VerifyResponse{}, otperrors.ErrExpired
	}

	if err := s.rdb.Set(ctx, verifiedKey(mobile), strconv.FormatInt(now.Unix(), 10), VerifiedTTL).Err(); err != nil {
		s.logger.Error("otp mark verified failed", zap.String("request_id", rid), zap.Error(err))
		return VerifyResponse{}, err
	}
	if err := s.rdb.Del(ctx, challengeKey(mobile)).Err(); err != nil {
		s.logger.Warn("otp challenge cleanup failed", zap.String("request_id", rid), zap.Error(err))
	}

	s.logger.Info("otp verified", zap.String("request_id", rid), zap.String("mobile", maskMobile(mobile)))
	return VerifyResponse{MobileNumber: mobile, VerifiedAt: now}, nil
}

func (s *service) IsVerified(ctx context.Context, mobile string) (bool, error) {
	if !mobilePattern.MatchString(mobile) {
		return false, otperrors.ErrInvalidMobile
	}
	err := s.rdb.Get(ctx, verifiedKey(mobile)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
