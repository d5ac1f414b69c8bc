package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"
	"github.com/RNiyam/attendance-system/internal/auth/token"
	"github.com/RNiyam/attendance-system/internal/rbac"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MobileVerifier reports whether a mobile number passed OTP verification recently.
type MobileVerifier interface {
	IsVerified(ctx context.Context, mobile string) (bool, error)
}

type TokenOptions struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func DefaultTokenOptions(secret string) TokenOptions {
	return TokenOptions{Secret: secret, AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour}
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (Tokens, AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (Tokens, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (Tokens, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo        Repository
	verifier    MobileVerifier
	tokens      TokenOptions
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

func NewService(repo Repository, verifier MobileVerifier, tokens TokenOptions, adminEmails []string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}

	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	return &service{
		repo:        repo,
		verifier:    verifier,
		tokens:      tokens,
		adminEmails: admins,
		logger:      l,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (Tokens, AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	mobile := strings.TrimSpace(req.MobileNumber)

	if email == "" && mobile == "" {
		return Tokens{}, AuthResponse{}, autherrors.ErrMissingIdentifier
	}
	if email != "" && req.Password == "" {
		return Tokens{}, AuthResponse{}, autherrors.ErrPasswordRequired
	}
	if mobile != "" {
		if err := s.requireVerified(ctx, mobile); err != nil {
			return Tokens{}, AuthResponse{}, err
		}
	}

	if email != "" {
		if err := s.ensureAbsent(s.repo.GetByEmail(ctx, email)); err != nil {
			if errors.Is(err, errTaken) {
				return Tokens{}, AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
			}
			return Tokens{}, AuthResponse{}, err
		}
	}
	if mobile != "" {
		if err := s.ensureAbsent(s.repo.GetByMobile(ctx, mobile)); err != nil {
			if errors.Is(err, errTaken) {
				return Tokens{}, AuthResponse{}, autherrors.ErrMobileAlreadyRegistered
			}
			return Tokens{}, AuthResponse{}, err
		}
	}

	user := &User{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.Name),
		Role: rbac.RoleEmployee,
	}
	if email != "" {
		user.Email = &email
		if _, ok := s.adminEmails[email]; ok {
			user.Role = rbac.RoleAdmin
		}
	}
	if mobile != "" {
		user.MobileNumber = &mobile
		user.IsMobileVerified = true
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return Tokens{}, AuthResponse{}, err
		}
		h := string(hashed)
		user.Password = &h
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("signup persist failed", zap.String("request_id", rid), zap.Error(err))
		return Tokens{}, AuthResponse{}, mapCreateError(err)
	}

	tokens, err := s.issue(user)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}

	s.logger.Info("signup success",
		zap.String("request_id", rid),
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return tokens, toResponse(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Tokens, AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	mobile := strings.TrimSpace(req.MobileNumber)

	var user *User
	switch {
	case mobile != "":
		if err := s.requireVerified(ctx, mobile); err != nil {
			return Tokens{}, AuthResponse{}, err
		}
		u, err := s.repo.GetByMobile(ctx, mobile)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
			}
			return Tokens{}, AuthResponse{}, err
		}
		user = u

	case email != "":
		if req.Password == "" {
			return Tokens{}, AuthResponse{}, autherrors.ErrPasswordRequired
		}
		u, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
			}
			return Tokens{}, AuthResponse{}, err
		}
		if u.Password == nil || *u.Password == "" {
			return Tokens{}, AuthResponse{}, autherrors.ErrPasswordNotSet
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.Password)); err != nil {
			s.logger.Warn("login rejected", zap.String("request_id", rid), zap.String("user_id", u.ID.String()))
			return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		user = u

	default:
		return Tokens{}, AuthResponse{}, autherrors.ErrMissingIdentifier
	}

	tokens, err := s.issue(user)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("request_id", rid), zap.String("user_id", user.ID.String()))
	return tokens, toResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (Tokens, AuthResponse, error) {
	claims, err := token.Parse(refreshToken, s.tokens.Secret)
	if err != nil || claims.Type != token.TypeRefresh {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Tokens{}, AuthResponse{}, autherrors.ErrUserNotFound
	}

	tokens, err := s.issue(user)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}
	return tokens, toResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toResponse(u)
	return &resp, nil
}

var errTaken = errors.New("identifier taken")

func (s *service) ensureAbsent(u *User, err error) error {
	if err == nil && u != nil {
		return errTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *service) requireVerified(ctx context.Context, mobile string) error {
	if s.verifier == nil {
		return autherrors.ErrMobileNotVerified
	}
	ok, err := s.verifier.IsVerified(ctx, mobile)
	if err != nil {
		return err
	}
	if !ok {
		return autherrors.ErrMobileNotVerified
	}
	return nil
}

func (s *service) issue(user *User) (Tokens, error) {
	access, err := token.Generate(s.tokens.Secret, user.ID.String(), user.Role, token.TypeAccess, s.tokens.AccessTTL)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := token.Generate(s.tokens.Secret, user.ID.String(), user.Role, token.TypeRefresh, s.tokens.RefreshTTL)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func toResponse(u *User) AuthResponse {
	resp := AuthResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Role:             u.Role,
		IsMobileVerified: u.IsMobileVerified,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	if u.MobileNumber != nil {
		resp.MobileNumber = *u.MobileNumber
	}
	return resp
}
