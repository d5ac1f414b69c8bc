package profile

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	profileerrors "github.com/RNiyam/attendance-system/internal/profile/errors"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultPreferences are the dashboard widgets shown until the user changes
// them.
func DefaultPreferences() map[string]any {
	return map[string]any{
		"showHoursChart":      true,
		"showCheckInOutChart": true,
		"showStatistics":      true,
	}
}

// MobileVerifier reports whether a number passed OTP verification recently.
type MobileVerifier interface {
	IsVerified(ctx context.Context, mobile string) (bool, error)
}

type Service interface {
	Get(ctx context.Context, userID string) (ProfileResponse, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	Preferences(ctx context.Context, userID string) (PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req PreferencesRequest) (PreferencesResponse, error)
}

type service struct {
	repo     Repository
	verifier MobileVerifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, verifier MobileVerifier, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, verifier: verifier, now: now, logger: l}
}

// Save merges req into the user's profile, creating it if needed. Onboarding
// calls it with a transaction-bound repository.
func Save(ctx context.Context, repo Repository, userID uuid.UUID, req UpdateProfileRequest, now time.Time) (*Profile, error) {
	p, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Profile{UserID: userID, CreatedAt: now}
	}

	columns, err := ApplyUpdate(p, req, now)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = now

	if err := repo.Upsert(ctx, p, columns); err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

// ApplyUpdate copies the non-empty fields of req onto p and returns the
// columns it changed.
func ApplyUpdate(p *Profile, req UpdateProfileRequest, now time.Time) ([]string, error) {
	var columns []string

	if v := strings.TrimSpace(req.Username); v != "" {
		p.Username = &v
		columns = append(columns, "username")
	}
	if v := strings.TrimSpace(req.PhoneNumber); v != "" {
		p.PhoneNumber = v
		columns = append(columns, "phone_number")
	}
	if req.Gender != "" {
		p.Gender = req.Gender
		columns = append(columns, "gender")
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil || !dob.Before(now) {
			return nil, profileerrors.ErrInvalidDateOfBirth
		}
		p.DateOfBirth = &dob
		columns = append(columns, "date_of_birth")
	}
	if req.MaritalStatus != "" {
		p.MaritalStatus = req.MaritalStatus
		columns = append(columns, "marital_status")
	}
	if req.ProfilePhoto != "" {
		p.ProfilePhoto = req.ProfilePhoto
		columns = append(columns, "profile_photo")
	}
	return columns, nil
}

func (s *service) Get(ctx context.Context, userID string) (ProfileResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	p, err := s.repo.FindByUserID(ctx, uid)
	if err != nil {
		return ProfileResponse{}, err
	}
	if p == nil {
		return ProfileResponse{}, profileerrors.ErrProfileNotFound
	}
	return MapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	if phone := strings.TrimSpace(req.PhoneNumber); phone != "" && s.verifier != nil {
		current, err := s.repo.FindByUserID(ctx, uid)
		if err != nil {
			return ProfileResponse{}, err
		}
		if current == nil || current.PhoneNumber != phone {
			ok, err := s.verifier.IsVerified(ctx, phone)
			if err != nil {
				return ProfileResponse{}, err
			}
			if !ok {
				return ProfileResponse{}, profileerrors.ErrMobileNotVerified
			}
		}
	}

	p, err := Save(ctx, s.repo, uid, req, s.now())
	if err != nil {
		s.logger.Warn("update profile failed",
			zap.String("request_id", rid),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ProfileResponse{}, err
	}

	s.logger.Info("profile updated", zap.String("request_id", rid), zap.String("user_id", userID))
	return MapToResponse(*p), nil
}

func (s *service) Preferences(ctx context.Context, userID string) (PreferencesResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return PreferencesResponse{}, profileerrors.ErrInvalidUserID
	}

	p, err := s.repo.FindByUserID(ctx, uid)
	if err != nil {
		return PreferencesResponse{}, err
	}
	stored, err := storedPreferences(p)
	if err != nil {
		return PreferencesResponse{}, err
	}
	return PreferencesResponse{Preferences: merge(DefaultPreferences(), stored)}, nil
}

// UpdatePreferences merges req over the stored preferences.
func (s *service) UpdatePreferences(ctx context.Context, userID string, req PreferencesRequest) (PreferencesResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return PreferencesResponse{}, profileerrors.ErrInvalidUserID
	}
	if req.Preferences == nil {
		return PreferencesResponse{}, profileerrors.ErrInvalidPreferences
	}

	now := s.now()
	p, err := s.repo.FindByUserID(ctx, uid)
	if err != nil {
		return PreferencesResponse{}, err
	}
	stored, err := storedPreferences(p)
	if err != nil {
		return PreferencesResponse{}, err
	}
	if p == nil {
		p = &Profile{UserID: uid, CreatedAt: now}
	}

	updated := merge(stored, req.Preferences)
	data, err := json.Marshal(updated)
	if err != nil {
		return PreferencesResponse{}, profileerrors.ErrInvalidPreferences
	}
	p.Preferences = data
	p.UpdatedAt = now

	if err := s.repo.Upsert(ctx, p, []string{"preferences"}); err != nil {
		return PreferencesResponse{}, mapRepositoryError(err)
	}
	return PreferencesResponse{Preferences: merge(DefaultPreferences(), updated)}, nil
}

func storedPreferences(p *Profile) (map[string]any, error) {
	stored := map[string]any{}
	if p == nil || len(p.Preferences) == 0 {
		return stored, nil
	}
	if err := json.Unmarshal(p.Preferences, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func merge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func MapToResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		UserID:        p.UserID.String(),
		PhoneNumber:   p.PhoneNumber,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
		ProfilePhoto:  p.ProfilePhoto,
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Username != nil {
		resp.Username = *p.Username
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format(dateLayout)
	}
	return resp
}
