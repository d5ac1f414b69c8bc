package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RNiyam/attendance-system/internal/auth"
	autherrors "github.com/RNiyam/attendance-system/internal/auth/errors"
	authMock "github.com/RNiyam/attendance-system/internal/auth/mock"
	"github.com/RNiyam/attendance-system/internal/auth/token"
	"github.com/RNiyam/attendance-system/internal/rbac"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (auth.Service, *authMock.MockRepository, *authMock.MockMobileVerifier) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	verifier := authMock.NewMockMobileVerifier(ctrl)
	svc := auth.NewService(repo, verifier, auth.DefaultTokenOptions(testSecret), []string{"Boss@Example.com"})
	return svc, repo, verifier
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("email signup hashes the password", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			require.NotNil(t, u.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte("secret1")))
			assert.Equal(t, rbac.RoleEmployee, u.Role)
			assert.Nil(t, u.MobileNumber)
			return nil
		})

		tokens, resp, err := svc.Signup(ctx, auth.SignupRequest{Name: " Jane ", Email: "Jane@Example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "Jane", resp.Name)
		assert.Equal(t, "jane@example.com", resp.Email)

		claims, err := token.Parse(tokens.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, resp.ID, claims.UserID)
		assert.Equal(t, token.TypeAccess, claims.Type)
	})

	t.Run("configured admin email gets the admin role", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetByEmail(ctx, "boss@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, resp, err := svc.Signup(ctx, auth.SignupRequest{Name: "Boss", Email: "boss@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, rbac.RoleAdmin, resp.Role)
	})

	t.Run("mobile signup requires a verified otp", func(t *testing.T) {
		svc, _, verifier := newService(t)

		verifier.EXPECT().IsVerified(ctx, "9876543210").Return(false, nil)

		_, _, err := svc.Signup(ctx, auth.SignupRequest{Name: "Ravi", MobileNumber: "9876543210"})
		assert.ErrorIs(t, err, autherrors.ErrMobileNotVerified)
	})

	t.Run("verified mobile signup without password", func(t *testing.T) {
		svc, repo, verifier := newService(t)

		verifier.EXPECT().IsVerified(ctx, "9876543210").Return(true, nil)
		repo.EXPECT().GetByMobile(ctx, "9876543210").Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			assert.Nil(t, u.Password)
			assert.True(t, u.IsMobileVerified)
			return nil
		})

		_, resp, err := svc.Signup(ctx, auth.SignupRequest{Name: "Ravi", MobileNumber: "9876543210"})

		require.NoError(t, err)
		assert.Equal(t, "9876543210", resp.MobileNumber)
		assert.True(t, resp.IsMobileVerified)
	})

	t.Run("existing email", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(&auth.User{ID: uuid.New()}, nil)

		_, _, err := svc.Signup(ctx, auth.SignupRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetByEmail(ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})

		_, _, err := svc.Signup(ctx, auth.SignupRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, _, err := svc.Signup(ctx, auth.SignupRequest{Name: "Nobody"})
		assert.ErrorIs(t, err, autherrors.ErrMissingIdentifier)

		_, _, err = svc.Signup(ctx, auth.SignupRequest{Name: "Jane", Email: "jane@example.com"})
		assert.ErrorIs(t, err, autherrors.ErrPasswordRequired)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &auth.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    strPtr("admin@example.com"),
		Password: strPtr(string(hashed)),
		Role:     rbac.RoleAdmin,
	}

	t.Run("email and password", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(user, nil)

		tokens, resp, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, rbac.RoleAdmin, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("mobile-only account has no password", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().GetByEmail(ctx, "m@example.com").Return(&auth.User{ID: uuid.New(), Email: strPtr("m@example.com")}, nil)

		_, _, err := svc.Login(ctx, auth.LoginRequest{Email: "m@example.com", Password: "x"})
		assert.ErrorIs(t, err, autherrors.ErrPasswordNotSet)
	})

	t.Run("verified mobile", func(t *testing.T) {
		svc, repo, verifier := newService(t)
		verifier.EXPECT().IsVerified(ctx, "9876543210").Return(true, nil)
		repo.EXPECT().GetByMobile(ctx, "9876543210").Return(&auth.User{ID: uuid.New(), Role: rbac.RoleEmployee}, nil)

		_, resp, err := svc.Login(ctx, auth.LoginRequest{MobileNumber: "9876543210"})

		require.NoError(t, err)
		assert.Equal(t, rbac.RoleEmployee, resp.Role)
	})

	t.Run("verifier failure surfaces", func(t *testing.T) {
		svc, _, verifier := newService(t)
		verifier.EXPECT().IsVerified(ctx, "9876543210").Return(false, errors.New("redis down"))

		_, _, err := svc.Login(ctx, auth.LoginRequest{MobileNumber: "9876543210"})
		assert.EqualError(t, err, "redis down")
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("refresh token issues a new pair", func(t *testing.T) {
		svc, repo, _ := newService(t)
		refresh, err := token.Generate(testSecret, userID.String(), rbac.RoleEmployee, token.TypeRefresh, auth.DefaultTokenOptions(testSecret).RefreshTTL)
		require.NoError(t, err)

		repo.EXPECT().GetByID(ctx, userID).Return(&auth.User{ID: userID, Role: rbac.RoleEmployee}, nil)

		tokens, resp, err := svc.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		assert.Equal(t, userID.String(), resp.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		svc, _, _ := newService(t)
		access, err := token.Generate(testSecret, userID.String(), rbac.RoleEmployee, token.TypeAccess, auth.DefaultTokenOptions(testSecret).AccessTTL)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService(t)

	_, err := svc.GetMe(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	id := uuid.New()
	repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.GetMe(ctx, id.String())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
