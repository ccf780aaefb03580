package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/pkg/config"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

type userRepoStub struct {
	user          *models.User
	refreshToken  *models.RefreshToken
	createdTokens []*models.RefreshToken
	revokedIDs    []string
	revokedUsers  []string
	lastLoginErr  error
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return s.lastLoginErr
}

func (s *userRepoStub) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.createdTokens = append(s.createdTokens, token)
	return nil
}

func (s *userRepoStub) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if s.refreshToken == nil || s.refreshToken.Token != token {
		return nil, sql.ErrNoRows
	}
	return s.refreshToken, nil
}

func (s *userRepoStub) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	s.revokedIDs = append(s.revokedIDs, id)
	return nil
}

func (s *userRepoStub) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	s.revokedUsers = append(s.revokedUsers, userID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "surveillance-api",
	}
}

func activeUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Email:        "admin@univ.dz",
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	users := &userRepoStub{user: activeUser(t)}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@univ.dz",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	require.Len(t, users.createdTokens, 1)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@univ.dz", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &userRepoStub{user: activeUser(t)}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@univ.dz",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&userRepoStub{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@univ.dz",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t)
	user.Active = false
	svc := NewAuthService(&userRepoStub{user: user}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@univ.dz",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestLoginRejectsMalformedPayload(t *testing.T) {
	svc := NewAuthService(&userRepoStub{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	users := &userRepoStub{
		user: activeUser(t),
		refreshToken: &models.RefreshToken{
			ID:        "rt1",
			UserID:    "u1",
			Token:     "old-refresh",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	resp, err := svc.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.NotEqual(t, "old-refresh", resp.RefreshToken)
	assert.Equal(t, []string{"rt1"}, users.revokedIDs)
	require.Len(t, users.createdTokens, 1)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	users := &userRepoStub{
		user: activeUser(t),
		refreshToken: &models.RefreshToken{
			ID:        "rt1",
			UserID:    "u1",
			Token:     "old-refresh",
			ExpiresAt: time.Now().Add(-time.Minute),
		},
	}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Refresh(context.Background(), "old-refresh")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Empty(t, users.revokedIDs)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	users := &userRepoStub{
		user: activeUser(t),
		refreshToken: &models.RefreshToken{
			ID:        "rt1",
			UserID:    "u1",
			Token:     "old-refresh",
			ExpiresAt: time.Now().Add(time.Hour),
			Revoked:   true,
		},
	}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Refresh(context.Background(), "old-refresh")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	users := &userRepoStub{}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	require.NoError(t, svc.Logout(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, users.revokedUsers)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	users := &userRepoStub{user: activeUser(t)}
	issuer := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	resp, err := issuer.Login(context.Background(), models.LoginRequest{
		Email:    "admin@univ.dz",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "different-secret"
	verifier := NewAuthService(users, other, nil, zap.NewNop())

	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&userRepoStub{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
