package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/repository"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type authRepoStub struct {
	users         map[string]models.User
	refreshTokens map[string]models.RefreshToken
	auditLogs     []models.AuditLog
	createErr     error
}

func newAuthRepoStub() *authRepoStub {
	return &authRepoStub{
		users:         map[string]models.User{},
		refreshTokens: map[string]models.RefreshToken{},
	}
}

func (s *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *authRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if user.ID == "" {
		user.ID = "user-1"
	}
	s.users[user.ID] = *user
	return nil
}

func (s *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (s *authRepoStub) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.refreshTokens[token.Token] = *token
	return nil
}

func (s *authRepoStub) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := s.refreshTokens[token]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for key, t := range s.refreshTokens {
		if t.ID == id {
			t.Revoked = true
			t.RevokedAt = &revokedAt
			s.refreshTokens[key] = t
		}
	}
	return nil
}

func (s *authRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func newAuthFixture() (*AuthService, *authRepoStub) {
	repo := newAuthRepoStub()
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "shopkit-test",
	})
	return svc, repo
}

func TestSignup(t *testing.T) {
	svc, repo := newAuthFixture()

	info, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:     "Alice",
		Email:    " Alice@Example.com ",
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", info.Email, "email is normalised")
	stored := repo.users[info.ID]
	assert.NotEqual(t, "supersecret", stored.PasswordHash, "password is never stored in clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionSignup, repo.auditLogs[0].Action)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	req := models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestSignupDuplicateEmailRace(t *testing.T) {
	svc, repo := newAuthFixture()
	// The existence check sees no user, but the insert loses the unique
	// index race. The caller still gets a duplicate, not a server error.
	repo.createErr = repository.ErrConflict

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), models.SignupRequest{Email: "not-an-email", Password: "short"})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	for _, attempt := range []models.LoginRequest{
		{Email: "alice@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "supersecret"},
	} {
		_, err := svc.Login(context.Background(), attempt)
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code, "unknown user and bad password are indistinguishable")
		assert.Equal(t, 401, appErr.Status)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	first, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, first.RefreshToken)

	// The used token is revoked: replaying it must fail.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)

	// The rotated token still works.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, repo := newAuthFixture()
	repo.refreshTokens["stale"] = models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}

	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestSignoutRevokesRefreshToken(t *testing.T) {
	svc, repo := newAuthFixture()
	info, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.Signout(context.Background(), models.SignoutRequest{RefreshToken: login.RefreshToken, UserID: info.ID})
	require.NoError(t, err)

	// The revoked token can no longer be exchanged.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)

	var actions []string
	for _, log := range repo.auditLogs {
		actions = append(actions, log.Action)
	}
	assert.Contains(t, actions, models.AuditActionSignout)
}

func TestSignoutRejectsForeignToken(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	err = svc.Signout(context.Background(), models.SignoutRequest{RefreshToken: login.RefreshToken, UserID: "someone-else"})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)

	// The token survives a failed signout.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
}

func TestSignoutUnknownToken(t *testing.T) {
	svc, _ := newAuthFixture()

	err := svc.Signout(context.Background(), models.SignoutRequest{RefreshToken: "never-issued", UserID: "user-1"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.ValidateToken("not.a.token")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}
