package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
	sessionRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/session"
	usersRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/users"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type nopRecorder struct{}

func (nopRecorder) ObserveRemote(operation, outcome string, duration time.Duration) {}
func (nopRecorder) IncFallback(operation string)                                    {}
func (nopRecorder) IncLocal(operation string)                                       {}

type apiStub struct {
	signUpErr error
	signInErr error
	user      domain.User
	token     string
}

func (a *apiStub) SignUp(ctx context.Context, req *fieldservice.SignUpRequest) (*domain.User, error) {
	if a.signUpErr != nil {
		return nil, a.signUpErr
	}
	u := a.user
	return &u, nil
}

func (a *apiStub) SignIn(ctx context.Context, req *fieldservice.SignInRequest) (*fieldservice.SignInResponse, error) {
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	return &fieldservice.SignInResponse{Token: a.token, User: a.user}, nil
}

func newTestService(api *apiStub) (*Service, *sessionRepo.Repository) {
	store := localstore.NewMemoryStore()
	sessions := sessionRepo.NewRepository(store)
	svc := NewService(api, usersRepo.NewRepository(store), sessions, nopRecorder{}, nopLogger{})
	return svc, sessions
}

func signUpReq() *fieldservice.SignUpRequest {
	return &fieldservice.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		CPF:      "52998224725",
	}
}

func TestSignUp_RemoteSuccessSignsIn(t *testing.T) {
	api := &apiStub{
		user:  domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
		token: "jwt-token",
	}
	svc, sessions := newTestService(api)

	session, err := svc.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)
	assert.False(t, session.Offline)
	assert.Equal(t, "jwt-token", session.Token)

	token, err := sessions.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestSignUp_OfflineFallback(t *testing.T) {
	api := &apiStub{signUpErr: fieldservice.ErrUnavailable}
	svc, _ := newTestService(api)

	session, err := svc.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)
	assert.True(t, session.Offline)
	assert.True(t, strings.HasPrefix(session.User.ID, "offline-"))
	assert.True(t, strings.HasPrefix(session.Token, "offline-token-"))

	// оффлайн-аккаунтом можно войти с тем же паролем
	api.signInErr = fieldservice.ErrUnavailable
	signIn, err := svc.SignIn(context.Background(), &fieldservice.SignInRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.True(t, signIn.Offline)
	assert.Equal(t, session.User.ID, signIn.User.ID)

	// а с чужим нельзя
	_, err = svc.SignIn(context.Background(), &fieldservice.SignInRequest{
		Email:    "ana@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_EmailTaken(t *testing.T) {
	api := &apiStub{signUpErr: &fieldservice.APIError{StatusCode: 409, Detail: "email taken"}}
	svc, _ := newTestService(api)

	_, err := svc.SignUp(context.Background(), signUpReq())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_OfflineDuplicateEmail(t *testing.T) {
	api := &apiStub{signUpErr: fieldservice.ErrUnavailable}
	svc, _ := newTestService(api)

	_, err := svc.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), signUpReq())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	api := &apiStub{signInErr: &fieldservice.APIError{StatusCode: 401, Detail: "bad credentials"}}
	svc, _ := newTestService(api)

	_, err := svc.SignIn(context.Background(), &fieldservice.SignInRequest{
		Email:    "ana@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_OfflineUnknownEmail(t *testing.T) {
	api := &apiStub{signInErr: fieldservice.ErrUnavailable}
	svc, _ := newTestService(api)

	_, err := svc.SignIn(context.Background(), &fieldservice.SignInRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutAndCurrentUser(t *testing.T) {
	api := &apiStub{user: domain.User{ID: "u1", Email: "ana@example.com"}, token: "jwt"}
	svc, _ := newTestService(api)

	_, err := svc.CurrentUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.SignIn(context.Background(), &fieldservice.SignInRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	user, err := svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	require.NoError(t, svc.Logout())
	_, err = svc.CurrentUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestToken_Expiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	user := &domain.User{ID: "u1"}

	t.Run("live jwt", func(t *testing.T) {
		svc, sessions := newTestService(&apiStub{})
		require.NoError(t, sessions.Save(signedJWT(t, now.Add(time.Hour)), user))

		token, err := svc.Token(now)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("expired jwt", func(t *testing.T) {
		svc, sessions := newTestService(&apiStub{})
		require.NoError(t, sessions.Save(signedJWT(t, now.Add(-time.Hour)), user))

		_, err := svc.Token(now)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("offline token never expires", func(t *testing.T) {
		svc, sessions := newTestService(&apiStub{})
		require.NoError(t, sessions.Save("offline-token-abc", user))

		token, err := svc.Token(now)
		require.NoError(t, err)
		assert.Equal(t, "offline-token-abc", token)
	})

	t.Run("opaque token passes through", func(t *testing.T) {
		svc, sessions := newTestService(&apiStub{})
		require.NoError(t, sessions.Save("opaque-session-id", user))

		token, err := svc.Token(now)
		require.NoError(t, err)
		assert.Equal(t, "opaque-session-id", token)
	})

	t.Run("no session", func(t *testing.T) {
		svc, _ := newTestService(&apiStub{})
		_, err := svc.Token(now)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}
