package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventpkg "github.com/adopour/backend/internal/event"
	jwtpkg "github.com/adopour/backend/internal/jwt"
	"github.com/adopour/backend/internal/middleware"
	"github.com/adopour/backend/internal/services"
)

type authorizationFixture struct {
	service services.AuthorizationService
	store   *memoryStore
	broker  *recordingPublisher
	jwt     *jwtpkg.JWT
}

func newAuthorizationFixture(checker PasswordChecker) *authorizationFixture {
	fixture := &authorizationFixture{
		store:  newMemoryStore(),
		broker: &recordingPublisher{},
		jwt:    jwtpkg.NewJWT("test-secret"),
	}
	fixture.service = NewAuthorizationService(zap.NewNop(), fixture.store, fixture.broker, fixture.jwt, checker)
	return fixture
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
}

func signUp(t *testing.T, fixture *authorizationFixture, email, username string) {
	t.Helper()
	_, err := fixture.service.SignUp(context.Background(), services.SignUpInput{
		Email:    email,
		Password: "long enough password",
		Username: username,
	})
	require.NoError(t, err)
}

func TestSignUp(t *testing.T) {
	fixture := newAuthorizationFixture(passwordChecker{})

	first, err := fixture.service.SignUp(context.Background(), services.SignUpInput{
		Email:       " Alice@Example.com ",
		Password:    "long enough password",
		Username:    "alice",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", first.Email)
	assert.Equal(t, "Alice", first.DisplayName)
	assert.True(t, first.IsDeveloper)
	assert.False(t, first.EmailConfirmed)
	assert.NotEmpty(t, first.VerificationToken)
	assert.NotEqual(t, "long enough password", first.Password)

	require.Len(t, fixture.broker.events, 1)
	assert.Equal(t, eventpkg.AUTHORIZATION_REGISTER, fixture.broker.events[0].name)
	assert.Equal(t, eventpkg.AuthorizationRegisterMessage{ID: first.ID.String()}, fixture.broker.events[0].message)

	second, err := fixture.service.SignUp(context.Background(), services.SignUpInput{
		Email:    "bob@example.com",
		Password: "long enough password",
		Username: "bob",
	})
	require.NoError(t, err)
	assert.False(t, second.IsDeveloper)
	assert.Equal(t, "bob", second.DisplayName)
}

func TestSignUp_Rejections(t *testing.T) {
	fixture := newAuthorizationFixture(passwordChecker{pwned: map[string]bool{"password123": true}})
	signUp(t, fixture, "alice@example.com", "alice")

	tests := []struct {
		name  string
		input services.SignUpInput
		code  codes.Code
	}{
		{"missing email", services.SignUpInput{Password: "long enough password", Username: "bob"}, codes.InvalidArgument},
		{"invalid email", services.SignUpInput{Email: "nope", Password: "long enough password", Username: "bob"}, codes.InvalidArgument},
		{"short password", services.SignUpInput{Email: "bob@example.com", Password: "short", Username: "bob"}, codes.InvalidArgument},
		{"overlong password", services.SignUpInput{Email: "bob@example.com", Password: strings.Repeat("x", PasswordMaxLength+1), Username: "bob"}, codes.InvalidArgument},
		{"pwned password", services.SignUpInput{Email: "bob@example.com", Password: "password123", Username: "bob"}, codes.InvalidArgument},
		{"bad username", services.SignUpInput{Email: "bob@example.com", Password: "long enough password", Username: "b!"}, codes.InvalidArgument},
		{"taken email", services.SignUpInput{Email: "ALICE@example.com", Password: "long enough password", Username: "bob"}, codes.AlreadyExists},
		{"taken username", services.SignUpInput{Email: "bob@example.com", Password: "long enough password", Username: "alice"}, codes.AlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.SignUp(context.Background(), tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestSignUp_PasswordCheckUnavailable(t *testing.T) {
	fixture := newAuthorizationFixture(passwordChecker{err: errors.New("timeout")})

	_, err := fixture.service.SignUp(context.Background(), services.SignUpInput{
		Email:    "alice@example.com",
		Password: "long enough password",
		Username: "alice",
	})
	requireCode(t, err, codes.Internal)
}

func TestSignUpAndLoginWithLongPassword(t *testing.T) {
	fixture := newAuthorizationFixture(passwordChecker{})
	ctx := context.Background()
	password := strings.Repeat("x", 60)

	profile, err := fixture.service.SignUp(ctx, services.SignUpInput{
		Email:    "alice@example.com",
		Password: password,
		Username: "alice",
	})
	require.NoError(t, err)
	require.NoError(t, fixture.service.VerifyEmail(ctx, profile.VerificationToken))

	tokens, err := fixture.service.Login(ctx, "alice@example.com", password, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice", tokens.Profile.Username)

	_, err = fixture.service.Login(ctx, "alice@example.com", strings.Repeat("x", 59), "test", "127.0.0.1")
	requireCode(t, err, codes.Unauthenticated)
}

func TestLoginFlow(t *testing.T) {
	fixture := newAuthorizationFixture(passwordChecker{})
	signUp(t, fixture, "alice@example.com", "alice")
	ctx := context.Background()

	_, err := fixture.service.Login(ctx, "alice@example.com", "long enough password", "test", "127.0.0.1")
	requireCode(t, err, codes.PermissionDenied)

	profile, err := fixture.store.SelectProfileByEmail("alice@example.com")
	require.NoError(t, err)

	requireCode(t, fixture.service.VerifyEmail(ctx, "wrong"), codes.NotFound)
	require.NoError(t, fixture.service.VerifyEmail(ctx, profile.VerificationToken))
	requireCode(t, fixture.service.VerifyEmail(ctx, profile.VerificationToken), codes.NotFound)

	_, err = fixture.service.Login(ctx, "alice@example.com", "wrong password", "test", "127.0.0.1")
	requireCode(t, err, codes.Unauthenticated)

	_, err = fixture.service.Login(ctx, "nobody@example.com", "long enough password", "test", "127.0.0.1")
	requireCode(t, err, codes.Unauthenticated)

	tokens, err := fixture.service.Login(ctx, "Alice@example.com", "long enough password", "test", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice", tokens.Profile.Username)

	sessionID, err := fixture.jwt.ParseAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	session, err := fixture.store.SelectSessionByID(sessionID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, session.ProfileID)
	assert.Equal(t, "127.0.0.1", session.IpAddress)

	refreshed, err := fixture.service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	refreshedSessionID, err := fixture.jwt.ParseAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sessionID, refreshedSessionID)

	_, err = fixture.service.Refresh(ctx, tokens.AccessToken)
	requireCode(t, err, codes.Unauthenticated)

	requireCode(t, fixture.service.Logout(ctx), codes.Unauthenticated)
	require.NoError(t, fixture.service.Logout(middleware.SetSessionID(ctx, sessionID)))
	require.NoError(t, fixture.service.Logout(middleware.SetSessionID(ctx, sessionID)))

	_, err = fixture.service.Refresh(ctx, tokens.RefreshToken)
	requireCode(t, err, codes.Unauthenticated)
}
