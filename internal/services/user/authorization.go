package user

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	eventpkg "github.com/adopour/backend/internal/event"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	securitypkg "github.com/adopour/backend/internal/security"
	"github.com/adopour/backend/internal/services"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 256
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

type AuthorizationStore interface {
	SelectProfileByID(id string) (*ormpkg.Profile, error)
	SelectProfileByEmail(email string) (*ormpkg.Profile, error)
	SelectProfileByUsername(username string) (*ormpkg.Profile, error)
	SelectProfileByVerificationToken(token string) (*ormpkg.Profile, error)
	CountProfiles() (int64, error)
	InsertProfile(profile *ormpkg.Profile) error
	UpdateProfileFields(id uuid.UUID, fields map[string]any) error
	SelectSessionByID(id string) (*ormpkg.Session, error)
	InsertSession(session *ormpkg.Session) error
	TouchSession(session *ormpkg.Session) error
	DeleteSession(session *ormpkg.Session) error
}

type TokenIssuer interface {
	GenerateAccessToken(sessionID string) (string, error)
	GenerateRefreshToken(sessionID string) (string, error)
	ParseRefreshToken(token string) (string, error)
}

type PasswordChecker interface {
	IsPasswordPwned(ctx context.Context, password string) (bool, error)
}

type AuthorizationServiceImpl struct {
	log        *zap.Logger
	database   AuthorizationStore
	broker     eventpkg.Publisher
	jwt        TokenIssuer
	hibpClient PasswordChecker
}

func NewAuthorizationService(log *zap.Logger, database AuthorizationStore, broker eventpkg.Publisher, jwt TokenIssuer, hibpClient PasswordChecker) services.AuthorizationService {
	return &AuthorizationServiceImpl{
		log:        log,
		database:   database,
		broker:     broker,
		jwt:        jwt,
		hibpClient: hibpClient,
	}
}

func (s *AuthorizationServiceImpl) SignUp(ctx context.Context, input services.SignUpInput) (*ormpkg.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, status.Errorf(codes.InvalidArgument, "email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "email is invalid")
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	if !usernamePattern.MatchString(username) {
		return nil, status.Errorf(codes.InvalidArgument, "username must be 3-30 lowercase letters, digits or underscores")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}
	if utf8.RuneCountInString(displayName) > DisplayNameMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "display name must be at most %d characters", DisplayNameMaxLength)
	}

	// Validate password complexity
	if utf8.RuneCountInString(input.Password) < PasswordMinLength {
		return nil, status.Errorf(codes.InvalidArgument, "password must be at least %d characters long", PasswordMinLength)
	}
	if utf8.RuneCountInString(input.Password) > PasswordMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "password must be at most %d characters long", PasswordMaxLength)
	}

	// Check if password has been pwned
	isPwned, err := s.hibpClient.IsPasswordPwned(ctx, input.Password)
	if err != nil {
		s.log.Error("failed to check password against HIBP", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "failed to validate password")
	}
	if isPwned {
		return nil, status.Errorf(codes.InvalidArgument, "password has been pwned, please choose a different one")
	}

	_, err = s.database.SelectProfileByEmail(email)
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			return nil, status.Errorf(codes.AlreadyExists, "email already registered")
		}
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	_, err = s.database.SelectProfileByUsername(username)
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			return nil, status.Errorf(codes.AlreadyExists, "username already taken")
		}
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	salt := securitypkg.GenerateSalt()
	hash, err := securitypkg.HashPassword(input.Password, salt)
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	// The first profile on the platform owns the admin panel
	profileCount, err := s.database.CountProfiles()
	if err != nil {
		s.log.Error("failed to count profiles", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	profile := &ormpkg.Profile{
		Email:             email,
		Password:          hash,
		Salt:              salt,
		Username:          username,
		DisplayName:       displayName,
		IsDeveloper:       profileCount == 0,
		VerificationToken: securitypkg.GenerateToken(),
	}
	err = s.database.InsertProfile(profile)
	if err == gorm.ErrDuplicatedKey {
		return nil, status.Errorf(codes.AlreadyExists, "email or username already registered")
	}
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	// Write message to broker so the worker mails the verification link
	err = s.broker.WriteMessage(
		ctx,
		eventpkg.AUTHORIZATION_REGISTER,
		eventpkg.AuthorizationRegisterMessage{
			ID: profile.ID.String(),
		},
	)
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	return profile, nil
}

func (s *AuthorizationServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return status.Errorf(codes.InvalidArgument, "token is required")
	}

	profile, err := s.database.SelectProfileByVerificationToken(token)
	if err == gorm.ErrRecordNotFound {
		return status.Errorf(codes.NotFound, "verification token is invalid")
	}
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return status.Errorf(codes.Internal, "internal error")
	}

	err = s.database.UpdateProfileFields(profile.ID, map[string]any{
		"email_confirmed":    true,
		"verification_token": "",
	})
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return status.Errorf(codes.Internal, "internal error")
	}
	return nil
}

func (s *AuthorizationServiceImpl) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*services.Tokens, error) {
	profile, err := s.database.SelectProfileByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	err = securitypkg.ComparePasswords(profile.Password, password, profile.Salt)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid email or password")
	}

	if !profile.EmailConfirmed {
		return nil, status.Errorf(codes.PermissionDenied, "email not confirmed")
	}

	session := &ormpkg.Session{
		ProfileID: profile.ID,
		UserAgent: userAgent,
		IpAddress: ipAddress,
	}
	if err := s.database.InsertSession(session); err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	tokens, err := s.issueTokens(session.ID.String())
	if err != nil {
		return nil, err
	}
	tokens.Profile = profile

	err = s.broker.WriteMessage(
		ctx,
		eventpkg.AUTHORIZATION_LOGIN,
		eventpkg.AuthorizationLoginMessage{
			ID: profile.ID.String(),
		},
	)
	if err != nil {
		s.log.Warn("failed to publish login event", zap.Error(err))
	}

	return tokens, nil
}

func (s *AuthorizationServiceImpl) Refresh(ctx context.Context, refreshToken string) (*services.Tokens, error) {
	sessionID, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid refresh token")
	}

	session, err := s.database.SelectSessionByID(sessionID)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.Unauthenticated, "session expired")
	}
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	if err := s.database.TouchSession(session); err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	profile, err := s.database.SelectProfileByID(session.ProfileID.String())
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	tokens, err := s.issueTokens(sessionID)
	if err != nil {
		return nil, err
	}
	tokens.Profile = profile
	return tokens, nil
}

func (s *AuthorizationServiceImpl) Logout(ctx context.Context) error {
	sessionID, ok := middleware.GetSessionID(ctx)
	if !ok {
		return status.Errorf(codes.Unauthenticated, "not logged in")
	}

	session, err := s.database.SelectSessionByID(sessionID)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return status.Errorf(codes.Internal, "internal error")
	}

	if err := s.database.DeleteSession(session); err != nil {
		s.log.Error("internal error", zap.Error(err))
		return status.Errorf(codes.Internal, "internal error")
	}
	return nil
}

func (s *AuthorizationServiceImpl) issueTokens(sessionID string) (*services.Tokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(sessionID)
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(sessionID)
	if err != nil {
		s.log.Error("internal error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error")
	}

	return &services.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
