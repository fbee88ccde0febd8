package user

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	eventpkg "github.com/adopour/backend/internal/event"
	"github.com/adopour/backend/internal/lib"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const (
	DisplayNameMaxLength = 50
	BioMaxLength         = 500
	AvatarURLMaxLength   = 2048
	ProfilePostsMaxLimit = 50
)

type ProfileStore interface {
	lib.ReputationStore

	SelectProfileByID(id string) (*ormpkg.Profile, error)
	SelectProfileByUsername(username string) (*ormpkg.Profile, error)
	UpdateProfileFields(id uuid.UUID, fields map[string]any) error
	SelectPosts(filter ormpkg.PostFilter, viewerID uuid.UUID, cursor string, limit int) ([]*ormpkg.Post, error)
	CountPostsByAuthor(authorID uuid.UUID) (int64, error)
	CountFriends(userID uuid.UUID) (int64, error)
	SelectFriendship(userID, friendID uuid.UUID) (*ormpkg.Friendship, error)
	SelectFriendshipByID(id string) (*ormpkg.Friendship, error)
	InsertFriendship(friendship *ormpkg.Friendship) (bool, error)
	AcceptFriendship(friendship *ormpkg.Friendship) error
}

type ProfileServiceImpl struct {
	log      *zap.Logger
	database ProfileStore
	broker   eventpkg.Publisher
}

func NewProfileService(log *zap.Logger, database ProfileStore, broker eventpkg.Publisher) services.ProfileService {
	return &ProfileServiceImpl{
		log:      log,
		database: database,
		broker:   broker,
	}
}

func (s *ProfileServiceImpl) GetCurrentProfile(ctx context.Context) (*ormpkg.Profile, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	profile, err := s.database.SelectProfileByID(userID.String())
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "profile not found")
	}
	if err != nil {
		s.log.Error("database error", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, update services.ProfileUpdate) (*ormpkg.Profile, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	fields := map[string]any{}
	if update.DisplayName != nil {
		displayName := strings.TrimSpace(*update.DisplayName)
		if displayName == "" {
			return nil, status.Errorf(codes.InvalidArgument, "display name cannot be empty")
		}
		if utf8.RuneCountInString(displayName) > DisplayNameMaxLength {
			return nil, status.Errorf(codes.InvalidArgument, "display name must be at most %d characters", DisplayNameMaxLength)
		}
		fields["display_name"] = displayName
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if utf8.RuneCountInString(bio) > BioMaxLength {
			return nil, status.Errorf(codes.InvalidArgument, "bio must be at most %d characters", BioMaxLength)
		}
		fields["bio"] = bio
	}
	if update.AvatarURL != nil {
		avatarURL := strings.TrimSpace(*update.AvatarURL)
		if len(avatarURL) > AvatarURLMaxLength {
			return nil, status.Errorf(codes.InvalidArgument, "avatar url is too long")
		}
		fields["avatar_url"] = avatarURL
	}

	if len(fields) > 0 {
		if err := s.database.UpdateProfileFields(userID, fields); err != nil {
			s.log.Error("error updating profile", zap.Error(err))
			return nil, status.Errorf(codes.Internal, "could not update profile")
		}
	}

	return s.GetCurrentProfile(ctx)
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, username string) (*services.ProfileDetails, error) {
	profile, err := s.selectProfile(username)
	if err != nil {
		return nil, err
	}

	details := &services.ProfileDetails{
		Profile:      profile,
		IsOwnProfile: middleware.GetViewerUUID(ctx) == profile.ID,
	}

	details.PostCount, err = s.database.CountPostsByAuthor(profile.ID)
	if err != nil {
		s.log.Error("error counting posts", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	details.FriendsCount, err = s.database.CountFriends(profile.ID)
	if err != nil {
		s.log.Error("error counting friends", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	details.Reputation, err = lib.CalculateProfileReputation(s.database, profile)
	if err != nil {
		s.log.Error("error calculating reputation", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	return details, nil
}

func (s *ProfileServiceImpl) ListProfilePosts(ctx context.Context, username string, cursor string, limit int) ([]*ormpkg.Post, string, error) {
	profile, err := s.selectProfile(username)
	if err != nil {
		return nil, "", err
	}

	limit = lib.ClampLimit(limit, ProfilePostsMaxLimit)
	posts, err := s.database.SelectPosts(
		ormpkg.PostFilter{AuthorID: &profile.ID},
		middleware.GetViewerUUID(ctx),
		cursor,
		limit+1,
	)
	if err != nil {
		s.log.Error("error selecting profile posts", zap.Error(err))
		return nil, "", status.Errorf(codes.Internal, "database error")
	}

	posts, next := lib.NextPage(posts, limit)
	return posts, next, nil
}

func (s *ProfileServiceImpl) AddFriend(ctx context.Context, username string) (*ormpkg.Friendship, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	friend, err := s.selectProfile(username)
	if err != nil {
		return nil, err
	}
	if friend.ID == userID {
		return nil, status.Errorf(codes.InvalidArgument, "cannot befriend yourself")
	}

	created, err := s.database.InsertFriendship(&ormpkg.Friendship{
		UserID:   userID,
		FriendID: friend.ID,
		Status:   ormpkg.FriendshipStatusPending,
	})
	if err != nil {
		s.log.Error("error inserting friendship", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not add friend")
	}

	friendship, err := s.database.SelectFriendship(userID, friend.ID)
	if err != nil {
		s.log.Error("error selecting friendship", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	if created {
		err = s.broker.WriteMessage(
			ctx,
			eventpkg.FRIEND_REQUESTED,
			eventpkg.FriendRequestedMessage{ID: friendship.ID.String()},
		)
		if err != nil {
			s.log.Warn("failed to publish friend request", zap.Error(err))
		}
	}

	return friendship, nil
}

func (s *ProfileServiceImpl) AcceptFriend(ctx context.Context, friendshipID string) (*ormpkg.Friendship, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	if _, err := uuid.Parse(friendshipID); err != nil {
		return nil, status.Errorf(codes.NotFound, "friend request not found")
	}

	friendship, err := s.database.SelectFriendshipByID(friendshipID)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "friend request not found")
	}
	if err != nil {
		s.log.Error("error selecting friendship", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	// Only the addressee may accept
	if friendship.FriendID != userID {
		return nil, status.Errorf(codes.PermissionDenied, "not your friend request")
	}

	if friendship.Status != ormpkg.FriendshipStatusAccepted {
		if err := s.database.AcceptFriendship(friendship); err != nil {
			s.log.Error("error accepting friendship", zap.Error(err))
			return nil, status.Errorf(codes.Internal, "could not accept friend request")
		}
		friendship.Status = ormpkg.FriendshipStatusAccepted
	}

	return friendship, nil
}

func (s *ProfileServiceImpl) selectProfile(username string) (*ormpkg.Profile, error) {
	profile, err := s.database.SelectProfileByUsername(strings.ToLower(username))
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "profile not found")
	}
	if err != nil {
		s.log.Error("error selecting profile", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return profile, nil
}
