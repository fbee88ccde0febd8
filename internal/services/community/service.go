package community

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/adopour/backend/internal/lib"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const (
	DisplayNameMaxLength = 50
	DescriptionMaxLength = 500
	ListLimit            = 100
	PostsLimit           = 50
)

type Store interface {
	lib.ReputationStore

	SelectCommunities(query string, viewerID uuid.UUID, limit int) ([]*ormpkg.Community, error)
	SelectCommunityByName(name string, viewerID uuid.UUID) (*ormpkg.Community, error)
	InsertCommunity(community *ormpkg.Community, creatorRole string) error
	JoinCommunity(communityID, userID uuid.UUID, role string) (bool, error)
	LeaveCommunity(communityID, userID uuid.UUID) (bool, error)
	SelectCommunityMember(communityID, userID uuid.UUID) (*ormpkg.CommunityMember, error)
	SelectPosts(filter ormpkg.PostFilter, viewerID uuid.UUID, cursor string, limit int) ([]*ormpkg.Post, error)
}

type CommunityServiceImpl struct {
	db  Store
	log *zap.Logger
}

func NewCommunityService(db Store, log *zap.Logger) services.CommunityService {
	return &CommunityServiceImpl{
		db:  db,
		log: log,
	}
}

func (s *CommunityServiceImpl) ListCommunities(ctx context.Context, query string) ([]*ormpkg.Community, error) {
	communities, err := s.db.SelectCommunities(
		strings.TrimSpace(query),
		middleware.GetViewerUUID(ctx),
		ListLimit,
	)
	if err != nil {
		s.log.Error("error selecting communities", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return communities, nil
}

func (s *CommunityServiceImpl) CreateCommunity(ctx context.Context, input services.CommunityInput) (*ormpkg.Community, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Display name is required")
	}
	if utf8.RuneCountInString(displayName) > DisplayNameMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "Display name must be at most %d characters", DisplayNameMaxLength)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Description is required")
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "Description must be at most %d characters", DescriptionMaxLength)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = lib.Slugify(displayName)
	}
	if !lib.IsValidCommunityName(name) {
		return nil, status.Errorf(codes.InvalidArgument, "Name may only contain lowercase letters, numbers and dashes")
	}

	_, err = s.db.SelectCommunityByName(name, userID)
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			return nil, status.Errorf(codes.AlreadyExists, "A community with this name already exists")
		}
		s.log.Error("error selecting community by name", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not check name")
	}

	community := &ormpkg.Community{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		CreatorID:   userID,
	}

	err = s.db.InsertCommunity(community, ormpkg.CommunityRoleAdmin)
	if err == gorm.ErrDuplicatedKey {
		return nil, status.Errorf(codes.AlreadyExists, "A community with this name already exists")
	}
	if err != nil {
		s.log.Error("internal error inserting community", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not create community")
	}

	return s.selectCommunity(name, userID)
}

func (s *CommunityServiceImpl) GetCommunity(ctx context.Context, name string) (*services.CommunityDetails, error) {
	viewerID := middleware.GetViewerUUID(ctx)

	community, err := s.selectCommunity(name, viewerID)
	if err != nil {
		return nil, err
	}

	details := &services.CommunityDetails{
		Community: community,
	}

	if viewerID != uuid.Nil {
		member, err := s.db.SelectCommunityMember(community.ID, viewerID)
		switch {
		case err == nil:
			details.Role = member.Role
			details.CanManage = member.CanManage()
		case err != gorm.ErrRecordNotFound:
			s.log.Error("error selecting community member", zap.Error(err))
			return nil, status.Errorf(codes.Internal, "database error")
		}
	}

	details.Reputation, err = lib.CalculateCommunityReputation(s.db, community)
	if err != nil {
		s.log.Error("error calculating community reputation", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	details.Posts, err = s.db.SelectPosts(
		ormpkg.PostFilter{CommunityID: &community.ID},
		viewerID,
		"",
		PostsLimit,
	)
	if err != nil {
		s.log.Error("error selecting community posts", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	return details, nil
}

func (s *CommunityServiceImpl) JoinCommunity(ctx context.Context, name string) (*ormpkg.Community, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	community, err := s.selectCommunity(name, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.JoinCommunity(community.ID, userID, ormpkg.CommunityRoleMember); err != nil {
		s.log.Error("error joining community", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not join community")
	}

	return s.selectCommunity(name, userID)
}

func (s *CommunityServiceImpl) LeaveCommunity(ctx context.Context, name string) (*ormpkg.Community, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	community, err := s.selectCommunity(name, userID)
	if err != nil {
		return nil, err
	}

	if community.CreatorID == userID {
		return nil, status.Errorf(codes.FailedPrecondition, "The community creator cannot leave")
	}

	if _, err := s.db.LeaveCommunity(community.ID, userID); err != nil {
		s.log.Error("error leaving community", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not leave community")
	}

	return s.selectCommunity(name, userID)
}

func (s *CommunityServiceImpl) selectCommunity(name string, viewerID uuid.UUID) (*ormpkg.Community, error) {
	community, err := s.db.SelectCommunityByName(name, viewerID)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "community not found")
	}
	if err != nil {
		s.log.Error("error selecting community by name", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return community, nil
}
