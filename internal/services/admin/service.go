package admin

import (
	"context"
	"strings"

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

const ListUsersLimit = 100

type Store interface {
	SelectProfileByID(id string) (*ormpkg.Profile, error)
	SearchProfiles(query string, limit int) ([]*ormpkg.Profile, error)
	UpdateProfileFields(id uuid.UUID, fields map[string]any) error
}

type AdminServiceImpl struct {
	log      *zap.Logger
	database Store
}

func NewAdminService(log *zap.Logger, database Store) services.AdminService {
	return &AdminServiceImpl{
		log:      log,
		database: database,
	}
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context, query string) ([]*ormpkg.Profile, error) {
	if _, err := s.requireDeveloper(ctx); err != nil {
		return nil, err
	}

	profiles, err := s.database.SearchProfiles(strings.TrimSpace(query), ListUsersLimit)
	if err != nil {
		s.log.Error("error searching profiles", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return profiles, nil
}

func (s *AdminServiceImpl) ToggleRole(ctx context.Context, userID string, role string) (*ormpkg.Profile, error) {
	developer, err := s.requireDeveloper(ctx)
	if err != nil {
		return nil, err
	}

	if role != services.RoleAdmin && role != services.RoleVerified {
		return nil, status.Errorf(codes.InvalidArgument, "role must be %s or %s", services.RoleAdmin, services.RoleVerified)
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, status.Errorf(codes.NotFound, "user not found")
	}

	target, err := s.database.SelectProfileByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "user not found")
	}
	if err != nil {
		s.log.Error("error selecting profile", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	if target.ID == developer.ID {
		return nil, status.Errorf(codes.FailedPrecondition, "cannot change your own roles")
	}
	if target.IsDeveloper {
		return nil, status.Errorf(codes.FailedPrecondition, "cannot change roles of a developer")
	}

	value := !target.IsAdmin
	if role == services.RoleVerified {
		value = !target.IsVerified
	}

	if err := s.database.UpdateProfileFields(target.ID, map[string]any{role: value}); err != nil {
		s.log.Error("error updating role", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not update role")
	}

	s.log.Info(
		"role toggled",
		zap.String("developer", developer.ID.String()),
		zap.String("user", target.ID.String()),
		zap.String("role", role),
		zap.Bool("value", value),
	)

	if role == services.RoleAdmin {
		target.IsAdmin = value
	} else {
		target.IsVerified = value
	}
	return target, nil
}

func (s *AdminServiceImpl) requireDeveloper(ctx context.Context) (*ormpkg.Profile, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	profile, err := s.database.SelectProfileByID(userID.String())
	if err == gorm.ErrRecordNotFound {
		return nil, lib.PermissionDeniedError("Developer access required")
	}
	if err != nil {
		s.log.Error("error selecting profile", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	if !profile.IsDeveloper {
		return nil, lib.PermissionDeniedError("Developer access required")
	}
	return profile, nil
}
