package adminhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

type adminService struct {
	developer bool
	user      *orm.Profile
}

func (s *adminService) ListUsers(ctx context.Context, query string) ([]*orm.Profile, error) {
	if !s.developer {
		return nil, status.Errorf(codes.PermissionDenied, "Developer access required")
	}
	return []*orm.Profile{s.user}, nil
}

func (s *adminService) ToggleRole(ctx context.Context, userID string, role string) (*orm.Profile, error) {
	if role == services.RoleVerified {
		s.user.IsVerified = !s.user.IsVerified
	}
	return s.user, nil
}

func newRouter(service *adminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAdminHandler(zap.NewNop(), service).Register(router.Group("/api"))
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestListUsers(t *testing.T) {
	service := &adminService{user: &orm.Profile{ID: uuid.New(), Username: "ana", Email: "ana@example.com"}}
	router := newRouter(service)

	recorder := do(router, http.MethodGet, "/api/admin/users", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.JSONEq(t, `{"error":"Developer access required"}`, recorder.Body.String())

	service.developer = true
	recorder = do(router, http.MethodGet, "/api/admin/users?q=ana", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"ana@example.com"`)
}

func TestToggleRole(t *testing.T) {
	service := &adminService{developer: true, user: &orm.Profile{ID: uuid.New(), Username: "ana"}}
	router := newRouter(service)
	path := "/api/admin/users/" + service.user.ID.String() + "/toggle"

	recorder := do(router, http.MethodPost, path, `{"role":"is_verified"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_verified":true`)

	recorder = do(router, http.MethodPost, path, `{"role":"is_developer"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"role must be one of: is_admin is_verified"}`, recorder.Body.String())
}
