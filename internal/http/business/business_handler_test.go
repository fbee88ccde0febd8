package businesshttp

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

	"github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

type contactService struct {
	input services.ContactInput
	id    uuid.UUID
}

func (s *contactService) SubmitContact(ctx context.Context, input services.ContactInput) (*orm.ContactRequest, error) {
	s.input = input
	return &orm.ContactRequest{ID: s.id, Name: input.Name}, nil
}

func TestContact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &contactService{id: uuid.New()}
	router := gin.New()
	NewBusinessHandler(zap.NewNop(), service).Register(router.Group("/api"))

	post := func(body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/business/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, req)
		return recorder
	}

	recorder := post(`{"name":"Ana","email":"ana@acme.io","company":"Acme","message":"We want ads"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"id":"`+service.id.String()+`","success":true}`, recorder.Body.String())
	assert.Equal(t, "Acme", service.input.Company)

	recorder = post(`{"name":"Ana","email":"ana@acme.io","message":"We want ads"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"company is required"}`, recorder.Body.String())

	recorder = post(`{"name":"Ana","email":"not-an-email","company":"Acme","message":"We want ads"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"email must be a valid email address"}`, recorder.Body.String())
}
