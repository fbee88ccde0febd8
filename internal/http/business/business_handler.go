package businesshttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type BusinessHandler struct {
	log            *zap.Logger
	contactService services.ContactService
}

func NewBusinessHandler(log *zap.Logger, contactService services.ContactService) *BusinessHandler {
	return &BusinessHandler{
		log:            log,
		contactService: contactService,
	}
}

func (h *BusinessHandler) Register(public gin.IRoutes) {
	public.POST("/business/contact", h.Contact)
}

type contactRequest struct {
	Name    string `json:"name" binding:"notblank,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Company string `json:"company" binding:"notblank,max=200"`
	Message string `json:"message" binding:"notblank,max=5000"`
}

type contactResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// Contact records a sales inquiry from the business landing page.
func (h *BusinessHandler) Contact(c *gin.Context) {
	req, ok := request.Bind[contactRequest](c)
	if !ok {
		return
	}

	contact, err := h.contactService.SubmitContact(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contactResponse{ID: contact.ID.String(), Success: true})
}
