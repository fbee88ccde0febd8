package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type ContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

type ContactService interface {
	SubmitContact(ctx context.Context, input ContactInput) (*ormpkg.ContactRequest, error)
}
