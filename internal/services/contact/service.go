package contact

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventpkg "github.com/adopour/backend/internal/event"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const (
	FieldMaxLength   = 200
	MessageMaxLength = 5000
)

type Store interface {
	InsertContactRequest(request *ormpkg.ContactRequest) error
}

type ContactServiceImpl struct {
	log      *zap.Logger
	database Store
	broker   eventpkg.Publisher
}

func NewContactService(log *zap.Logger, database Store, broker eventpkg.Publisher) services.ContactService {
	return &ContactServiceImpl{
		log:      log,
		database: database,
		broker:   broker,
	}
}

func (s *ContactServiceImpl) SubmitContact(ctx context.Context, input services.ContactInput) (*ormpkg.ContactRequest, error) {
	request := &ormpkg.ContactRequest{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Company: strings.TrimSpace(input.Company),
		Message: strings.TrimSpace(input.Message),
	}

	if request.Name == "" || request.Email == "" || request.Company == "" || request.Message == "" {
		return nil, status.Errorf(codes.InvalidArgument, "All fields are required")
	}
	if address, err := mail.ParseAddress(request.Email); err != nil || address.Address != request.Email {
		return nil, status.Errorf(codes.InvalidArgument, "Email is invalid")
	}
	for _, field := range []string{request.Name, request.Email, request.Company} {
		if utf8.RuneCountInString(field) > FieldMaxLength {
			return nil, status.Errorf(codes.InvalidArgument, "Fields must be at most %d characters", FieldMaxLength)
		}
	}
	if utf8.RuneCountInString(request.Message) > MessageMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "Message must be at most %d characters", MessageMaxLength)
	}

	if err := s.database.InsertContactRequest(request); err != nil {
		s.log.Error("error inserting contact request", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not submit request")
	}

	err := s.broker.WriteMessage(
		ctx,
		eventpkg.BUSINESS_CONTACT,
		eventpkg.BusinessContactMessage{ID: request.ID.String()},
	)
	if err != nil {
		s.log.Error("failed to publish contact request", zap.String("id", request.ID.String()), zap.Error(err))
	}

	return request, nil
}
