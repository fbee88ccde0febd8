package lib

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// HandleError converts a storage error into a status error. Errors that
// already carry a status are passed through untouched.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError("")
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return AlreadyExistsError("")
	}

	return InternalError()
}

func NotFoundError(message string) error {
	if message == "" {
		message = "The requested resource was not found."
	}
	return status.Error(codes.NotFound, message)
}

func InternalError() error {
	return status.Error(codes.Internal, "An unexpected internal error occurred.")
}

func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func AlreadyExistsError(message string) error {
	if message == "" {
		message = "The resource already exists."
	}
	return status.Error(codes.AlreadyExists, message)
}

func UnauthenticatedError(message string) error {
	if message == "" {
		message = "Authentication required."
	}
	return status.Error(codes.Unauthenticated, message)
}

func PermissionDeniedError(message string) error {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	return status.Error(codes.PermissionDenied, message)
}
