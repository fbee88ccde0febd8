package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adopour/backend/internal/lib"
	"github.com/adopour/backend/internal/middleware"
	"github.com/adopour/backend/internal/services"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Uploader interface {
	UploadFile(ctx context.Context, key string, contentType string, data io.Reader) (string, error)
}

type MediaServiceImpl struct {
	log     *zap.Logger
	storage Uploader
}

func NewMediaService(log *zap.Logger, storage Uploader) services.MediaService {
	return &MediaServiceImpl{
		log:     log,
		storage: storage,
	}
}

func (s *MediaServiceImpl) Upload(ctx context.Context, filename string, contentType string, size int64, data io.Reader) (string, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return "", lib.UnauthenticatedError("")
	}

	if size > services.MediaMaxSize {
		return "", status.Errorf(codes.InvalidArgument, "file must be at most %d bytes", services.MediaMaxSize)
	}

	content, err := io.ReadAll(io.LimitReader(data, services.MediaMaxSize+1))
	if err != nil {
		return "", status.Errorf(codes.InvalidArgument, "could not read upload")
	}
	if len(content) == 0 {
		return "", status.Errorf(codes.InvalidArgument, "file is empty")
	}
	if len(content) > services.MediaMaxSize {
		return "", status.Errorf(codes.InvalidArgument, "file must be at most %d bytes", services.MediaMaxSize)
	}

	// Trust the bytes over the declared type
	detected := http.DetectContentType(content)
	extension, ok := imageExtensions[detected]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "only jpeg, png, gif and webp images are allowed")
	}
	if declared := strings.TrimSpace(strings.Split(contentType, ";")[0]); declared != "" && declared != detected {
		s.log.Debug(
			"declared content type differs",
			zap.String("filename", filename),
			zap.String("declared", declared),
			zap.String("detected", detected),
		)
	}

	key := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New(), extension)
	url, err := s.storage.UploadFile(ctx, key, detected, bytes.NewReader(content))
	if err != nil {
		s.log.Error("error uploading file", zap.String("key", key), zap.Error(err))
		return "", status.Errorf(codes.Internal, "could not upload file")
	}

	s.log.Info("file uploaded", zap.String("key", key), zap.Int("size", len(content)))
	return url, nil
}
