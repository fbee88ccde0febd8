package services

import (
	"context"
	"io"
)

// MediaMaxSize is the largest accepted upload in bytes.
const MediaMaxSize = 5 << 20

type MediaService interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, filename string, contentType string, size int64, data io.Reader) (string, error)
}
