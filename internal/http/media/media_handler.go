package mediahttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 1 << 20

type MediaHandler struct {
	log          *zap.Logger
	mediaService services.MediaService
}

func NewMediaHandler(log *zap.Logger, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		log:          log,
		mediaService: mediaService,
	}
}

func (h *MediaHandler) Register(private gin.IRoutes) {
	private.POST("/media", h.Upload)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts a multipart form with a single "file" part.
func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MediaMaxSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		h.log.Debug("invalid upload form", zap.Error(err))
		response.ErrorMessage(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.log.Error("error opening upload", zap.Error(err))
		response.ErrorMessage(c, http.StatusBadRequest, "could not read upload")
		return
	}
	defer file.Close()

	url, err := h.mediaService.Upload(
		c.Request.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, uploadResponse{URL: url})
}
