package controllers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"clubsite/internal/delivery/http/helpers"
	"clubsite/internal/domain"
)

// maxUploadSize caps uploaded images at 5MB.
const maxUploadSize = 5 << 20

// extByContentType maps the accepted image types to object key extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadResponse is the data payload for POST /upload.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

type UploadController struct {
	Logger *slog.Logger
	Images domain.ImageStore
}

func NewUploadController(logger *slog.Logger, images domain.ImageStore) *UploadController {
	return &UploadController{
		Logger: logger,
		Images: images,
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts a multipart image (jpeg, png or webp, max 5MB), stores it in the image bucket, and returns its public URL. The content type is sniffed from the file bytes, not trusted from the client.
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} helpers.APIResponse "data contains image_url"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /upload [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+4096)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file too large or malformed form; maximum size is 5MB")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file too large; maximum size is 5MB")
		return
	}

	// Sniff the real content type from the first bytes.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to read file")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := extByContentType[contentType]
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid file type; only JPEG, PNG, and WebP are allowed")
		return
	}

	key := fmt.Sprintf("events/%s%s", uuid.NewString(), ext)
	body := io.MultiReader(bytes.NewReader(head), file)
	imageURL, err := c.Images.Upload(r.Context(), key, body, contentType)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to upload image")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UploadResponse{ImageURL: imageURL})
}
