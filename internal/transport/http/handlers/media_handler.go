package handlers

import (
	"errors"
	"net/http"

	mediasvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/media"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
	httperrors "github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/errors"
)

const maxUploadBytes = 10 << 20

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload accepts a multipart form with an "image" file part and an
// optional "section" field naming the prefix to file it under.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "image file is required")
		return
	}
	defer file.Close()

	image, err := h.service.UploadImage(
		r.Context(),
		r.FormValue("section"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "empty upload")
			return
		}
		writeInternal(w, "UPLOAD_FAILED", "failed to store image")
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ImageUploadResponse{
		ObjectKey: image.ObjectKey,
		URL:       image.URL,
	})
}
