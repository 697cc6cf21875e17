package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

const maxUploadMemory = 8 << 20

type MediaHandler struct {
	svc service.MediaService
}

func NewMediaHandler(svc service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// Upload accepts a multipart form with a "file" part and a "kind" field and
// answers with the stored object key plus a short-lived view URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing file", nil)
		return
	}
	defer file.Close()

	kind := strings.TrimSpace(r.FormValue("kind"))
	contentType := header.Header.Get("Content-Type")

	objectKey, err := h.svc.UploadCoverImage(r.Context(), kind, file, header.Size, contentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMediaKind),
			errors.Is(err, service.ErrInvalidFileType),
			errors.Is(err, service.ErrFileTooBig):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to upload file", nil)
		}
		return
	}

	url, err := h.svc.CoverImageURL(r.Context(), objectKey)
	if err != nil {
		// The object landed; hand back the key even if presigning failed.
		response.JSON(w, r, http.StatusCreated, map[string]any{"key": objectKey})
		return
	}
	response.JSON(w, r, http.StatusCreated, map[string]any{"key": objectKey, "url": url})
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var key string
	if err := r.ParseForm(); err == nil {
		key = strings.TrimSpace(r.FormValue("key"))
	}
	if key == "" {
		key = strings.TrimSpace(r.URL.Query().Get("key"))
	}
	if key == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing object key", nil)
		return
	}
	if err := h.svc.DeleteCoverImage(r.Context(), key); err != nil {
		if errors.Is(err, service.ErrInvalidMediaKind) {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid object key", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete file", nil)
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "File deleted", nil)
}
