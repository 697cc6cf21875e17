package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

type AdminSubmissionHandler struct {
	svc service.SubmissionServiceInterface
	now func() time.Time
}

func NewAdminSubmissionHandler(svc service.SubmissionServiceInterface) *AdminSubmissionHandler {
	return &AdminSubmissionHandler{svc: svc, now: time.Now}
}

func (h *AdminSubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.svc.ListPaged(repository.PageRequest{Page: page, PageSize: pageSize})
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list submissions", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{
		"items":       result.Items,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total":       result.Total,
		"total_pages": result.TotalPages,
	})
}

func (h *AdminSubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "contact submission not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete submission", nil)
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "Submission deleted", nil)
}

// Export streams every submission as a dated CSV or JSON download.
func (h *AdminSubmissionHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "format must be csv or json", nil)
		return
	}

	subs, err := h.svc.List()
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to export submissions", nil)
		return
	}

	filename := service.ExportFilename("contact-submissions", format, h.now())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = service.WriteSubmissionsJSON(w, subs)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_ = service.WriteSubmissionsCSV(w, subs)
}
