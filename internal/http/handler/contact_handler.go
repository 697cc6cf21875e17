package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

type ContactHandler struct {
	svc service.SubmissionServiceInterface
}

func NewContactHandler(svc service.SubmissionServiceInterface) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit handles the public contact form. A 200 means the submission is
// durably stored; whether the sheets mirror succeeded is never visible here.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   *string `json:"phone"`
		Message string  `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	phone := body.Phone
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}

	sub, err := h.svc.Submit(r.Context(), service.SubmitInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   phone,
		Message: body.Message,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Name, email, and message are required", vErr.Missing)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Failed to submit contact form", err.Error())
		return
	}

	response.JSONWithMessage(w, r, http.StatusOK, "Contact form submitted successfully", sub)
}
