package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/manav1309/manavinverse-create-verse/internal/http/middleware"
	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

type AuthHandler struct {
	svc      service.AuthServiceInterface
	cookies  *security.CookieManager
	tokenTTL time.Duration
}

func NewAuthHandler(svc service.AuthServiceInterface, cookies *security.CookieManager, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	token, err := h.svc.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to log in", nil)
		return
	}

	h.cookies.SetAdminToken(w, token, h.tokenTTL)
	response.JSON(w, r, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(h.tokenTTL.Seconds()),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearAdminToken(w)
	response.JSONWithMessage(w, r, http.StatusOK, "Logged out", nil)
}

// Me reports the identity behind the current session token, so the admin UI
// can tell whether it is still logged in.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{
		"username":   claims.Subject,
		"expires_at": claims.ExpiresAt.Time.UTC(),
	})
}
