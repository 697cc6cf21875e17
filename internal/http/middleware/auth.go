package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

// AdminAuth rejects requests that do not carry a valid admin token, either in
// the admin_token cookie or as a bearer token.
func AdminAuth(jwtMgr *security.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
				return
			}
			claims, err := jwtMgr.ParseAdminToken(raw)
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) *security.Claims {
	claims, _ := ctx.Value(adminClaimsKey).(*security.Claims)
	return claims
}

func extractToken(r *http.Request) string {
	if raw := security.GetCookie(r, security.AdminTokenCookie); raw != "" {
		return raw
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
