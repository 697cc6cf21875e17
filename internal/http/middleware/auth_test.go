package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manav1309/manavinverse-create-verse/internal/security"
)

func newJWTManagerForTest(t *testing.T) *security.JWTManager {
	t.Helper()
	return security.NewJWTManager("manavinverse", "manavinverse-admin", "test-secret-test-secret-test-1234")
}

func okHandler(t *testing.T, wantUsername string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			t.Fatal("no claims in context")
		}
		if claims.Subject != wantUsername {
			t.Fatalf("subject = %q, want %q", claims.Subject, wantUsername)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuthAcceptsCookieToken(t *testing.T) {
	mgr := newJWTManagerForTest(t)
	token, err := mgr.SignAdminToken("manav", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	handler := AdminAuth(mgr)(okHandler(t, "manav"))
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/admin/submissions", nil)
	r.AddCookie(&http.Cookie{Name: security.AdminTokenCookie, Value: token})
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAdminAuthAcceptsBearerToken(t *testing.T) {
	mgr := newJWTManagerForTest(t)
	token, err := mgr.SignAdminToken("manav", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	handler := AdminAuth(mgr)(okHandler(t, "manav"))
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/admin/submissions", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAdminAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	mgr := newJWTManagerForTest(t)
	handler := AdminAuth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler reached without valid token")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/admin/submissions", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/admin/submissions", nil)
	r.AddCookie(&http.Cookie{Name: security.AdminTokenCookie, Value: "not-a-token"})
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", w.Code)
	}

	otherMgr := security.NewJWTManager("manavinverse", "manavinverse-admin", "a-different-secret-a-different-1")
	forged, err := otherMgr.SignAdminToken("manav", time.Hour)
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/api/v1/admin/submissions", nil)
	r.AddCookie(&http.Cookie{Name: security.AdminTokenCookie, Value: forged})
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("forged token status = %d, want 401", w.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://manavinverse.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/blogs", nil)
	r.Header.Set("Origin", "https://manavinverse.com")
	handler.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://manavinverse.com" {
		t.Fatalf("allow-origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow-credentials = %q", got)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/api/v1/blogs", nil)
	r.Header.Set("Origin", "https://evil.example")
	handler.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("allow-origin for disallowed origin = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"https://manavinverse.com"})(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("preflight should not reach handler")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/contact", nil)
	r.Header.Set("Origin", "https://manavinverse.com")
	r.Header.Set("Access-Control-Request-Method", "POST")
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatal("missing Access-Control-Allow-Methods")
	}
}
