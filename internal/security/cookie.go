package security

import (
	"net/http"
	"strings"
	"time"
)

const AdminTokenCookie = "admin_token"

type CookieManager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookieManager(domain string, secure bool, sameSite string) *CookieManager {
	ss := http.SameSiteLaxMode
	switch strings.ToLower(sameSite) {
	case "none":
		ss = http.SameSiteNoneMode
	case "strict":
		ss = http.SameSiteStrictMode
	}
	return &CookieManager{Domain: domain, Secure: secure, SameSite: ss}
}

func (c *CookieManager) SetAdminToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		Domain:   c.Domain,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (c *CookieManager) ClearAdminToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		Domain:   c.Domain,
	})
}

func GetCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
