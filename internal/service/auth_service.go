package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/manav1309/manavinverse-create-verse/internal/observability"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthService checks the single shared admin credential and turns a
// successful login into a signed session token. Authorization downstream is
// the token check in middleware, never a process-wide flag.
type AuthService struct {
	adminUsername     string
	adminPasswordHash string
	tokenTTL          time.Duration
	jwtMgr            *security.JWTManager
}

func NewAuthService(adminUsername, adminPasswordHash string, tokenTTL time.Duration, jwtMgr *security.JWTManager) *AuthService {
	return &AuthService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		tokenTTL:          tokenTTL,
		jwtMgr:            jwtMgr,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordOK := security.VerifyPassword(s.adminPasswordHash, password)
	if !usernameOK || !passwordOK {
		observability.RecordAdminLoginEvent(ctx, "rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtMgr.SignAdminToken(s.adminUsername, s.tokenTTL)
	if err != nil {
		observability.RecordAdminLoginEvent(ctx, "error")
		return "", err
	}
	observability.RecordAdminLoginEvent(ctx, "success")
	return token, nil
}
