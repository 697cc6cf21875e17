package sheets

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Google rejects JWT-bearer assertions with longer lifetimes, so the expiry
// is pinned at exactly one hour and callers cannot ask for more.
const assertionLifetime = time.Hour

var (
	ErrCredentialInvalid = errors.New("service account credential invalid")
	ErrSigningFailed     = errors.New("assertion signing failed")
)

// ServiceCredential identifies the service account used for the Sheets API.
// Loaded once from configuration at startup; the private key never leaves
// this package.
type ServiceCredential struct {
	ClientEmail   string
	PrivateKeyPEM string
	TokenURL      string
	Scope         string
}

// AssertionSigner produces the short-lived RS256 assertion exchanged for an
// access token. It is a pure function of the credential and the clock.
type AssertionSigner struct {
	cred ServiceCredential
	key  *rsa.PrivateKey
}

func NewAssertionSigner(cred ServiceCredential) (*AssertionSigner, error) {
	if cred.ClientEmail == "" || cred.PrivateKeyPEM == "" || cred.TokenURL == "" || cred.Scope == "" {
		return nil, fmt.Errorf("%w: missing client email, private key, token url or scope", ErrCredentialInvalid)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cred.PrivateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", ErrCredentialInvalid, err)
	}
	return &AssertionSigner{cred: cred, key: key}, nil
}

// Sign builds the assertion with iss, scope, aud, iat=now and exp=now+1h.
func (s *AssertionSigner) Sign(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   s.cred.ClientEmail,
		"scope": s.cred.Scope,
		"aud":   s.cred.TokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return signed, nil
}
