package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager signs and parses the admin session tokens. The site has a single
// shared admin credential; the token it yields is what actually gates every
// administrative route.
type JWTManager struct {
	issuer   string
	audience string
	secret   []byte
}

func NewJWTManager(issuer, audience, secret string) *JWTManager {
	return &JWTManager{issuer: issuer, audience: audience, secret: []byte(secret)}
}

func (m *JWTManager) SignAdminToken(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) ParseAdminToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", tok.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithAudience(m.audience))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "admin" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
