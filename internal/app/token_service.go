package app

import (
	"time"

	"accounts/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the JWT payload of a session token.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Username string `json:"username"`
}

// TokenService mints and verifies signed session tokens. The signing secret
// is loaded once at startup and never changes for the lifetime of the
// process; tokens are stateless, so a leaked token stays usable until it
// expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with secret, issuing
// tokens valid for ttl.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token asserting the user's identity.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
	})
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string and returns the embedded
// identity claims. Any parse, signature or expiry failure yields
// domain.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*domain.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Claims{UserID: claims.UserID, Username: claims.Username}, nil
}
