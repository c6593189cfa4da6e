// Package service implements token issuing and verification for authentication.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/config"
	"github.com/allisson/analytics/internal/errors"
	userDomain "github.com/allisson/analytics/internal/user/domain"
)

// TokenService issues and verifies signed authentication tokens.
type TokenService interface {
	// Issue creates a signed token for the user and returns it together with
	// its expiration time.
	Issue(user *userDomain.User) (string, time.Time, error)
	// ExtractUsername returns the subject claim of a valid token.
	ExtractUsername(token string) (string, error)
	// ExtractExpiration returns the expiration claim of a valid token.
	ExtractExpiration(token string) (time.Time, error)
	// IsValid reports whether the token belongs to the user and has not expired.
	IsValid(token string, user *userDomain.User) bool
}

type jwtTokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTTokenService creates a TokenService backed by HMAC-SHA256 signed JWTs.
func NewJWTTokenService(cfg *config.Config) TokenService {
	return &jwtTokenService{
		secret:     []byte(cfg.AuthJWTSecret),
		expiration: cfg.AuthTokenExpiration,
	}
}

func (s *jwtTokenService) Issue(user *userDomain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

func (s *jwtTokenService) ExtractUsername(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *jwtTokenService) ExtractExpiration(token string) (time.Time, error) {
	claims, err := s.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, authDomain.ErrTokenMalformed
	}
	return claims.ExpiresAt.Time, nil
}

func (s *jwtTokenService) IsValid(token string, user *userDomain.User) bool {
	// Expired tokens fail signature-validated parsing, so a successful parse
	// implies the token is still live.
	claims, err := s.parse(token)
	if err != nil {
		return false
	}
	return claims.Subject == user.Username
}

func (s *jwtTokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrapf(authDomain.ErrTokenMalformed, "unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(authDomain.ErrTokenMalformed, "token verification failed")
	}
	return claims, nil
}
