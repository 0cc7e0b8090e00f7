package auth

import (
	"errors"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the session token payload. Version is the per-user counter
// checked against the stored TokenVersion on every request.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Version  int    `json:"version"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses signed session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager fails when no signing secret is configured; issuing
// unsigned tokens would silently break every later validation.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, apperr.Internal("jwt signing secret not configured")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue generates a signed session token for the given identity and version.
func (m *TokenManager) Issue(userID uint, username string, version int) (string, error) {
	if userID == 0 || username == "" {
		return "", apperr.InvalidArg("user id and username are required")
	}
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Version:  version,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "sign token", err)
	}
	return signed, nil
}

// Parse validates signature and structure and returns the claims.
// Expired tokens are an authentication failure; anything else malformed
// is an invalid credential.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrMalformedToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.ErrMalformedToken
	}
	return claims, nil
}
