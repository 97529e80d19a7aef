package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coursekit/internal/shared/authorization"
	"coursekit/internal/shared/biztime"
)

// ErrInvalidToken is the only error Verify returns. Bad signature, malformed
// input, algorithm mismatch and expiry are deliberately indistinguishable so
// the codec cannot be used as an oracle.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the self-contained session payload carried in the cookie.
type SessionClaims struct {
	UserID uint                   `json:"user_id"`
	Email  string                 `json:"email"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a symmetric secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, sessionExpHours int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(sessionExpHours) * time.Hour,
	}
}

// SessionTTL returns the fixed session lifetime.
func (s *TokenService) SessionTTL() time.Duration {
	return s.ttl
}

// Issue builds and signs a session token for the given identity. The email
// is normalized to lower case before it enters the payload.
func (s *TokenService) Issue(userID uint, email string, role authorization.UserRole) (string, error) {
	now := biztime.NowUTC()

	claims := &SessionClaims{
		UserID: userID,
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims. Every
// failure path collapses into ErrInvalidToken; callers treat it as "no
// session" rather than surfacing a diagnostic.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// Expiry must be present and in the future even if the library accepted
	// the token; the payload's own claim is the authoritative lifetime.
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(biztime.NowUTC()) {
		return nil, ErrInvalidToken
	}
	if !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
