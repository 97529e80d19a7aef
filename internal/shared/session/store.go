// Package session binds the token codec to the HTTP transport. Sessions are
// self-contained signed tokens in a cookie; no server-side session row exists,
// so expiry is the only invalidation.
package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/shared/authorization"
	sharedConfig "coursekit/internal/shared/config"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "session"

// Store creates, reads and destroys the session cookie for the current
// request/response cycle.
type Store struct {
	codec  codec
	cookie sharedConfig.CookieConfig
	maxAge int
}

type codec interface {
	Issue(userID uint, email string, role authorization.UserRole) (string, error)
	Verify(token string) (*auth.SessionClaims, error)
}

func NewStore(tokens *auth.TokenService, cookie sharedConfig.CookieConfig) *Store {
	return &Store{
		codec:  tokens,
		cookie: cookie,
		maxAge: int(tokens.SessionTTL().Seconds()),
	}
}

// NewStoreWithCodec wires an arbitrary codec, used by tests to observe codec
// calls.
func NewStoreWithCodec(c codec, cookie sharedConfig.CookieConfig, maxAge int) *Store {
	return &Store{codec: c, cookie: cookie, maxAge: maxAge}
}

// Create issues a token for the identity and sets the session cookie.
func (s *Store) Create(c *gin.Context, userID uint, email string, role authorization.UserRole) (string, error) {
	token, err := s.codec.Issue(userID, email, role)
	if err != nil {
		return "", err
	}

	c.SetSameSite(parseSameSite(s.cookie.SameSite))
	c.SetCookie(CookieName, token, s.maxAge, s.cookie.Path, s.cookie.Domain, s.cookie.Secure, true)

	return token, nil
}

// Read returns the verified session claims for the current request, or nil.
// An absent cookie short-circuits without touching the codec; any verify
// failure resolves to nil as well. Cookie max-age is client-enforced, so the
// payload's own expiry claim is what counts.
func (s *Store) Read(c *gin.Context) *auth.SessionClaims {
	value, err := c.Cookie(CookieName)
	if err != nil || value == "" {
		return nil
	}

	claims, err := s.codec.Verify(value)
	if err != nil {
		return nil
	}
	return claims
}

// Destroy clears the session cookie. Calling it without an active session is
// a no-op, not an error.
func (s *Store) Destroy(c *gin.Context) {
	c.SetSameSite(parseSameSite(s.cookie.SameSite))
	c.SetCookie(CookieName, "", -1, s.cookie.Path, s.cookie.Domain, s.cookie.Secure, true)
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
