package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/shared/authorization"
	sharedConfig "coursekit/internal/shared/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// countingCodec wraps the real token service and counts Verify calls so the
// cheap path (no cookie, no codec call) is observable.
type countingCodec struct {
	inner       *auth.TokenService
	verifyCalls int
}

func (c *countingCodec) Issue(userID uint, email string, role authorization.UserRole) (string, error) {
	return c.inner.Issue(userID, email, role)
}

func (c *countingCodec) Verify(token string) (*auth.SessionClaims, error) {
	c.verifyCalls++
	return c.inner.Verify(token)
}

func testCookieConfig() sharedConfig.CookieConfig {
	return sharedConfig.CookieConfig{Path: "/", SameSite: "Lax"}
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatalf("no %q cookie set", CookieName)
	return nil
}

func TestStore_CreateSetsCookieAttributes(t *testing.T) {
	tokens := auth.NewTokenService("secret", 24)
	store := NewStore(tokens, testCookieConfig())

	c, w := newTestContext(t)
	token, err := store.Create(c, 1, "a@b.com", authorization.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ck := sessionCookie(t, w)
	assert.Equal(t, token, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 86400, ck.MaxAge)
}

func TestStore_ReadRoundTrip(t *testing.T) {
	tokens := auth.NewTokenService("secret", 24)
	store := NewStore(tokens, testCookieConfig())

	c, w := newTestContext(t)
	_, err := store.Create(c, 9, "reader@example.com", authorization.RoleAdmin)
	require.NoError(t, err)

	c2, _ := newTestContext(t)
	c2.Request.AddCookie(sessionCookie(t, w))

	claims := store.Read(c2)
	require.NotNil(t, claims)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
}

func TestStore_ReadWithoutCookieSkipsCodec(t *testing.T) {
	cc := &countingCodec{inner: auth.NewTokenService("secret", 24)}
	store := NewStoreWithCodec(cc, testCookieConfig(), 86400)

	c, _ := newTestContext(t)
	assert.Nil(t, store.Read(c))
	assert.Zero(t, cc.verifyCalls)
}

func TestStore_ReadGarbageCookieReturnsNil(t *testing.T) {
	tokens := auth.NewTokenService("secret", 24)
	store := NewStore(tokens, testCookieConfig())

	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})

	assert.Nil(t, store.Read(c))
}

func TestStore_DestroyThenReadReturnsNil(t *testing.T) {
	tokens := auth.NewTokenService("secret", 24)
	store := NewStore(tokens, testCookieConfig())

	c, w := newTestContext(t)
	store.Destroy(c)

	ck := sessionCookie(t, w)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)

	// A client honouring the cleared cookie sends nothing back.
	c2, _ := newTestContext(t)
	assert.Nil(t, store.Read(c2))
}

func TestStore_DestroyIsIdempotent(t *testing.T) {
	tokens := auth.NewTokenService("secret", 24)
	store := NewStore(tokens, testCookieConfig())

	c, _ := newTestContext(t)
	store.Destroy(c)
	store.Destroy(c)
}
