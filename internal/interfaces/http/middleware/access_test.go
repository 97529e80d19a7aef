package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/shared/authorization"
	"coursekit/internal/shared/biztime"
	sharedConfig "coursekit/internal/shared/config"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
)

// issueExpiredToken signs a structurally valid token whose lifetime has
// already elapsed.
func issueExpiredToken(t *testing.T, secret string) string {
	t.Helper()
	now := biztime.NowUTC()
	claims := &auth.SessionClaims{
		UserID: 1,
		Email:  "a@b.com",
		Role:   authorization.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-24*time.Hour - time.Minute)),
			NotBefore: jwt.NewNumericDate(now.Add(-24*time.Hour - time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Debugw(msg string, kv ...interface{})  {}
func (nopLogger) Infow(msg string, kv ...interface{})   {}
func (nopLogger) Warnw(msg string, kv ...interface{})   {}
func (nopLogger) Errorw(msg string, kv ...interface{})  {}
func (l nopLogger) With(args ...any) logger.Interface   { return l }
func (l nopLogger) Named(name string) logger.Interface  { return l }

// countingReader wraps a session store and counts reads so the public cheap
// path is observable.
type countingReader struct {
	inner *session.Store
	reads int
}

func (r *countingReader) Read(c *gin.Context) *auth.SessionClaims {
	r.reads++
	return r.inner.Read(c)
}

type accessFixture struct {
	engine *gin.Engine
	tokens *auth.TokenService
	reader *countingReader
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()

	tokens := auth.NewTokenService("middleware-test-secret", 24)
	store := session.NewStore(tokens, sharedConfig.CookieConfig{Path: "/", SameSite: "Lax"})
	reader := &countingReader{inner: store}

	mw := NewAccessMiddleware(reader, DefaultRouteTable(), nopLogger{})

	engine := gin.New()
	engine.Use(mw.Handle())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	engine.GET("/", ok)
	engine.GET("/courses/:slug", ok)
	engine.GET("/dashboard", ok)
	engine.GET("/admin/anything", ok)
	engine.GET("/static/app.css", ok)

	return &accessFixture{engine: engine, tokens: tokens, reader: reader}
}

func (f *accessFixture) request(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *accessFixture) issue(t *testing.T, role authorization.UserRole) string {
	t.Helper()
	token, err := f.tokens.Issue(1, "u@example.com", role)
	require.NoError(t, err)
	return token
}

func assertRedirectsToLogin(t *testing.T, w *httptest.ResponseRecorder, wantPath string) {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, wantPath, loc.Query().Get("redirect"))
}

func TestAccess_PublicPathSkipsSessionRead(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.reader.reads, "public routes must not touch the session store")

	w = f.request(t, "/courses/go-basics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.reader.reads)
}

func TestAccess_StaticAssetsBypassClassification(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/static/app.css", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.reader.reads)
}

func TestAccess_ProtectedWithoutSessionRedirects(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/dashboard", "")
	assertRedirectsToLogin(t, w, "/dashboard")
}

func TestAccess_ProtectedWithGarbageTokenRedirects(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/dashboard", "not-a-valid-token")
	assertRedirectsToLogin(t, w, "/dashboard")
}

func TestAccess_ProtectedWithValidSessionPasses(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/dashboard", f.issue(t, authorization.RoleStudent))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccess_AdminRouteWithoutSessionRedirectsToLogin(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/admin/anything", "")
	assertRedirectsToLogin(t, w, "/admin/anything")
}

func TestAccess_AdminRouteWithStudentSilentlyDowngrades(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/admin/anything", f.issue(t, authorization.RoleStudent))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestAccess_AdminRouteWithAdminPasses(t *testing.T) {
	f := newAccessFixture(t)

	w := f.request(t, "/admin/anything", f.issue(t, authorization.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccess_ExpiredSessionRedirectsToLogin(t *testing.T) {
	// End-to-end shape of the 24h expiry: a token that has aged past its
	// lifetime behaves exactly like no session at all.
	tokens := auth.NewTokenService("middleware-test-secret", 24)
	expired := issueExpiredToken(t, "middleware-test-secret")

	store := session.NewStore(tokens, sharedConfig.CookieConfig{Path: "/", SameSite: "Lax"})
	mw := NewAccessMiddleware(&countingReader{inner: store}, DefaultRouteTable(), nopLogger{})

	engine := gin.New()
	engine.Use(mw.Handle())
	engine.GET("/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: expired})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assertRedirectsToLogin(t, w, "/dashboard")
}

func TestAccess_PrefixMatchingIsSegmentAware(t *testing.T) {
	f := newAccessFixture(t)
	f.engine.GET("/dashboardish", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// /dashboardish is not under /dashboard and falls back to public.
	w := f.request(t, "/dashboardish", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccess_MostSpecificPrefixWins(t *testing.T) {
	tokens := auth.NewTokenService("middleware-test-secret", 24)
	store := session.NewStore(tokens, sharedConfig.CookieConfig{Path: "/", SameSite: "Lax"})

	// A broad public prefix with a nested protected rule: the nested rule
	// must win so the public prefix cannot expose it.
	rules := []RouteRule{
		{Prefix: "/courses", Class: ClassPublic},
		{Prefix: "/courses/private", Class: ClassProtected},
	}
	mw := NewAccessMiddleware(&countingReader{inner: store}, rules, nopLogger{})

	engine := gin.New()
	engine.Use(mw.Handle())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	engine.GET("/courses/open", ok)
	engine.GET("/courses/private/data", ok)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/private/data", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
