package middleware

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/shared/constants"
	"coursekit/internal/shared/logger"
)

// RouteClass is the authorization level a path prefix demands.
type RouteClass int

const (
	ClassPublic RouteClass = iota
	ClassProtected
	ClassAdmin
)

// RouteRule maps a path prefix to a class. The table is static configuration
// evaluated once per request.
type RouteRule struct {
	Prefix string
	Class  RouteClass
}

// SessionReader is the slice of the session store the middleware needs.
type SessionReader interface {
	Read(c *gin.Context) *auth.SessionClaims
}

// AccessMiddleware gates every inbound request before any handler runs.
// Handlers still re-read the session themselves; this is the coarse outer
// gate, not the only one.
type AccessMiddleware struct {
	sessions SessionReader
	rules    []RouteRule
	logger   logger.Interface
}

// DefaultRouteTable is the platform's route classification. Prefixes are
// small and non-overlapping by construction; the longest match wins, and on
// equal length the stricter class wins.
func DefaultRouteTable() []RouteRule {
	return []RouteRule{
		{Prefix: "/", Class: ClassPublic},
		{Prefix: "/login", Class: ClassPublic},
		{Prefix: "/auth", Class: ClassPublic},
		{Prefix: "/courses", Class: ClassPublic},
		{Prefix: "/api/courses", Class: ClassPublic},
		{Prefix: "/healthz", Class: ClassPublic},
		{Prefix: "/dashboard", Class: ClassProtected},
		{Prefix: "/learn", Class: ClassProtected},
		{Prefix: "/api/me", Class: ClassProtected},
		{Prefix: "/admin", Class: ClassAdmin},
	}
}

func NewAccessMiddleware(sessions SessionReader, rules []RouteRule, log logger.Interface) *AccessMiddleware {
	// Longest prefix first so classification is a single ordered scan.
	sorted := make([]RouteRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Prefix) != len(sorted[j].Prefix) {
			return len(sorted[i].Prefix) > len(sorted[j].Prefix)
		}
		return sorted[i].Class > sorted[j].Class
	})

	return &AccessMiddleware{
		sessions: sessions,
		rules:    sorted,
		logger:   log,
	}
}

// Handle classifies the request path and enforces the class:
// public passes without a session lookup, protected without a valid session
// redirects to login with the original path attached, and admin paths
// silently downgrade non-admins to the dashboard.
func (m *AccessMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isStaticAsset(path) {
			c.Next()
			return
		}

		class := m.classify(path)
		if class == ClassPublic {
			c.Next()
			return
		}

		claims := m.sessions.Read(c)
		if claims == nil {
			redirect := constants.LoginPath + "?redirect=" + url.QueryEscape(path)
			c.Redirect(http.StatusFound, redirect)
			c.Abort()
			return
		}

		if class == ClassAdmin && !claims.Role.IsAdmin() {
			m.logger.Warnw("non-admin request to admin route",
				"path", path, "user_id", claims.UserID)
			c.Redirect(http.StatusFound, constants.DashboardPath)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserRole, claims.Role.String())

		c.Next()
	}
}

func (m *AccessMiddleware) classify(path string) RouteClass {
	for _, rule := range m.rules {
		if matchesPrefix(path, rule.Prefix) {
			return rule.Class
		}
	}
	return ClassPublic
}

// matchesPrefix matches on path-segment boundaries so /dashboard does not
// capture /dashboardish.
func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// isStaticAsset excludes asset paths from classification entirely.
func isStaticAsset(path string) bool {
	if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/assets/") {
		return true
	}
	switch path {
	case "/favicon.ico", "/robots.txt":
		return true
	}
	return false
}
