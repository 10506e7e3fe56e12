package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/auth"
)

// Paths under /api/ that do not require a session: the credential
// endpoints and the health probes.
var openAPIPrefixes = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh",
	"/api/auth/logout",
	"/api/health/",
}

// routeGuard is the session middleware. For every request it first strips
// the reserved identity headers, so nothing a client sends can impersonate
// the guard. Unprotected paths then pass through untouched. Protected paths
// resolve a token (Authorization bearer first, then the session cookie),
// verify it, and attach the resolved identity as request headers for
// downstream handlers. Any failure fails closed: API routes get a 401 JSON
// body, page routes get redirected to the login screen with the original
// path preserved.
func (s *Server) routeGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stripReservedHeaders(r)

		if !s.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := resolveToken(r)
		if token == "" {
			s.reject(w, r)
			return
		}

		claims, err := auth.VerifyToken(token, []byte(s.config.SecretKey))
		if err != nil {
			s.reject(w, r)
			return
		}

		r.Header.Set(common.UserIDHeaderName, claims.UserID)
		r.Header.Set(common.UserEmailHeaderName, claims.Email)
		next.ServeHTTP(w, r)
	})
}

func stripReservedHeaders(r *http.Request) {
	for name := range r.Header {
		if strings.HasPrefix(strings.ToLower(name), "x-internal-") {
			r.Header.Del(name)
		}
	}
	r.Header.Del(common.UserIDHeaderName)
	r.Header.Del(common.UserEmailHeaderName)
}

func (s *Server) isProtected(path string) bool {
	for _, prefix := range s.config.ProtectedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	if strings.HasPrefix(path, "/api/") {
		for _, open := range openAPIPrefixes {
			if strings.HasPrefix(path, open) {
				return false
			}
		}
		return true
	}
	return false
}

func resolveToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(common.AccessTokenCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
}

// identity reads the guard-attached headers. Handlers behind the guard can
// rely on them; an empty id means the route was reached without a session.
func identity(r *http.Request) (userID, email string) {
	return r.Header.Get(common.UserIDHeaderName), r.Header.Get(common.UserEmailHeaderName)
}
