package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/common"
)

const sessionContextKey = "agroalert.session"

func sessionLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer, zap.String(common.LoggerFieldCategory, common.LoggerCategorySession))
}

// sessionToken reads the officer token from a bearer header, falling back to
// the session cookie.
func (rs *RestfulServer) sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(rs.cookieName()); err == nil {
		return cookie
	}
	return ""
}

// currentSession returns the active session, or nil when the request carries
// no valid token. Provider failures other than ErrNoSession are logged and
// treated as signed out.
func (rs *RestfulServer) currentSession(c *gin.Context) *auth.Session {
	if s, ok := c.Get(sessionContextKey); ok {
		return s.(*auth.Session)
	}

	token := rs.sessionToken(c)
	if token == "" || rs.Auth == nil {
		return nil
	}
	session, err := rs.Auth.GetSession(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, auth.ErrNoSession) {
			sessionLogger().Warn("session lookup failed", zap.Error(err))
		}
		return nil
	}
	session.Token = token
	c.Set(sessionContextKey, session)
	return session
}

func (rs *RestfulServer) RequireOfficer(c *gin.Context) {
	if rs.currentSession(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrNoSession.Error()})
		return
	}
	c.Next()
}

func (rs *RestfulServer) setSessionCookie(c *gin.Context, session *auth.Session) {
	maxAge := int(rs.SessionTTL.Seconds())
	if !session.ExpiresAt.IsZero() {
		maxAge = int(session.ExpiresAt.Sub(rs.now()).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(rs.cookieName(), session.Token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func (rs *RestfulServer) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(rs.cookieName(), "", -1, "/", "", c.Request.TLS != nil, true)
}
