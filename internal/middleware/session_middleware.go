package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/session"
)

// Context keys set for authenticated requests
const (
	UserIDKey   = "userID"
	UsernameKey = "username"

	sessionCheckedKey = "sessionChecked"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionMiddleware resolves the session cookie and guards protected routes
type SessionMiddleware struct {
	manager *session.Manager
	cookie  CookieConfig
	logger  zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(manager *session.Manager, cookie CookieConfig, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager: manager,
		cookie:  cookie,
		logger:  logger,
	}
}

// LoadUser attaches the identity of a valid session, if any. It never redirects.
func (m *SessionMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.resolve(c)
		c.Next()
	}
}

// RequireSession redirects to /login unless the request carries a valid session
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.resolve(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolve loads the session once per request and caches the outcome on the context
func (m *SessionMiddleware) resolve(c *gin.Context) (session.Identity, bool) {
	if c.GetBool(sessionCheckedKey) {
		return CurrentIdentity(c)
	}
	c.Set(sessionCheckedKey, true)

	token, err := c.Cookie(m.cookie.Name)
	if err != nil || token == "" {
		return session.Identity{}, false
	}

	s, err := m.manager.Resolve(c.Request.Context(), token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSessionNotFound, apperrors.ErrSessionExpired, apperrors.ErrTokenInvalid) {
			m.ClearSessionCookie(c)
		} else {
			m.logger.Warn().Err(err).Msg("Failed to resolve session")
		}
		return session.Identity{}, false
	}

	id := session.Identity{UserID: s.UserID, Username: s.Username}
	c.Set(UserIDKey, id.UserID)
	c.Set(UsernameKey, id.Username)
	c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
	return id, true
}

// SetSessionCookie writes the session token cookie
func (m *SessionMiddleware) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, token, int(m.manager.TTL().Seconds()), "/", "", m.cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie
func (m *SessionMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, "", -1, "/", "", m.cookie.Secure, true)
}

// SessionToken returns the raw session cookie value
func (m *SessionMiddleware) SessionToken(c *gin.Context) string {
	token, _ := c.Cookie(m.cookie.Name)
	return token
}

// CurrentIdentity returns the identity attached by the session middleware
func CurrentIdentity(c *gin.Context) (session.Identity, bool) {
	return session.IdentityFromContext(c.Request.Context())
}
