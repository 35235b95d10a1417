package middleware

import (
	"net/http"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookie     = "copilot_session"
	sessionContextKey = "session_id"
)

// Session makes sure every request carries a session id, issuing a new
// cookie when the browser has none or sends a malformed one. The cookie
// is refreshed on every request and lives as long as the stored state.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !utils.ValidateSessionID(id) {
			id = utils.NewSessionID()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", secure, true)
		c.Set(sessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
