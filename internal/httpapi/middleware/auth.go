package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/auth"
	"github.com/promptlab/promptlab/internal/common"
)

// SessionCookie is the cookie the login endpoint sets.
const SessionCookie = "sessionId"

// AuthRequired gates protected routes on a valid session cookie. Missing,
// invalid and expired sessions all fail the same way.
func AuthRequired(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		if err := svc.Validate(c.Request.Context(), token); err != nil {
			common.Fail(c, http.StatusUnauthorized, 40100, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
