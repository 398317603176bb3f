package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/logger"
)

// Recovery converts panics into the standard 500 envelope. Panic detail is
// only echoed to the client in dev mode.
func Recovery(log *logger.Logger, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					"path", c.Request.URL.Path,
					"request_id", c.GetString("request_id"),
					"panic", r,
				)
				msg := "internal error"
				if devMode {
					if s, ok := r.(string); ok {
						msg = s
					} else if err, ok := r.(error); ok {
						msg = err.Error()
					}
				}
				common.Fail(c, http.StatusInternalServerError, 50000, msg)
				c.Abort()
			}
		}()
		c.Next()
	}
}
