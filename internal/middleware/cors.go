package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"munibudget/internal/logger"
)

// CORS returns a Gin middleware enforcing an origin allow-list. Requests
// without an Origin header (curl, health checks, same-origin) pass through
// untouched. Blocked origins are logged and get no CORS headers, so the
// browser refuses the response.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if !allowed[origin] {
				logger.Get().Warnf("CORS blocked request from origin: %s", origin)
			} else {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
