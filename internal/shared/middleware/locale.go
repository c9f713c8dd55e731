package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/locale"
)

// LocaleRedirect sends Japanese-preferring browsers from /blog... to the
// /ja-prefixed variant. API routes and static-looking paths (anything with
// a file extension) are left alone, as is any path that already carries a
// locale prefix.
func LocaleRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api") ||
			strings.HasPrefix(path, "/static") ||
			strings.Contains(path, ".") {
			c.Next()
			return
		}

		if strings.HasPrefix(path, "/blog") && locale.FromPath(path) != locale.JaJP {
			detected := locale.Detect(c.GetHeader("Accept-Language"))
			if detected == locale.JaJP {
				target := "/ja" + path
				if raw := c.Request.URL.RawQuery; raw != "" {
					target += "?" + raw
				}
				c.Redirect(http.StatusTemporaryRedirect, target)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
