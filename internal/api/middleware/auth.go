package middleware

import (
	"Planting/internal/pkg/util"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 未登录时 302 到登录页，并通过 next 参数带上原地址
func AuthMiddleware(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			redirectToLogin(c, loginURL)
			return
		}

		claims, err := parseToken(c.Request.Context(), token)
		if err != nil {
			log.DebugContext(c.Request.Context(), "reject token", "err", err)
			redirectToLogin(c, loginURL)
			return
		}

		setIdentity(c, token, claims)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context, loginURL string) {
	c.Redirect(http.StatusFound, util.LoginRedirectURL(loginURL, c.Request.URL.RequestURI()))
	c.Abort()
}
