package middleware

import (
	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入当前用户，失败或缺失按匿名处理
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		if claims, err := parseToken(c.Request.Context(), token); err == nil {
			setIdentity(c, token, claims)
		}
		c.Next()
	}
}
