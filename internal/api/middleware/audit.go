package middleware

import (
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveFields 表单中不落日志的字段
var sensitiveFields = []string{"password", "password_confirm"}

// contentFields 用户正文只记录长度
var contentFields = []string{"subject", "message"}

// AuditMiddleware 记录请求与响应概要，HTML 页面只记录大小
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		attrs := []any{
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
		}
		if c.Request.Method == "POST" && strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded") {
			if err = c.Request.ParseForm(); err == nil {
				attrs = append(attrs, log.String("form", redactForm(c.Request.PostForm)))
			}
		}
		log.InfoContext(ctx, "Recv Request", attrs...)

		startTime := time.Now()
		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.Int("size", c.Writer.Size()),
			log.String("location", c.Writer.Header().Get("Location")),
		)
	}
}

func redactForm(form url.Values) string {
	masked := make(url.Values, len(form))
	for k, v := range form {
		masked[k] = v
	}
	for _, field := range sensitiveFields {
		if _, ok := masked[field]; ok {
			masked.Set(field, "******")
		}
	}
	for _, field := range contentFields {
		if _, ok := masked[field]; ok {
			masked.Set(field, fmt.Sprintf("<%d bytes>", len(form.Get(field))))
		}
	}
	decoded, err := url.QueryUnescape(masked.Encode())
	if err != nil {
		return masked.Encode()
	}
	return decoded
}
