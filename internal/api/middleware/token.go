package middleware

import (
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/redis"
	"Planting/internal/pkg/security"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var errTokenRevoked = errors.New("token 已注销")

// tokenFromRequest 优先读取 Cookie，其次 Authorization: Bearer
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(consts.TokenCookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// parseToken 校验签名、有效期以及是否在注销黑名单中
func parseToken(ctx context.Context, token string) (*security.UserClaims, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, err
	}

	value, err := redis.GetValue(ctx, consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, err
	}
	if value != "" {
		return nil, errTokenRevoked
	}

	return security.ValidateToken(token)
}

// setIdentity 把当前用户写入 gin.Context 和 request context
func setIdentity(c *gin.Context, token string, claims *security.UserClaims) {
	c.Set(consts.CtxUserID, claims.UserID)
	c.Set(consts.CtxUsername, claims.Username)
	c.Set(consts.CtxToken, token)

	newCtx := context.WithValue(c.Request.Context(), consts.CtxUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
