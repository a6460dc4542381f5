package security

import (
	"Planting/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "Planting"

var (
	jwtSecret         = []byte("planting")
	JWTExpirationTime = time.Hour * 24
)

// Init 使用配置覆盖签名密钥与有效期
func Init(cfg config.JWTConfig) {
	if cfg.Secret != "" {
		jwtSecret = []byte(cfg.Secret)
	}
	if cfg.ExpireHours > 0 {
		JWTExpirationTime = time.Duration(cfg.ExpireHours) * time.Hour
	}
}

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
