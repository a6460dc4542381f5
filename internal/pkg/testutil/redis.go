package testutil

import (
	"Planting/internal/pkg/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// NewMiniRedis 启动进程内 Redis 并接管全局客户端，测试结束后恢复为未启用
func NewMiniRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)

	rdb := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	prev := redis.Rdb
	redis.Rdb = rdb
	t.Cleanup(func() {
		redis.Rdb = prev
		_ = rdb.Close()
	})
	return mr
}
