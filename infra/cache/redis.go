package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to REDIS_URL, which may be a plain host:port or a
// redis:// URL. An empty address means Redis is not configured and yields nil.
func NewRedisClient(ctx context.Context, redisAddr string) (*redis.Client, error) {
	if redisAddr == "" {
		return nil, nil
	}

	opts := &redis.Options{Addr: redisAddr}
	if strings.HasPrefix(redisAddr, "redis://") || strings.HasPrefix(redisAddr, "rediss://") {
		parsed, err := redis.ParseURL(redisAddr)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao Redis: %w", err)
	}

	return rdb, nil
}
