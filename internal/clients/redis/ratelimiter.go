package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/launchforge/launchwizard-backend/internal/logger"
)

// RateLimiter is a fixed-window counter backed by a shared store, so every
// instance of the backend sees the same counts. A process-local map would
// only limit one replica.
type RateLimiter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

type rateLimiter struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRateLimiter falls back to REDIS_ADDR when no address is passed in.
func NewRateLimiter(log *logger.Logger, addr string) (RateLimiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	if strings.TrimSpace(addr) == "" {
		addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	}
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &rateLimiter{
		log: log.With("client", "RedisRateLimiter"),
		rdb: rdb,
	}, nil
}

// Increment bumps the window counter and stamps the expiry on first use only,
// so the window does not slide on every request.
func (l *rateLimiter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if l == nil || l.rdb == nil {
		return 0, fmt.Errorf("redis rate limiter not initialized")
	}
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (l *rateLimiter) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
