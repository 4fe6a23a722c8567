package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"learnboard/pkg/api"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// counter is the slice of the redis API the limiter needs; *redis.Client satisfies it.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter is a fixed-window per-IP limiter. A nil limiter lets everything through.
type RateLimiter struct {
	store  counter
	logger *slog.Logger
}

func NewRateLimiter(store counter, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{store: store, logger: logger}
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.store == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.store.Incr(c, key).Result()
		if err != nil {
			// redis trouble must not take logins down
			rl.logger.WarnContext(c, "Rate limiter unavailable", slog.String("key", key), slog.Any("error", err))
			c.Next()
			return
		}

		// first hit opens the window
		if count == 1 {
			rl.store.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.store.TTL(c, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorEnvelope{Message: "Too many requests"})
			return
		}
		c.Next()
	}
}
