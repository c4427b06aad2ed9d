package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window per-IP rate limiter backed by Redis,
// so the limit holds across replicas.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a RateLimiter (e.g., 30 requests per minute).
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: int64(limit), window: window}
}

// Middleware returns a Gin middleware that rate-limits requests by client IP.
// Redis failures fail open: a broken limiter must not take the API down.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		// INCR and EXPIRE NX travel in one pipeline so the window TTL is
		// set on the first hit and re-attached if a previous request died
		// between the two commands, which would otherwise leave a key that
		// limits the IP forever.
		pipe := rl.rdb.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.window)
		if _, err := pipe.Exec(ctx); err != nil {
			c.Next()
			return
		}
		n := incr.Val()

		if n > rl.limit {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
