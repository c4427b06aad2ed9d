package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_FailsOpen(t *testing.T) {
	// Nothing listens on this address, so every pipeline exec errors.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := NewRateLimiter(rdb, 1, time.Minute)

	handlerRan := false
	r := gin.New()
	r.POST("/limited", limiter.Middleware(), func(c *gin.Context) {
		handlerRan = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

	// A broken limiter lets the request through instead of taking the
	// endpoint down.
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, handlerRan)
}
