package middleware

import (
  "context"
  "fmt"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/requestdata"
)

// WindowCounter is the shared-store primitive behind the rate limit: bump a
// keyed counter inside a fixed window, get the count back.
type WindowCounter interface {
  Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimitMiddleware struct {
  log           *logger.Logger
  counter       WindowCounter
  window        time.Duration
  maxRequests   int64
}

func NewRateLimitMiddleware(log *logger.Logger, counter WindowCounter, window time.Duration, maxRequests int64) *RateLimitMiddleware {
  middlewareLogger := log.With("Middleware", "RateLimitMiddleware")
  if window < time.Second {
    window = time.Minute
  }
  return &RateLimitMiddleware{log: middlewareLogger, counter: counter, window: window, maxRequests: maxRequests}
}

func (rm *RateLimitMiddleware) Limit() gin.HandlerFunc {
  return func(c *gin.Context) {
    if rm.counter == nil {
      c.Next()
      return
    }
    key := rm.keyFor(c)
    count, err := rm.counter.Increment(c.Request.Context(), key, rm.window)
    if err != nil {
      // Fail open: a broken limiter store should not take the API down.
      rm.log.Warn("Rate limit counter unavailable, allowing request", "error", err)
      c.Next()
      return
    }
    if count > rm.maxRequests {
      c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
      return
    }
    c.Next()
  }
}

func (rm *RateLimitMiddleware) keyFor(c *gin.Context) string {
  bucket := time.Now().UTC().Unix() / int64(rm.window.Seconds())
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
    return fmt.Sprintf("ratelimit:user:%s:%d", rd.UserID, bucket)
  }
  return fmt.Sprintf("ratelimit:ip:%s:%d", c.ClientIP(), bucket)
}
