package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SubmissionRateLimiter caps report submissions per client IP within window.
// Reports are anonymous, so the IP is the only key available. With a nil
// client the limiter lets every request through.
func SubmissionRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if client == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With(zap.String("component", "rate_limiter"))

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientKey := prefix + ":" + c.ClientIP()

		// Increment client's count with TTL
		count, err := client.Incr(ctx, clientKey).Result()
		if err != nil {
			log.Error("redis error incrementing count", zap.String("key", clientKey), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := client.Expire(ctx, clientKey, window).Err(); err != nil {
				log.Error("redis error setting TTL", zap.String("key", clientKey), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, clientKey).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
