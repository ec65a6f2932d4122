package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows limit requests per client IP within window for one route
// group. When Redis is unreachable requests are let through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		// first hit opens the window
		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
