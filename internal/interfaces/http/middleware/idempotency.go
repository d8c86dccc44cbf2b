package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vendor-pay.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware ensures that a retried mutation with the same
// Idempotency-Key replays the stored response instead of executing twice.
// Requests without the header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope keys per user so clients cannot collide with each other
		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)

		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
					"code":  "ERR_IDEMPOTENCY_CONFLICT",
				})
				return
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		} else if err.Error() != "redis: nil" {
			// Redis unavailable: let the request through rather than block writes
			c.Next()
			return
		}

		success, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !success {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Only successful responses are worth replaying; clear the key on
		// failure so the client can retry.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}
