package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware generates a unique ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)

		// Mirror into the request context under the key pkg/logger reads,
		// so logger.WithContext picks the ID up downstream.
		ctx := context.WithValue(c.Request.Context(), "request_id", id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
