package middleware

import (
	"context"
	"net/http"

	"kanboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// KeyRecorder remembers idempotency keys that have been seen.
type KeyRecorder interface {
	Add(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
}

// Idempotency rejects a repeated mutating request carrying an
// Idempotency-Key that has already been accepted. A request that ends in a
// server error releases its key so the client may retry it. When the recorder
// cannot be reached the request is processed anyway.
func Idempotency(keys KeyRecorder, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !isMutation(c.Request.Method) {
			c.Next()
			return
		}

		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key
		ctx := c.Request.Context()

		added, err := keys.Add(ctx, scoped)
		if err != nil {
			log.WithError(err).WithField("request_id", c.GetString(RequestIDKey)).Warn("idempotency check skipped")
			c.Next()
			return
		}
		if !added {
			code := apperr.CodeDuplicateRequest
			c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{"error": "duplicate request", "code": code})
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			if err := keys.Remove(context.WithoutCancel(ctx), scoped); err != nil {
				log.WithError(err).Warn("failed to release idempotency key")
			}
		}
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
