package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
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

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// IdempotencyMiddleware replays the stored response of a request that
// carried the same Idempotency-Key within retention. Only 2xx responses are
// kept so failed attempts can be retried.
func IdempotencyMiddleware(scope string, retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := "idempotency:" + scope + ":" + callerScope(c) + ":" + key
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "request already in progress")
				c.Abort()
				return
			}
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header("X-Idempotency-Hit", "true")
				c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
				c.Abort()
				return
			}
			logger.Warn(ctx, "discarding unreadable idempotency entry", zap.String("key", storageKey))
			_ = redisDel(ctx, storageKey)
		} else if !redis.IsNil(err) {
			// fail open: a Redis outage must not block payments
			logger.Warn(ctx, "idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "request already in progress")
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			data, _ := json.Marshal(cachedResponse{
				Status:      status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.String(),
			})
			if err := redisSet(ctx, storageKey, string(data), retention); err != nil {
				logger.Warn(ctx, "failed to store idempotent response", zap.Error(err))
			}
			return
		}
		_ = redisDel(ctx, storageKey)
	}
}

// callerScope keeps keys of different tenants and users apart.
func callerScope(c *gin.Context) string {
	if partner, ok := GetTenant(c); ok {
		return "partner:" + partner.ID.String()
	}
	if userID, ok := GetUserID(c); ok {
		return "user:" + userID.String()
	}
	return "public"
}
