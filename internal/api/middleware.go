package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Context keys set by the middleware.
const (
	requestIDKey = "request_id"
	sessionKey   = "session"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's X-Request-ID or assigns a new UUID v7.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// AccessLog writes one structured line per request.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic serving request",
					zap.Any("panic", r),
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Stack("stack"))
				detail(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}

// WithSession opens one store Session per request and closes it when the
// handler chain returns, whichever way it exits. Handlers commit explicitly.
func WithSession(store types.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Begin(c.Request.Context())
		if err != nil {
			logger.Error("open session", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
			detail(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		defer func() {
			if err := sess.Close(); err != nil {
				logger.Warn("close session", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
			}
		}()
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// sessionFrom returns the Session installed by WithSession.
func sessionFrom(c *gin.Context) types.Session {
	return c.MustGet(sessionKey).(types.Session)
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// RateLimit rejects clients that exceed limit requests per window with 429.
// A limit of zero or less disables the check.
func RateLimit(l Limiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if l == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		allowed, count, err := l.Allow(c.Request.Context(), "todolist:ip:"+c.ClientIP(), limit, window)
		if err != nil {
			logger.Error("rate limit check failed", zap.Error(err))
			detail(c, http.StatusInternalServerError, "Rate limit check failed")
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(window).Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			detail(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
