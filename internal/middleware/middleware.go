package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models/dto"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "requestID"

const requestIDHeader = "X-Request-Id"

// RequestID propagates the caller's X-Request-Id or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := lgr.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = lgr.Error()
		case status >= http.StatusBadRequest:
			event = lgr.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Request handled")
	}
}

// StoreStatus reports whether the record store is reachable
type StoreStatus interface {
	Ready() bool
}

// RequireStore answers 503 while the record store is unreachable
func RequireStore(status StoreStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !status.Ready() {
			detail := dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Record store unavailable, try again later").
				WithSeverity(dto.ErrorSeverityCritical)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}
