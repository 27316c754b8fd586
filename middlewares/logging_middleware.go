package middlewares

import (
	"crumbs/constants"
	"crumbs/metrics"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, logs its outcome and records HTTP metrics.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(constants.RequestIDKey, requestID)
		ctx.Header(requestIDHeader, requestID)

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()
		duration := time.Since(start)
		metrics.ObserveHTTPRequest(ctx.Request.Method, route, strconv.Itoa(status), duration)

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", duration),
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, slog.String("error", ctx.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
