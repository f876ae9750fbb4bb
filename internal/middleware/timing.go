package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RequestStartKey holds the time the request entered the router
const RequestStartKey = "request_start_time"

// RequestTiming opens a span per request named after the matched route, so
// every chart or export of the dashboard groups under one operation. The raw
// query is recorded because the filters are the only input of a request.
func RequestTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(RequestStartKey, start)

		ctx, span := otel.Tracer("http").Start(c.Request.Context(), "http.request")
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.Path),
			attribute.String("painel.filters", c.Request.URL.RawQuery),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if route := c.FullPath(); route != "" {
			span.SetName(c.Request.Method + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("http.response_size", c.Writer.Size()),
			attribute.String("http.response_content_type", c.Writer.Header().Get("Content-Type")),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)
		if rid := c.GetString(RequestIDKey); rid != "" {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}

		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
