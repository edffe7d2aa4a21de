package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Middleware returns a Gin middleware that opens one span per request and
// records the request metrics. A nil Metrics disables metric recording but
// keeps tracing.
func Middleware(service string, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "static"
		}

		ctx, span := StartSpan(c.Request.Context(), SpanHTTPRequest,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", c.Request.URL.Path),
			),
		)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		if m != nil {
			m.RecordRequestStart(ctx)
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
			if m != nil {
				m.RecordError(ctx, service, route)
			}
		}
		span.End()

		if m != nil {
			m.RecordRequestEnd(ctx, service, route, strconv.Itoa(status), time.Since(start))
		}
	}
}
