package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/rpc"
)

// traceMiddleware assigns every request a trace ID (honoring an inbound
// one) and logs the request line on completion.
func (g *Gateway) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logging.WithTraceID(c.Request.Context(), c.GetHeader(rpc.TraceIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(rpc.TraceIDHeader, logging.GetTraceID(ctx))

		start := time.Now()
		c.Next()

		g.log.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}).Info("request completed")
	}
}

// corsMiddleware answers preflights and stamps the allow headers for the
// configured origins. Credentials are always allowed: the session rides in
// a cookie.
func (g *Gateway) corsMiddleware() gin.HandlerFunc {
	allowed := strings.Split(g.cfg.Gateway.AllowedOrigins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(allowed, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// rateLimitMiddleware enforces a per-client-IP token bucket. Disabled
// entirely when the limiter was not configured.
func (g *Gateway) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.limiter != nil && !g.limiter.Allow(c.ClientIP()) {
			g.fail(c, errors.RateLimitExceeded())
			return
		}
		c.Next()
	}
}

// metricsMiddleware records request counts and latency keyed by the route
// template, so /projects/:id stays one series regardless of the id.
func (g *Gateway) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		g.metrics.IncrementInFlight()
		c.Next()
		g.metrics.DecrementInFlight()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		g.metrics.RecordHTTPRequest("gateway", c.Request.Method, path,
			strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
