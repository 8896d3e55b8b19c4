package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
)

// Keys under which the session middleware publishes the current user.
const (
	AuthenticatedKey = "authenticated"
	UserIDKey        = "user_id"
	IsAdminKey       = "is_admin"
	RequestIDHeader  = "X-Request-Id"
)

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ContentSecurityPolicy admits the Tailwind and htmx CDNs the layout loads.
// Tailwind injects its generated styles inline; plotted damage images arrive
// as data: URIs.
const ContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https: blob:; " +
	"connect-src 'self'"

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Writer.Header().Set("Content-Security-Policy", ContentSecurityPolicy)

		c.Next()
	}
}

// RequestIDMiddleware tags every request with an id, reusing one sent by a proxy.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// Redirect handles redirects for both regular and HTMX requests and aborts the chain.
func Redirect(c *gin.Context, redirectURL string) {
	if IsHTMX(c) {
		// HTMX follows HX-Redirect client-side instead of swapping a 302 body.
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
	c.Abort()
}

func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// GetUserFromContext returns the signed-in user, or nil for anonymous requests.
func GetUserFromContext(c *gin.Context) *models.User {
	if !c.GetBool(AuthenticatedKey) {
		return nil
	}
	return &models.User{
		Email:   c.GetString(UserIDKey),
		IsAdmin: c.GetBool(IsAdminKey),
	}
}

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		)
		m := metrics.Get()
		m.HTTPRequestsTotal.Add(c.Request.Context(), 1, attrs)
		m.HTTPRequestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}
