package server

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
	"github.com/FACorreiaa/go-claims-templui/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(cfg *config.Config, deps *routes.Dependencies, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
		SkipPaths:  []string{"/healthz"},
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
	r.Use(sessions.Sessions(cfg.Session.CookieName, newCookieStore(cfg.Session)))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	routes.Setup(r, deps, logger)

	return r
}

// sessionKeys derives the cookie signing key and the AES-256 encryption key
// from the configured secret.
func sessionKeys(secret string) (hashKey, blockKey []byte) {
	h := sha256.Sum256([]byte("session-auth:" + secret))
	b := sha256.Sum256([]byte("session-encrypt:" + secret))
	return h[:], b[:]
}

// newCookieStore signs and encrypts the session cookie; it carries the bearer credential.
func newCookieStore(cfg config.SessionConfig) cookie.Store {
	hashKey, blockKey := sessionKeys(cfg.Secret)
	store := cookie.NewStore(hashKey, blockKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// zapContextFunc adds request and trace identifiers to access logs. Request
// bodies are never logged; they carry passwords and claimant details.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get(middleware.RequestIDHeader); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		if user := c.GetString(middleware.UserIDKey); user != "" {
			fields = append(fields, zap.String("user", user))
		}

		return fields
	}
}
