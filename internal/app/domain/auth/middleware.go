package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
)

// SessionMiddleware restores the browser's session from its cookie and makes it
// available to guards, handlers and the backend client. It must run after
// sessions.Sessions.
func SessionMiddleware(decoder Decoder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := NewSession(NewCookieStore(sessions.Default(c)), decoder, logger)

		publishState(c, sess.State())
		unsubscribe := sess.Subscribe(func(st State) { publishState(c, st) })
		defer unsubscribe()

		c.Set(SessionKey, sess)
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

func publishState(c *gin.Context, st State) {
	c.Set(middleware.AuthenticatedKey, st.Authenticated)
	c.Set(middleware.IsAdminKey, st.Admin)
	c.Set(middleware.UserIDKey, st.Identity.Subject)
}

// RequireGuard admits or redirects the navigation according to g. A request
// without a session is treated as signed out.
func RequireGuard(g Guard, dest Destinations) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Evaluate(StateOf(GetSession(c)), dest)
		if decision.Allow {
			c.Next()
			return
		}
		metrics.Get().RecordGuardRedirect(c.Request.Context(), g.String(), decision.Redirect)
		middleware.Redirect(c, decision.Redirect)
	}
}
