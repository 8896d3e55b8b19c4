package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionKey is the gin context key holding the request's *Session.
const SessionKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the session attached to ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey).(*Session)
	return s
}

// CredentialFromContext reads the credential of the session attached to ctx at call time.
func CredentialFromContext(ctx context.Context) (string, bool) {
	s := SessionFromContext(ctx)
	if s == nil {
		return "", false
	}
	return s.Credential()
}

// GetSession returns the request's session, or nil if the session middleware did not run.
func GetSession(c *gin.Context) *Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	if c.Request != nil {
		return SessionFromContext(c.Request.Context())
	}
	return nil
}

// StateOf returns the session state, treating a missing session as signed out.
func StateOf(s *Session) State {
	if s == nil {
		return State{}
	}
	return s.State()
}
