package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/logger"
)

// ErrNotLoggedIn is returned by commands that need a stored credential.
var ErrNotLoggedIn = errors.New("not logged in, run: claimsctl login <email>")

type Globals struct {
	Debug          bool
	Version        string
	Server         string
	CredentialPath string
	AdminRole      string
	Timeout        time.Duration
	Out            io.Writer
}

func (g *Globals) logger() *zap.Logger {
	if !g.Debug {
		return zap.NewNop()
	}
	l, err := logger.New("debug", "console")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// session restores the credential stored on disk.
func (g *Globals) session() *auth.Session {
	return auth.NewSession(auth.NewFileStore(g.CredentialPath), auth.NewCodec(g.AdminRole), g.logger())
}

// client returns a backend client bound to sess. A rejected credential is
// removed from disk.
func (g *Globals) client(sess *auth.Session) (*api.Client, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return api.New(g.Server,
		api.WithTimeout(timeout),
		api.WithLogger(g.logger()),
		api.WithCredentialSource(sess.CredentialSource()),
		api.WithUnauthorizedHandler(func(context.Context) { sess.Logout() }),
	)
}

// require opens the session and client, enforcing guard.
func (g *Globals) require(guard auth.Guard) (*auth.Session, *api.Client, error) {
	sess := g.session()
	decision := guard.Evaluate(sess.State(), auth.DefaultDestinations)
	if !decision.Allow {
		if !sess.IsAuthenticated() {
			return nil, nil, ErrNotLoggedIn
		}
		return nil, nil, fmt.Errorf("this command is not available to %s accounts", roleName(sess))
	}
	client, err := g.client(sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, client, nil
}

func roleName(sess *auth.Session) string {
	if sess.IsAdmin() {
		return "admin"
	}
	return "user"
}

// explain rewrites backend failures for the terminal.
func explain(op string, err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return fmt.Errorf("%s: session expired or access denied, please log in again: %w", op, err)
	case errors.Is(err, api.ErrNetwork):
		return fmt.Errorf("%s: claims service unreachable: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
